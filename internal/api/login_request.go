package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email" example:"ann@example.com"`
	Password string `form:"password" json:"password" validate:"required" example:"Secret123!"`
}

// LoginResponse 登入成功回傳的存取令牌
// swagger:model api.LoginResponse
type LoginResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOi..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	// 有效秒數
	ExpiresIn int `json:"expires_in" example:"86400"`
}
