package api

import "iot-web/internal/model"

// CreateUserRequest 建立與更新 (PUT 以 email 定位) 共用的請求格式
// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required" example:"Ann"`
	LastName string `json:"last_name" validate:"required" example:"Lee"`
	Email    string `json:"email" validate:"required,email" example:"ann@example.com"`
	Password string `json:"password" validate:"required" example:"pw123"`
	// 未提供時預設 true
	IsActive *bool `json:"is_active,omitempty" example:"true"`
	// 未提供時預設 false
	IsAdmin *bool `json:"is_admin,omitempty" example:"false"`
}

// Input 轉為 repository 使用的輸入並套用布林預設值
func (r CreateUserRequest) Input() model.UserInput {
	in := model.UserInput{
		Name:     r.Name,
		LastName: r.LastName,
		Email:    r.Email,
		Password: r.Password,
		IsActive: true,
	}
	if r.IsActive != nil {
		in.IsActive = *r.IsActive
	}
	if r.IsAdmin != nil {
		in.IsAdmin = *r.IsAdmin
	}
	return in
}
