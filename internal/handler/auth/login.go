// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"iot-web/internal/api"
	"iot-web/internal/model"
	"iot-web/internal/service"

	"github.com/labstack/echo/v4"
)

// TokenTTL 為登入發行的 access token 有效期限
const TokenTTL = 24 * time.Hour

// UserFinder 為登入所需的查詢，*repository.UserRepository 實作此介面
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期秒數；停用帳號無法登入
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.LoginResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(users UserFinder, secret string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("無效的表單資料: %v", err)})
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		// 撈使用者資料；不存在與密碼錯誤回傳相同訊息
		user, err := users.GetByEmail(c.Request().Context(), req.Email)
		if errors.Is(err, model.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}
		if err != nil {
			return err
		}
		if !user.IsActive {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}
		if err := service.ComparePassword(user.Password, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		// 發行存取令牌
		token, err := service.IssueAccessToken(secret, user.ID, user.IsAdmin, TokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: fmt.Sprintf("failed to issue token: %v", err)})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int(TokenTTL.Seconds()),
		})
	}
}
