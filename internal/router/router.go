// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"iot-web/internal/cache"
	"iot-web/internal/database"
	"iot-web/internal/handler"
	"iot-web/internal/handler/auth"
	"iot-web/internal/handler/users"
	"iot-web/internal/middleware"
)

// UserStore 為路由所需的全部使用者操作，*repository.UserRepository 實作此介面
type UserStore interface {
	users.UserRepository
	auth.UserFinder
}

// Setup 註冊所有路由與中介層
// jwtSecret 為空時不掛載登入，/api/users 也不需登入
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, repo UserStore, jwtSecret string) {
	api := e.Group("/api")

	// 健康檢查
	api.GET("/health", handler.HealthHandler(db, rdb))

	var guard []echo.MiddlewareFunc
	if jwtSecret != "" {
		// 使用者登入
		api.POST("/auth/login", auth.LoginHandler(repo, jwtSecret))
		guard = append(guard, middleware.RequireAdmin(jwtSecret))
	}

	// Users CRUD，有設定 JWT_SECRET 時僅限管理員
	apiUsers := api.Group("/users")
	apiUsers.POST("", users.CreateUserHandler(repo), guard...)
	apiUsers.GET("", users.ListUsersHandler(repo), guard...)
	apiUsers.PUT("", users.UpdateUserHandler(repo), guard...)
	apiUsers.GET("/:user_id", users.GetUserHandler(repo), guard...)
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(repo), guard...)
}
