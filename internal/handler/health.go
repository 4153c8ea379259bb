// File: internal/handler/health.go
package handler

import (
	"net/http"
	"time"

	"iot-web/internal/api"
	"iot-web/internal/cache"
	"iot-web/internal/database"

	"github.com/labstack/echo/v4"
)

const (
	healthKey = "health:ping"
	healthTTL = 10 * time.Second
)

// HealthResponse 健康檢查回應模型
// swagger:model HealthResponse
type HealthResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫 (以及有設定時的 Redis) 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /health [get]
func HealthHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if rdb != nil {
			if err := rdb.Set(ctx, healthKey, "pong", healthTTL).Err(); err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
			}
			if v, err := rdb.Get(ctx, healthKey).Result(); err != nil || v != "pong" {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, HealthResponse{Message: "pong"})
	}
}
