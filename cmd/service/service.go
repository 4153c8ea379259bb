// @title        IoT Web Users API
// @version      1.0
// @description  使用者 CRUD 服務的後端 API 文件
// @host         localhost:8000
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iot-web/internal/cache"
	"iot-web/internal/config"
	"iot-web/internal/database"
	"iot-web/internal/logging"
	appmw "iot-web/internal/middleware"
	"iot-web/internal/repository"
	"iot-web/internal/router"
	"iot-web/internal/service"
	"iot-web/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "iot-web/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newLogger       = func(level string) (*slog.Logger, error) { return logging.New(level, os.Stderr) }
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = serveUntilSignal
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

// serveUntilSignal 啟動 server，收到 SIGINT/SIGTERM 後優雅關閉
func serveUntilSignal(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(cfg *config.Config, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	var rdb cache.Cache
	if cfg.RedisEnabled() {
		rdb, err = newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %v", err)
		}
		defer rdb.Close()
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	repo := repository.NewUserRepository(db, service.PooledHasher(wp))

	e := newEcho(cfg, logger)
	router.Setup(e, db, rdb, repo, cfg.JWTSecret)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logger.Info("server starting",
		"addr", cfg.Addr(),
		"workers", cfg.WorkerCount,
		"redis", cfg.RedisEnabled(),
		"auth", cfg.AuthEnabled(),
	)
	return startServer(e, cfg.Addr())
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
