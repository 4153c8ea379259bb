package config

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"strconv"

	"iot-web/internal/logging"
)

// Config 為服務啟動所需的所有設定，由 Load 從環境變數讀入
type Config struct {
	DatabaseURL   string
	Host          string
	Port          int
	WorkerCount   int
	LogLevel      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	Debug         bool
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// RedisEnabled 表示是否有設定 REDIS_ADDR
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// AuthEnabled 表示 /api/users 是否需要管理員 token
func (c *Config) AuthEnabled() bool { return c.JWTSecret != "" }

// lookupEnv 測試可覆寫
var lookupEnv = os.Getenv

func envOr(key, def string) string {
	if v := lookupEnv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := lookupEnv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

// Load 讀取環境變數並驗證
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   lookupEnv("DATABASE_URL"),
		Host:          envOr("HOST", "0.0.0.0"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		RedisAddr:     lookupEnv("REDIS_ADDR"),
		RedisPassword: lookupEnv("REDIS_PASSWORD"),
		JWTSecret:     lookupEnv("JWT_SECRET"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	var err error
	if cfg.Port, err = envInt("PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("無效的 PORT: %d", cfg.Port)
	}
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", runtime.NumCPU()); err != nil {
		return nil, err
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if v := lookupEnv("DEBUG"); v != "" {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("無效的 DEBUG: %v", err)
		}
	}
	return cfg, nil
}
