package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	for _, k := range []string{"HOST", "PORT", "WORKER_COUNT", "LOG_LEVEL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "JWT_SECRET", "DEBUG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseURL)
	require.Equal(t, "0.0.0.0:8000", cfg.Addr())
	require.Equal(t, runtime.NumCPU(), cfg.WorkerCount)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 0, cfg.RedisDB)
	require.False(t, cfg.Debug)
	require.False(t, cfg.RedisEnabled())
	require.False(t, cfg.AuthEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.Addr())
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "pw", cfg.RedisPassword)
	require.Equal(t, 2, cfg.RedisDB)
	require.True(t, cfg.Debug)
	require.True(t, cfg.RedisEnabled())
	require.True(t, cfg.AuthEnabled())
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "db")
	cases := []struct{ key, val string }{
		{"PORT", "abc"},
		{"PORT", "70000"},
		{"WORKER_COUNT", "0"},
		{"WORKER_COUNT", "x"},
		{"REDIS_DB", "one"},
		{"LOG_LEVEL", "loud"},
		{"DEBUG", "maybe"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.val, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
