package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var _ Cache = (*FakeCache)(nil)
var _ Cache = (*redis.Client)(nil)

func TestFakeCacheUnset(t *testing.T) {
	c := &FakeCache{}
	require.PanicsWithValue(t, "unexpected Get", func() { c.Get(context.Background(), "k") })
	require.PanicsWithValue(t, "unexpected Set", func() { c.Set(context.Background(), "k", 1, 0) })
	require.NoError(t, c.Close())
}

func TestFakeCacheRoundTrip(t *testing.T) {
	store := map[string]string{}
	var ttls []time.Duration
	c := &FakeCache{
		SetFn: func(_ context.Context, key string, val any, exp time.Duration) *redis.StatusCmd {
			store[key] = val.(string)
			ttls = append(ttls, exp)
			return redis.NewStatusResult("OK", nil)
		},
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := store[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		CloseFn: func() error { return errors.New("close") },
	}

	ctx := context.Background()
	require.ErrorIs(t, c.Get(ctx, "health:ping").Err(), redis.Nil)
	require.NoError(t, c.Set(ctx, "health:ping", "pong", 10*time.Second).Err())
	require.Equal(t, "pong", c.Get(ctx, "health:ping").Val())
	require.Equal(t, []time.Duration{10 * time.Second}, ttls)
	require.EqualError(t, c.Close(), "close")
}
