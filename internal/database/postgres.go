package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// 以下變數可於測試中覆寫
var (
	pgxpoolNew = pgxpool.New
	poolPing   = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	poolClose  = func(p *pgxpool.Pool) { p.Close() }
)

// NewPgxPool 建立 Postgres 連線池並確認可連線；Ping 失敗時關閉連線池
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	if err := poolPing(ctx, pool); err != nil {
		poolClose(pool)
		return nil, fmt.Errorf("NewPgxPool: ping: %w", err)
	}
	return pool, nil
}
