package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrussa/order-insights/internal/order"
)

type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// OrdersRepo keeps raw order payloads in Postgres. It is a bulk source for
// the dashboard: the in-memory store never writes back to it.
type OrdersRepo struct {
	Pool      DB
	Limit     int
	Logf      func(string, ...any)
	qTimeout  time.Duration
	txTimeout time.Duration
}

func NewOrdersRepo(pool *pgxpool.Pool, limit int, logf func(string, ...any)) *OrdersRepo {
	return NewOrdersRepoWith(pool, limit, logf, 2*time.Second, 5*time.Second)
}

func NewOrdersRepoWith(pool DB, limit int, logf func(string, ...any), qTimeout, txTimeout time.Duration) *OrdersRepo {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &OrdersRepo{
		Pool:      pool,
		Limit:     limit,
		Logf:      logf,
		qTimeout:  qTimeout,
		txTimeout: txTimeout,
	}
}

func (r *OrdersRepo) withQ(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.qTimeout)
}
func (r *OrdersRepo) withTx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.txTimeout)
}

// Load returns the most recently ingested orders, up to r.Limit.
func (r *OrdersRepo) Load(ctx context.Context) ([]order.Order, error) {
	return r.Snapshot(ctx, r.Limit)
}

func (r *OrdersRepo) Ping(ctx context.Context) error {
	ctxT, cancel := r.withQ(ctx)
	defer cancel()
	var x int
	if err := r.Pool.QueryRow(ctxT, "select 1").Scan(&x); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultSnapshotLimit
	case limit > maxSnapshotLimit:
		return maxSnapshotLimit
	}
	return limit
}
