package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	maxConnections    = 20
	minConnections    = 0
	maxConnIdleTime   = 2 * time.Minute
	maxConnLifetime   = 45 * time.Minute
	connectionTimeout = 3 * time.Second
	applicationName   = "order-insights"
)

var newPoolWithConfig = pgxpool.NewWithConfig

// NewPool opens a lazily connecting pool. maxConns <= 0 keeps the default.
// The session is tagged with application_name unless the DSN sets one.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	cfg.MaxConns = maxConnections
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MinConns = minConnections
	cfg.MaxConnIdleTime = maxConnIdleTime
	cfg.MaxConnLifetime = maxConnLifetime

	pool, err := newPoolWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	return pool, nil
}

func Ping(parent context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(parent, connectionTimeout)
	defer cancel()
	return pool.Ping(ctx)
}

// SQLDB exposes the pool through database/sql for tools that need it
// (migrations). Closing the returned handle leaves the pool open.
func SQLDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}
