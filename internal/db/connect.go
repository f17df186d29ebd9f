package db

import (
	"context"
	"time"

	"todo_webapp/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool bounds: requests only hold a connection for the duration of a single
// query, so a small pool is enough. Idle connections are evicted so a quiet
// deployment does not pin database slots.
const (
	maxConns        = 20
	maxConnIdleTime = 30 * time.Second
	connectTimeout  = 2 * time.Second
)

func Connect(dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid DATABASE_URL", "error", err)
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnIdleTime = maxConnIdleTime
	cfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected")
	return pool
}
