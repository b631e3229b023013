// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgres opens the connection pool shared by the user and film
repositories.

Catalogue reads dominate the traffic; writes are limited to sign-up and vote
toggles, so a small pool with a warm floor is enough. Every session is tagged
with the application name and bounded by the request timeout through startup
parameters, which PostgreSQL applies before the first query.
*/
package postgres

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ghibli/internal/platform/constants"
)

type poolSettings struct {
	maxConns, minConns int32
	maxLifetime        time.Duration
	maxIdle            time.Duration
	healthCheck        time.Duration
	dialTimeout        time.Duration
	pingTimeout        time.Duration
}

var settings = poolSettings{
	maxConns:    16,
	minConns:    2,
	maxLifetime: time.Hour,
	maxIdle:     10 * time.Minute,
	healthCheck: time.Minute,
	dialTimeout: 5 * time.Second,
	pingTimeout: 2 * time.Second,
}

// NewPool connects to the database at dsn and verifies it answers a ping.
func NewPool(context stdctx.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	config, err := poolConfig(dsn)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := stdctx.WithTimeout(context, settings.dialTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(dialCtx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres_pool_create_failed: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_ready",
		slog.String("host", config.ConnConfig.Host),
		slog.String("database", config.ConnConfig.Database),
		slog.Int("max_conns", int(config.MaxConns)),
	)

	return pool, nil
}

// poolConfig parses dsn and applies the pool sizing and session parameters.
func poolConfig(dsn string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres_dsn_invalid: %w", err)
	}

	config.MaxConns = settings.maxConns
	config.MinConns = settings.minConns
	config.MaxConnLifetime = settings.maxLifetime
	config.MaxConnIdleTime = settings.maxIdle
	config.HealthCheckPeriod = settings.healthCheck
	config.ConnConfig.ConnectTimeout = settings.dialTimeout

	// Values given in the DSN win.
	runtime := config.ConnConfig.RuntimeParams
	if _, ok := runtime["application_name"]; !ok {
		runtime["application_name"] = constants.AppName
	}
	if _, ok := runtime["statement_timeout"]; !ok {
		runtime["statement_timeout"] = strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10)
	}

	return config, nil
}

// Ping reports whether the pool can still reach the database.
func Ping(context stdctx.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := stdctx.WithTimeout(context, settings.pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres_ping_failed: %w", err)
	}
	return nil
}
