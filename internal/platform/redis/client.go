// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the session cache.

The cache holds one key per user with the only refresh token that may
currently be exchanged. Each refresh or logout is a single short script call
made while serving a request, so the client honors request deadlines and
keeps a small pool.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ghibli/internal/platform/constants"
)

const pingTimeout = 2 * time.Second

// NewClient connects to redisURL and verifies the server answers a ping.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := clientOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("session_cache_ready",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// clientOptions parses redisURL and applies pool sizing and timeouts.
func clientOptions(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_url_invalid: %w", err)
	}

	if options.ClientName == "" {
		options.ClientName = constants.AppName
	}
	options.ContextTimeoutEnabled = true

	options.PoolSize = 8
	options.MinIdleConns = 1
	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = time.Second
	options.WriteTimeout = time.Second

	return options, nil
}

// Ping reports whether the session cache is reachable.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}
	return nil
}
