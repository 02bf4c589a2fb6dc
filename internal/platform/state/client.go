// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package state provides the durable watermark store the Supervisor reads and
writes between pipeline turns.

It is backed by a Redis-compatible key-value store, accessed through a narrow
[Store] interface so the pipeline package can be tested against an in-memory
double instead of a live Redis instance.

Core Responsibilities:

  - Durability: a watermark survives a daemon restart.
  - Isolation: the pipeline package never imports go-redis directly.
*/
package state

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kinofeed/projector/internal/platform/constants"
)

// Opinionated default timeouts for Redis operations.
const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
)

// NewClient connects to the Redis instance at host and returns a
// ready-to-use client. A bare hostname gets the default Redis port
// appended.
//
// # Parameters
//   - context: Context for the initial ping.
//   - host: Redis host, or host:port.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, host string, logger *slog.Logger) (*redis.Client, error) {
	addr := host
	if !strings.Contains(addr, ":") {
		addr = net.JoinHostPort(addr, constants.DefaultRedisPort)
	}

	// Pool configuration tuning: the Supervisor issues its watermark
	// Gets/Sets one at a time, never concurrently, so a small pool is plenty.
	options := &redis.Options{
		Addr:         addr,
		PoolSize:     4,
		MinIdleConns: 1,

		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("state store connected",
		slog.String("addr", options.Addr),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, constants.PingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("state: ping failed: %w", err)
	}

	return nil
}
