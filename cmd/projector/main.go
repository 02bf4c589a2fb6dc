// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Projector is the entry point for the Kinofeed change-propagation daemon.

It watches a normalized PostgreSQL source store for changes and keeps a
denormalized Elasticsearch-compatible search index caught up, one durable
watermark per pipeline.

Usage:

	go run cmd/projector/main.go [flags]

The flags/environment variables are:

	--postgres-url   PostgreSQL source store DSN
	--elastic-url    Elasticsearch-compatible search engine URL
	--redis-host     Redis watermark state store host
	--poll-period    seconds to sleep between catalog sweeps
	--pg-batch       Extractor query page size
	--es-batch       Batcher bulk-index chunk size
	LOG_LEVEL        minimum slog level (default: info)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Bind CLI flags, then load the deployment-only environment var.
 3. Storage: Establish connections to Postgres, Redis, and the search engine.
 4. Wiring: Construct the Supervisor from its catalog and connected stores.
 5. Run: Sweep the catalog until a shutdown signal arrives.

No business logic lives here. This file is strictly for orchestration and
wiring.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kinofeed/projector/internal/pipeline"
	"github.com/kinofeed/projector/internal/platform/config"
	"github.com/kinofeed/projector/internal/platform/constants"
	"github.com/kinofeed/projector/internal/platform/ctxutil"
	pgstore "github.com/kinofeed/projector/internal/platform/postgres"
	"github.com/kinofeed/projector/internal/platform/search"
	"github.com/kinofeed/projector/internal/platform/state"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "projector",
		Short: "Keep a denormalized search index caught up with its PostgreSQL source",
	}
	cfg := config.BindFlags(rootCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cfg)
	}

	if err := rootCmd.Execute(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("projector_initializing", slog.String("version", constants.AppVersion))

	// # 2. Configuration
	if err := config.LoadEnv(cfg); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level := parseLevel(cfg.LogLevel); level != slog.LevelInfo {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})).With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	pollPeriod := time.Duration(cfg.PollPeriodSeconds) * time.Second

	log.Info("configuration_loaded",
		slog.Duration("poll_period", pollPeriod),
		slog.Int("pg_batch", cfg.PostgresBatchSize),
		slog.Int("es_batch", cfg.ElasticBatchSize),
	)

	// Root context for startup. A deadline prevents the daemon from hanging
	// if a dependency never becomes reachable.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.PostgresURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis (watermark state store)
	rdb, err := state.NewClient(startupCtx, cfg.RedisHost, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()
	store := state.NewRedisStore(rdb)

	// # 5. Search engine
	esClient, err := search.NewClient(startupCtx, cfg.ElasticURL)
	if err != nil {
		return fmt.Errorf("connect to search engine: %w", err)
	}
	bulk := search.NewBulkLoader(esClient)

	// # 6. Supervisor Wiring
	supervisor := pipeline.NewSupervisor(pool, store, bulk, pollPeriod, cfg.PostgresBatchSize, cfg.ElasticBatchSize)

	// # 7. Lifecycle Handling
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()
	appCtx = ctxutil.WithLogger(appCtx, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	runErr := make(chan error, 1)
	go func() {
		runErr <- supervisor.Run(appCtx)
	}()

	log.Info("projector_running")

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))

		// Start Graceful Shutdown Sequence: Run observes cancellation only
		// between pipelines, so the pipeline in flight is allowed to finish
		// and persist its watermark before this function returns. A stuck
		// external call is abandoned after the grace period — the watermark
		// it never advanced means its rows simply redeliver on next start.
		appCancel()
		select {
		case <-runErr:
		case <-time.After(constants.ShutdownGracePeriod):
			log.Warn("shutdown_grace_period_expired")
		}

	case err := <-runErr:
		if err != nil {
			return err
		}
	}

	log.Info("graceful_shutdown_complete")
	return nil
}

// parseLevel maps the daemon's LOG_LEVEL setting onto a [slog.Level],
// defaulting to Info for an unrecognized value.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
