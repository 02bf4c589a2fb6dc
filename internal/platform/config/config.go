// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package config handles application-wide settings and environment parsing.

It combines two sources, mirroring the split this codebase's services draw
between operator-facing flags and deployment-facing environment variables:

  - CLI flags (spf13/cobra), for the six pipeline-tuning switches — every one
    of them has a sane default, so none are environment-required.
  - Environment variables (caarlos0/env), for the one setting that is purely
    a deployment concern: log verbosity.

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Postgres, Redis, Elasticsearch)
    via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the projector daemon.
type Config struct {
	// PostgresURL is the DSN for the normalized relational source store.
	PostgresURL string

	// ElasticURL is the base URL of the Elasticsearch-compatible search engine.
	ElasticURL string

	// RedisHost is the hostname (optionally host:port) of the watermark
	// state store.
	RedisHost string

	// PollPeriodSeconds is how long the Supervisor sleeps between catalog
	// sweeps.
	PollPeriodSeconds int

	// PostgresBatchSize is the Extractor's per-query LIMIT.
	PostgresBatchSize int

	// ElasticBatchSize is the Batcher's chunk size for bulk-index requests.
	ElasticBatchSize int

	// LogLevel controls the minimum [log/slog.Level] emitted by the daemon.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// # Configuration Loading

// BindFlags registers the daemon's CLI flags on cmd, with the defaults
// named in the external-interfaces contract, and returns the [Config] they
// will populate once cmd.Execute parses argv.
func BindFlags(cmd *cobra.Command) *Config {
	cfg := &Config{}

	flags := cmd.Flags()
	flags.StringVar(&cfg.PostgresURL, "postgres-url", "postgresql://localhost:5432/", "PostgreSQL source store DSN")
	flags.StringVar(&cfg.ElasticURL, "elastic-url", "http://localhost:9200", "Elasticsearch-compatible search engine URL")
	flags.StringVar(&cfg.RedisHost, "redis-host", "localhost", "Redis watermark state store host")
	flags.IntVar(&cfg.PollPeriodSeconds, "poll-period", constants.DefaultPollPeriodSeconds, "seconds to sleep between catalog sweeps")
	flags.IntVar(&cfg.PostgresBatchSize, "pg-batch", constants.DefaultPostgresBatchSize, "Extractor query page size")
	flags.IntVar(&cfg.ElasticBatchSize, "es-batch", constants.DefaultElasticBatchSize, "Batcher bulk-index chunk size")

	return cfg
}

// Validate rejects tuning values that would stall or break the daemon
// outright: a non-positive batch size produces queries that can never make
// progress, and a non-positive poll period busy-loops against the source.
func Validate(cfg *Config) error {
	switch {
	case cfg.PollPeriodSeconds <= 0:
		return apperr.ConfigError(fmt.Errorf("poll-period must be positive, got %d", cfg.PollPeriodSeconds))
	case cfg.PostgresBatchSize <= 0:
		return apperr.ConfigError(fmt.Errorf("pg-batch must be positive, got %d", cfg.PostgresBatchSize))
	case cfg.ElasticBatchSize <= 0:
		return apperr.ConfigError(fmt.Errorf("es-batch must be positive, got %d", cfg.ElasticBatchSize))
	}
	return nil
}

// LoadEnv parses the environment-sourced fields (currently just LOG_LEVEL)
// into cfg, leaving the flag-sourced fields BindFlags already populated
// untouched.
func LoadEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return nil
}
