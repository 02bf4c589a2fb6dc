// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package constants provides centralized, immutable values for the projector
daemon.

It defines default timeouts, backoff tuning, and cross-cutting keys shared
between the pipeline stages and the platform packages that back them.

Using this package ensures magic strings and magic numbers are eliminated
from the pipeline logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kinofeed-projector"
	AppVersion = "0.1.0-dev"
)

// # External Call Timing

const (
	// SourceQueryTimeout bounds a single Extractor/IdMapper/Denormalizer query.
	SourceQueryTimeout = 30 * time.Second

	// StateStoreTimeout bounds a single watermark Get/Set call.
	StateStoreTimeout = 5 * time.Second

	// LoadTimeout bounds a single bulk-index call to the search engine.
	LoadTimeout = 30 * time.Second

	// PingTimeout bounds a startup health-check ping.
	PingTimeout = 2 * time.Second

	// ConnectTimeout bounds establishing a new physical connection.
	ConnectTimeout = 5 * time.Second

	// StartupTimeout bounds the whole startup sequence (three connection
	// handshakes plus their pings) so a dead dependency fails the process
	// instead of hanging it.
	StartupTimeout = 30 * time.Second

	// ShutdownGracePeriod is how long the process waits for the Supervisor's
	// pipeline currently in flight to finish after a shutdown signal.
	ShutdownGracePeriod = 30 * time.Second
)

// # Retry / Backoff Tuning

const (
	// BackoffInitialInterval is the first retry delay before exponential growth.
	BackoffInitialInterval = 500 * time.Millisecond

	// BackoffMaxInterval caps the exponential growth of successive retry delays.
	BackoffMaxInterval = 30 * time.Second

	// BackoffMaxElapsedTime is the total time a single retried call may spend
	// retrying before giving up and surfacing the error to the Supervisor.
	// Each call site in a pipeline turn has its own budget.
	BackoffMaxElapsedTime = 2 * time.Minute
)

// # Pipeline Defaults

const (
	// DefaultPollPeriodSeconds is how long the Supervisor sleeps between
	// full sweeps of the pipeline catalog.
	DefaultPollPeriodSeconds = 2

	// DefaultPostgresBatchSize is the default Extractor LIMIT.
	DefaultPostgresBatchSize = 1000

	// DefaultElasticBatchSize is the default Batcher chunk size.
	DefaultElasticBatchSize = 1000

	// DefaultRedisPort is appended to --redis-host when the operator gives
	// a bare hostname.
	DefaultRedisPort = "6379"
)

// # State Store Key Grammar

const (
	// StateKeyFormat is the watermark key grammar: {table}.{index}.{field}.
	StateKeyFormat = "%s.%s.%s"

	// StateFieldTimestamp and StateFieldID name the two halves of a
	// watermark. The timestamp half is called "updated_at" even for the
	// link-table pipelines that order by created_at — the key names the
	// watermark's slot, not the source column behind it.
	StateFieldTimestamp = "updated_at"
	StateFieldID        = "last_id"
)
