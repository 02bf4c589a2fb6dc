// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/kinofeed/projector/internal/platform/ctxkey"
)

// # Structured Logging

// WithLogger returns a new context with the provided logger attached. The
// Supervisor calls this once per pipeline turn, attaching fields for the
// source table and destination index so every log line emitted by the
// stages below it is already scoped without threading a logger parameter
// through every function signature.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
