// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package apperr defines the centralized error taxonomy for the projector daemon.

It bridges low-level Postgres/Redis/Elasticsearch errors into the small set of
kinds the retry layer and the Supervisor reason about, instead of string-matching
driver errors at every call site:

  - SourceUnavailable, StateUnavailable, LoadUnavailable: retryable I/O failures.
  - TransformError: a destination document failed schema validation. Fatal for
    the batch — the watermark must not advance past it.
  - ConfigError: a startup configuration failure.
  - LoadPartial: informational — some bulk-index items were rejected, but the
    pipeline still treats the turn as successful (at-least-once delivery).

Unlike an HTTP-facing error type, there is no client-visible status code here:
every consumer of [AppError] is internal to the daemon.
*/
package apperr

import (
	"errors"
	"fmt"
)

// AppError is the canonical error type for the projector daemon.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "SOURCE_UNAVAILABLE").
	Code string
	// Message is a human-readable, log-safe description.
	Message string
	// Cause is the underlying error, if any.
	Cause error
	// Retryable reports whether the retry helper should back off and retry
	// this condition rather than abort the pipeline turn immediately.
	Retryable bool
	// Details holds per-field failures for TRANSFORM_ERROR documents.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Retryable kinds

// SourceUnavailable wraps a relational-store connection or query failure.
func SourceUnavailable(cause error) *AppError {
	return &AppError{Code: "SOURCE_UNAVAILABLE", Message: "relational store unreachable", Cause: cause, Retryable: true}
}

// StateUnavailable wraps a state-store (Redis) connection failure.
func StateUnavailable(cause error) *AppError {
	return &AppError{Code: "STATE_UNAVAILABLE", Message: "state store unreachable", Cause: cause, Retryable: true}
}

// LoadUnavailable wraps a search-engine connection failure.
func LoadUnavailable(cause error) *AppError {
	return &AppError{Code: "LOAD_UNAVAILABLE", Message: "search engine unreachable", Cause: cause, Retryable: true}
}

// # Non-retryable kinds

// TransformError wraps a destination-schema validation failure for the named
// subject (typically "movies/<id>"-style document identifier).
func TransformError(subject string, details ...FieldError) *AppError {
	return &AppError{
		Code:    "TRANSFORM_ERROR",
		Message: fmt.Sprintf("document %s failed schema validation", subject),
		Details: details,
	}
}

// ConfigError wraps a startup configuration failure.
func ConfigError(cause error) *AppError {
	return &AppError{Code: "CONFIG_ERROR", Message: "invalid configuration", Cause: cause}
}

// # Informational kind

// LoadPartial describes a bulk index operation where some documents were
// rejected. It is never returned as an error from the Loader — it exists so
// callers have a single structured value to log with
// slog.Any("error", apperr.LoadPartial(...)) even though the pipeline treats
// the turn as successful.
func LoadPartial(index string, rejected, total int, sample []string) *AppError {
	return &AppError{
		Code:    "LOAD_PARTIAL",
		Message: fmt.Sprintf("%d/%d documents rejected indexing into %s (sample ids: %v)", rejected, total, index, sample),
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsRetryable reports whether err is an [*AppError] marked Retryable. An
// unclassified error is treated as non-retryable: it is assumed to be a
// programmer or data bug rather than transient I/O.
func IsRetryable(err error) bool {
	ae := As(err)
	return ae != nil && ae.Retryable
}
