// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

// Package dberr bridges low-level pgx errors into the daemon's error taxonomy.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kinofeed/projector/internal/platform/apperr"
)

// Wrap inspects a Postgres driver error from action and classifies it. A
// missing row is not a failure for a change-propagation query — the Extractor
// and IdMapper simply see zero results — so [pgx.ErrNoRows] is dropped rather
// than wrapped. Every other error (connection refused, query timeout, bad
// SQLSTATE) becomes a retryable [apperr.SourceUnavailable].
func Wrap(err error, action string) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return apperr.SourceUnavailable(fmt.Errorf("%s: %w", action, err))
}
