// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package retry wraps [backoff.Retry] with this daemon's error taxonomy.

An operation's error is inspected with [apperr.IsRetryable]: a retryable
kind (SourceUnavailable, StateUnavailable, LoadUnavailable) keeps backing
off, anything else stops immediately via [backoff.Permanent] — a
TransformError or ConfigError retrying would just spin on the same bad
document or DSN until MaxElapsedTime expires for no benefit.
*/
package retry

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/constants"
)

// newBackOff builds the daemon's standard exponential backoff policy.
func newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = constants.BackoffInitialInterval
	bo.MaxInterval = constants.BackoffMaxInterval
	bo.MaxElapsedTime = constants.BackoffMaxElapsedTime
	return bo
}

// Do runs op, retrying with exponential backoff as long as op's error is
// [apperr.IsRetryable]. It stops immediately on a non-retryable error, or
// once MaxElapsedTime has elapsed, or when ctx is canceled.
func Do(ctx context.Context, op func() error) error {
	err := backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if apperr.IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(newBackOff(), ctx))

	return err
}
