// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package state

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/constants"
)

// Store is the get-with-default / set contract every watermark field is read
// and written through. A missing key is not an error — it means the pipeline
// has never run for that (table, index, field) triple, and the caller's
// fallback becomes the starting watermark.
type Store interface {
	// Get returns the value stored at key, or fallback if key does not exist.
	Get(ctx context.Context, key, fallback string) (string, error)
	// Set stores value at key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}

// RedisStore is the production [Store], backed by a *redis.Client.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client as a [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get implements [Store].
func (s *RedisStore) Get(ctx context.Context, key, fallback string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.StateStoreTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return fallback, nil
	}
	if err != nil {
		return "", apperr.StateUnavailable(err)
	}
	return value, nil
}

// Set implements [Store]. Watermarks never expire: a TTL would silently
// rewind the pipeline to scratch after the key lapses.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.StateStoreTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return apperr.StateUnavailable(err)
	}
	return nil
}
