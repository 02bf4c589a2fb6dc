// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinofeed/projector/internal/platform/state"
)

/*
TestMemoryStore_GetDefault verifies a missing key falls back to the caller's default.
*/
func TestMemoryStore_GetDefault(t *testing.T) {
	store := state.NewMemoryStore()

	value, err := store.Get(context.Background(), "film_work.movies.updated_at", "1970-01-01T00:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00Z", value)
}

/*
TestMemoryStore_SetThenGet verifies a stored value is returned over the fallback.
*/
func TestMemoryStore_SetThenGet(t *testing.T) {
	store := state.NewMemoryStore()
	ctx := context.Background()

	require := assert.New(t)
	require.NoError(store.Set(ctx, "film_work.movies.updated_at", "2026-01-01T00:00:00Z"))

	value, err := store.Get(ctx, "film_work.movies.updated_at", "1970-01-01T00:00:00Z")
	require.NoError(err)
	require.Equal("2026-01-01T00:00:00Z", value)
}
