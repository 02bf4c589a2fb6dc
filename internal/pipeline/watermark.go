// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/kinofeed/projector/internal/platform/constants"
	"github.com/kinofeed/projector/internal/platform/state"
	"github.com/kinofeed/projector/pkg/uuid"
)

// Watermark is the durable cursor a pipeline resumes from: every source row
// with a later timestamp, or an equal timestamp and a greater id, has not
// been seen yet.
type Watermark struct {
	Timestamp time.Time
	LastID    string
}

// zeroWatermark is the starting cursor for a pipeline that has never run.
var zeroWatermark = Watermark{Timestamp: time.Unix(0, 0).UTC(), LastID: uuid.Zero}

// timestampLayout renders the watermark timestamp with a numeric UTC
// offset ("+00:00") rather than RFC 3339's "Z" shorthand, matching the
// values the daemon's predecessors persisted. Parsing accepts both.
const timestampLayout = "2006-01-02T15:04:05.999999999-07:00"

// Less reports whether w sorts strictly before other in the lexicographic
// (timestamp, last_id) order the extractor query paginates by. The id half
// only matters on a timestamp tie.
func (w Watermark) Less(other Watermark) bool {
	if !w.Timestamp.Equal(other.Timestamp) {
		return w.Timestamp.Before(other.Timestamp)
	}
	return uuid.Less(w.LastID, other.LastID)
}

// GetWatermark reads a pipeline's watermark from store, defaulting to the
// zero watermark if it has never been written.
func GetWatermark(ctx context.Context, store state.Store, table, index string) (Watermark, error) {
	tsKey := fmt.Sprintf(constants.StateKeyFormat, table, index, constants.StateFieldTimestamp)
	idKey := fmt.Sprintf(constants.StateKeyFormat, table, index, constants.StateFieldID)

	tsValue, err := store.Get(ctx, tsKey, zeroWatermark.Timestamp.Format(timestampLayout))
	if err != nil {
		return Watermark{}, err
	}
	idValue, err := store.Get(ctx, idKey, zeroWatermark.LastID)
	if err != nil {
		return Watermark{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, tsValue)
	if err != nil {
		return Watermark{}, fmt.Errorf("pipeline: corrupt watermark timestamp %q: %w", tsValue, err)
	}

	return Watermark{Timestamp: ts, LastID: idValue}, nil
}

// SetWatermark persists w as the pipeline's new cursor.
func SetWatermark(ctx context.Context, store state.Store, table, index string, w Watermark) error {
	tsKey := fmt.Sprintf(constants.StateKeyFormat, table, index, constants.StateFieldTimestamp)
	idKey := fmt.Sprintf(constants.StateKeyFormat, table, index, constants.StateFieldID)

	if err := store.Set(ctx, tsKey, w.Timestamp.Format(timestampLayout)); err != nil {
		return err
	}
	return store.Set(ctx, idKey, w.LastID)
}
