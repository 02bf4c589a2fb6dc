// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"github.com/kinofeed/projector/internal/platform/search"
	"github.com/kinofeed/projector/pkg/slice"
)

// Batcher re-chunks a transformed document set into fixed-size groups
// before the Loader bulk-indexes them, so a single pipeline turn's
// documents never exceed the search engine's preferred request size.
type Batcher struct {
	Size int
}

// Split groups docs into batches of at most b.Size, preserving order. It
// never produces an empty group.
func (b Batcher) Split(docs []search.Document) [][]search.Document {
	return slice.Batch(docs, b.Size)
}
