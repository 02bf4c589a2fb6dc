// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"context"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/search"
)

// Loader bulk-indexes a batch of documents, keyed by (index, id).
type Loader struct {
	Bulk *search.BulkLoader
}

// Load indexes docs into index. See [search.BulkLoader.Load] for the
// partial-failure contract: a non-nil *apperr.AppError with a nil error is
// informational (LOAD_PARTIAL) and does not block the watermark from
// advancing.
func (l *Loader) Load(ctx context.Context, index string, docs []search.Document) (*apperr.AppError, error) {
	return l.Bulk.Load(ctx, index, docs)
}
