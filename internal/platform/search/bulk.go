// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v7/esutil"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/constants"
)

// Document is implemented by every destination document type (movie,
// person, genre) so the Loader can key a bulk-index item without a
// per-type switch.
type Document interface {
	DocumentID() string
}

// BulkLoader indexes batches of documents keyed by (index, id).
type BulkLoader struct {
	client *Client
}

// NewBulkLoader wraps an already-connected [Client].
func NewBulkLoader(client *Client) *BulkLoader {
	return &BulkLoader{client: client}
}

// Load bulk-indexes docs into index.
//
// A connection or marshaling failure returns a non-nil error
// ([apperr.LoadUnavailable]) and the watermark must not advance. Per-item
// rejections (a single malformed document, say) do not fail the call — they
// come back as the first return value, an [*apperr.AppError] with code
// LOAD_PARTIAL, for the caller to log; the watermark still advances, per the
// at-least-once delivery contract.
func (l *BulkLoader) Load(ctx context.Context, index string, docs []Document) (*apperr.AppError, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.LoadTimeout)
	defer cancel()

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        l.client.es,
		Index:         index,
		NumWorkers:    1,
		FlushInterval: 30 * time.Second,
	})
	if err != nil {
		return nil, apperr.LoadUnavailable(err)
	}

	var mu sync.Mutex
	var rejected []string

	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return nil, apperr.LoadUnavailable(err)
		}

		id := doc.DocumentID()
		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: id,
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, _ esutil.BulkIndexerResponseItem, _ error) {
				mu.Lock()
				rejected = append(rejected, item.DocumentID)
				mu.Unlock()
			},
		}

		if err := indexer.Add(ctx, item); err != nil {
			return nil, apperr.LoadUnavailable(err)
		}
	}

	if err := indexer.Close(ctx); err != nil {
		return nil, apperr.LoadUnavailable(err)
	}

	if len(rejected) == 0 {
		return nil, nil
	}

	sample := rejected
	if len(sample) > 5 {
		sample = sample[:5]
	}
	return apperr.LoadPartial(index, len(rejected), len(docs), sample), nil
}
