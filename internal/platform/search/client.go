// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package search provides the Loader's connection to the destination search
engine.

Core Responsibilities:

  - Connection: a thin wrapper over [elasticsearch.Client] with a startup
    health check, the same shape as this codebase's postgres/state clients.
  - Bulk loading: [BulkLoader] drives [esutil.BulkIndexer] so the Loader
    never hand-rolls NDJSON framing or per-item retry bookkeeping.
*/
package search

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v7"

	"github.com/kinofeed/projector/internal/platform/constants"
)

// Client wraps the underlying Elasticsearch HTTP client.
type Client struct {
	es *elasticsearch.Client
}

// NewClient builds a [Client] for url and verifies it is reachable.
func NewClient(ctx context.Context, url string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("search: invalid client config: %w", err)
	}

	client := &Client{es: es}
	if err := Ping(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Ping verifies that the search engine is reachable.
func Ping(ctx context.Context, client *Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, constants.PingTimeout)
	defer cancel()

	res, err := client.es.Ping(client.es.Ping.WithContext(pingCtx))
	if err != nil {
		return fmt.Errorf("search: ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("search: ping returned status %s", res.Status())
	}
	return nil
}
