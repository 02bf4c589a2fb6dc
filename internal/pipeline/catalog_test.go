// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinofeed/projector/internal/pipeline"
)

func TestCatalog_HasSevenPipelines(t *testing.T) {
	catalog := pipeline.Catalog()
	assert.Len(t, catalog, 7)
}

func TestCatalog_EveryEntryHasAnIDMapperAndIndex(t *testing.T) {
	for _, cfg := range pipeline.Catalog() {
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.SourceTable)
		assert.NotEmpty(t, cfg.TimestampField)
		assert.NotEmpty(t, cfg.ForeignIDField)
		assert.NotNil(t, cfg.IDMapper)
		assert.NotEmpty(t, cfg.Index)
	}
}

func TestCatalog_LinkTablesWatermarkOnCreatedAt(t *testing.T) {
	for _, cfg := range pipeline.Catalog() {
		switch cfg.Name {
		case "person_film_work->movies", "genre_film_work->movies":
			assert.Equal(t, "created_at", cfg.TimestampField)
		}
	}
}
