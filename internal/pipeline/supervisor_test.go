// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinofeed/projector/internal/pipeline"
	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/search"
	"github.com/kinofeed/projector/internal/platform/state"
)

// fakeExtractor returns a single fixed batch of rows exactly once, then an
// empty batch forever after — just enough to drive one pipeline turn.
type fakeExtractor struct {
	batch     []pipeline.SourceRow
	served    bool
	fetchCall int
}

func (f *fakeExtractor) FetchBatch(_ context.Context, _, _, _ string, _ pipeline.Watermark, _ int) ([]pipeline.SourceRow, error) {
	f.fetchCall++
	if f.served {
		return nil, nil
	}
	f.served = true
	return f.batch, nil
}

type fakeDenormalizer struct {
	movies []pipeline.DenormalizedMovie
}

func (f *fakeDenormalizer) DenormalizeMovies(_ context.Context, _ []string) ([]pipeline.DenormalizedMovie, error) {
	return f.movies, nil
}
func (f *fakeDenormalizer) DenormalizePersons(_ context.Context, _ []string) ([]pipeline.DenormalizedPerson, error) {
	return nil, nil
}
func (f *fakeDenormalizer) DenormalizeGenres(_ context.Context, _ []string) ([]pipeline.DenormalizedGenre, error) {
	return nil, nil
}

type fakeLoader struct {
	loadedBatches int
	loadedDocs    int
}

func (f *fakeLoader) Load(_ context.Context, _ string, docs []search.Document) (*apperr.AppError, error) {
	f.loadedBatches++
	f.loadedDocs += len(docs)
	return nil, nil
}

// outageStore fails every call until recovered, then delegates to a real
// in-memory store.
type outageStore struct {
	inner     *state.MemoryStore
	recovered bool
}

func (s *outageStore) Get(ctx context.Context, key, fallback string) (string, error) {
	if !s.recovered {
		return "", errors.New("state: connection refused")
	}
	return s.inner.Get(ctx, key, fallback)
}

func (s *outageStore) Set(ctx context.Context, key, value string) error {
	if !s.recovered {
		return errors.New("state: connection refused")
	}
	return s.inner.Set(ctx, key, value)
}

func singlePipelineCatalog() pipeline.PipelineConfig {
	return pipeline.PipelineConfig{
		Name:           "film_work->movies",
		SourceTable:    `"public".film_work`,
		TimestampField: "updated_at",
		ForeignIDField: "id",
		IDMapper:       pipeline.DirectIDMapper{},
		Denorm:         pipeline.DenormMovies,
		Index:          "movies",
	}
}

/*
TestSupervisor_AdvancesWatermarkOnEmptyDownstreamResult verifies the core
invariant: the watermark tracks the Extractor's own batch, not how many
documents the Denormalizer/Transformer produced from it.
*/
func TestSupervisor_AdvancesWatermarkOnEmptyDownstreamResult(t *testing.T) {
	lastTS := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	extractor := &fakeExtractor{batch: []pipeline.SourceRow{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", ForeignID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Timestamp: lastTS},
	}}
	denorm := &fakeDenormalizer{movies: nil} // zero documents produced
	loader := &fakeLoader{}
	store := state.NewMemoryStore()

	sup := &pipeline.Supervisor{
		Catalog:      []pipeline.PipelineConfig{singlePipelineCatalog()},
		Extractor:    extractor,
		Denormalizer: denorm,
		Transformer:  pipeline.Transformer{},
		Loader:       loader,
		Store:        store,
		PollPeriod:   time.Hour,
		PgBatchSize:  100,
		EsBatchSize:  100,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run exactly one sweep by canceling right after.
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	require.NoError(t, sup.Run(ctx))

	w, err := pipeline.GetWatermark(context.Background(), store, `"public".film_work`, "movies")
	require.NoError(t, err)
	assert.Equal(t, "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", w.LastID)
	assert.True(t, lastTS.Equal(w.Timestamp))
	assert.Equal(t, 0, loader.loadedBatches)
}

func TestSupervisor_LoadsProducedDocuments(t *testing.T) {
	lastTS := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	extractor := &fakeExtractor{batch: []pipeline.SourceRow{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", ForeignID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Timestamp: lastTS},
	}}
	denorm := &fakeDenormalizer{movies: []pipeline.DenormalizedMovie{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Title: "Solaris"},
	}}
	loader := &fakeLoader{}
	store := state.NewMemoryStore()

	sup := &pipeline.Supervisor{
		Catalog:      []pipeline.PipelineConfig{singlePipelineCatalog()},
		Extractor:    extractor,
		Denormalizer: denorm,
		Transformer:  pipeline.Transformer{},
		Loader:       loader,
		Store:        store,
		PollPeriod:   time.Hour,
		PgBatchSize:  100,
		EsBatchSize:  100,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	require.NoError(t, sup.Run(ctx))

	assert.Equal(t, 1, loader.loadedBatches)
	assert.Equal(t, 1, loader.loadedDocs)
}

/*
TestSupervisor_StateOutageAbortsTurnThenResumes verifies that a state-store
failure aborts the pipeline's turn before anything reaches the search
engine, and that once the store recovers the next sweep picks up from the
pre-failure watermark.
*/
func TestSupervisor_StateOutageAbortsTurnThenResumes(t *testing.T) {
	lastTS := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	extractor := &fakeExtractor{batch: []pipeline.SourceRow{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", ForeignID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Timestamp: lastTS},
	}}
	denorm := &fakeDenormalizer{movies: []pipeline.DenormalizedMovie{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Title: "Solaris"},
	}}
	loader := &fakeLoader{}
	store := &outageStore{inner: state.NewMemoryStore()}

	sup := &pipeline.Supervisor{
		Catalog:      []pipeline.PipelineConfig{singlePipelineCatalog()},
		Extractor:    extractor,
		Denormalizer: denorm,
		Transformer:  pipeline.Transformer{},
		Loader:       loader,
		Store:        store,
		PollPeriod:   10 * time.Millisecond,
		PgBatchSize:  100,
		EsBatchSize:  100,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = sup.Run(ctx)
		close(done)
	}()

	// Let at least one sweep fail against the dead store: the watermark
	// read aborts the turn, so nothing must have reached the loader.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, loader.loadedBatches)

	store.recovered = true
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 1, loader.loadedBatches)

	w, err := pipeline.GetWatermark(context.Background(), store, `"public".film_work`, "movies")
	require.NoError(t, err)
	assert.Equal(t, "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", w.LastID)
}

/*
TestSupervisor_PartialLoadStillAdvancesWatermark pins the at-least-once
trade-off: per-item bulk rejections are logged but do not block the
watermark, because rolling it back would stall every row behind one bad
document.
*/
func TestSupervisor_PartialLoadStillAdvancesWatermark(t *testing.T) {
	lastTS := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	extractor := &fakeExtractor{batch: []pipeline.SourceRow{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", ForeignID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Timestamp: lastTS},
	}}
	denorm := &fakeDenormalizer{movies: []pipeline.DenormalizedMovie{
		{ID: "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", Title: "Solaris"},
	}}
	loader := &partialLoader{}
	store := state.NewMemoryStore()

	sup := &pipeline.Supervisor{
		Catalog:      []pipeline.PipelineConfig{singlePipelineCatalog()},
		Extractor:    extractor,
		Denormalizer: denorm,
		Transformer:  pipeline.Transformer{},
		Loader:       loader,
		Store:        store,
		PollPeriod:   time.Hour,
		PgBatchSize:  100,
		EsBatchSize:  100,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	require.NoError(t, sup.Run(ctx))

	w, err := pipeline.GetWatermark(context.Background(), store, `"public".film_work`, "movies")
	require.NoError(t, err)
	assert.Equal(t, "018f7b3a-6c3e-7e3a-9f3a-0242ac120001", w.LastID)
	assert.True(t, lastTS.Equal(w.Timestamp))
}

// partialLoader rejects every document it is handed, as a bulk API would
// report per-item mapping failures.
type partialLoader struct{}

func (partialLoader) Load(_ context.Context, index string, docs []search.Document) (*apperr.AppError, error) {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.DocumentID()
	}
	return apperr.LoadPartial(index, len(docs), len(docs), ids), nil
}
