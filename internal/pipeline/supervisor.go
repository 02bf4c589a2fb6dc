// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kinofeed/projector/internal/platform/apperr"
	"github.com/kinofeed/projector/internal/platform/ctxutil"
	"github.com/kinofeed/projector/internal/platform/retry"
	"github.com/kinofeed/projector/internal/platform/search"
	"github.com/kinofeed/projector/internal/platform/state"
	"github.com/kinofeed/projector/pkg/slice"
)

// rowSource is the Extractor's interface as the Supervisor sees it —
// narrowed so unit tests can substitute a fake without a live Postgres pool.
type rowSource interface {
	FetchBatch(ctx context.Context, table, timestampField, foreignIDField string, after Watermark, limit int) ([]SourceRow, error)
}

// denormalizerSource is the Denormalizer's interface as the Supervisor sees it.
type denormalizerSource interface {
	DenormalizeMovies(ctx context.Context, filmIDs []string) ([]DenormalizedMovie, error)
	DenormalizePersons(ctx context.Context, personIDs []string) ([]DenormalizedPerson, error)
	DenormalizeGenres(ctx context.Context, genreIDs []string) ([]DenormalizedGenre, error)
}

// documentLoader is the Loader's interface as the Supervisor sees it.
type documentLoader interface {
	Load(ctx context.Context, index string, docs []search.Document) (*apperr.AppError, error)
}

// Supervisor runs one turn (a single Extractor batch) of every
// [PipelineConfig] in its catalog, then sleeps PollPeriod before sweeping
// again. It observes a shutdown signal
// only between pipelines, never mid-pipeline — a pipeline turn either
// finishes (and persists its watermark) or it doesn't run at all.
type Supervisor struct {
	Catalog      []PipelineConfig
	Pool         *pgxpool.Pool
	Extractor    rowSource
	Denormalizer denormalizerSource
	Transformer  Transformer
	Loader       documentLoader
	Store        state.Store
	PollPeriod   time.Duration
	PgBatchSize  int
	EsBatchSize  int
}

// NewSupervisor wires a Supervisor from its connected dependencies and the
// default seven-pipeline catalog.
func NewSupervisor(pool *pgxpool.Pool, store state.Store, bulk *search.BulkLoader, pollPeriod time.Duration, pgBatchSize, esBatchSize int) *Supervisor {
	return &Supervisor{
		Catalog:      Catalog(),
		Pool:         pool,
		Extractor:    &Extractor{Pool: pool},
		Denormalizer: &Denormalizer{Pool: pool},
		Transformer:  Transformer{},
		Loader:       &Loader{Bulk: bulk},
		Store:        store,
		PollPeriod:   pollPeriod,
		PgBatchSize:  pgBatchSize,
		EsBatchSize:  esBatchSize,
	}
}

// Run sweeps the catalog until ctx is canceled.
func (s *Supervisor) Run(ctx context.Context) error {
	logger := ctxutil.GetLogger(ctx)

	for {
		for _, cfg := range s.Catalog {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			// The turn runs detached from cancellation so a shutdown lets it
			// finish; ctx is only consulted between pipelines.
			if err := s.runTurn(context.WithoutCancel(ctx), cfg); err != nil {
				logger.Error("pipeline turn failed", slog.String("pipeline", cfg.Name), slog.Any("error", err))
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.PollPeriod):
		}
	}
}

// runTurn runs one pipeline once: extract, map ids, denormalize, transform,
// batch, load, then advance the watermark. The watermark advances based on
// the Extractor's batch of source rows — not on how many documents the
// downstream stages produced — as long as no stage returned an error.
func (s *Supervisor) runTurn(ctx context.Context, cfg PipelineConfig) error {
	logger := ctxutil.GetLogger(ctx).With(
		slog.String("pipeline", cfg.Name),
		slog.String("table", cfg.SourceTable),
		slog.String("index", cfg.Index),
	)
	ctx = ctxutil.WithLogger(ctx, logger)

	var watermark Watermark
	if err := retry.Do(ctx, func() error {
		var getErr error
		watermark, getErr = GetWatermark(ctx, s.Store, cfg.SourceTable, cfg.Index)
		return getErr
	}); err != nil {
		logger.Error("failed to read watermark", slog.Any("error", err))
		return err
	}

	var rows []SourceRow
	if err := retry.Do(ctx, func() error {
		var fetchErr error
		rows, fetchErr = s.Extractor.FetchBatch(ctx, cfg.SourceTable, cfg.TimestampField, cfg.ForeignIDField, watermark, s.PgBatchSize)
		return fetchErr
	}); err != nil {
		logger.Error("extractor failed", slog.Any("error", err))
		return err
	}

	if len(rows) == 0 {
		return nil
	}
	logger.Info("fetched updated rows", slog.Int("count", len(rows)))

	foreignIDs := slice.Map(rows, func(r SourceRow) string { return r.ForeignID })

	var targetIDs []string
	if err := retry.Do(ctx, func() error {
		var mapErr error
		targetIDs, mapErr = cfg.IDMapper.MapIDs(ctx, s.Pool, foreignIDs)
		return mapErr
	}); err != nil {
		logger.Error("idmapper failed", slog.Any("error", err))
		return err
	}

	if len(targetIDs) > 0 {
		logger.Debug("mapped target ids", slog.Int("count", len(targetIDs)))

		var docs []search.Document
		if err := retry.Do(ctx, func() error {
			var buildErr error
			docs, buildErr = s.denormalizeAndTransform(ctx, cfg, targetIDs)
			return buildErr
		}); err != nil {
			logger.Error("denormalize/transform failed", slog.Any("error", err))
			return err
		}

		loaded := 0
		for _, batch := range (Batcher{Size: s.EsBatchSize}).Split(docs) {
			var partial *apperr.AppError
			if err := retry.Do(ctx, func() error {
				var loadErr error
				partial, loadErr = s.Loader.Load(ctx, cfg.Index, batch)
				return loadErr
			}); err != nil {
				logger.Error("load failed", slog.Any("error", err))
				return err
			}
			if partial != nil {
				logger.Warn("documents rejected during load", slog.Any("error", partial))
			}
			loaded += len(batch)
		}
		logger.Info("updated documents", slog.Int("count", loaded))
	}

	last := rows[len(rows)-1]
	newWatermark := Watermark{Timestamp: last.Timestamp, LastID: last.ID}
	if !watermark.Less(newWatermark) {
		// The extractor query selects strictly past the cursor, so a batch
		// whose last row does not advance it means the query and the
		// persisted cursor disagree on ordering. Persisting would mask the
		// bug; leaving the cursor put makes it visible as a replay.
		logger.Warn("watermark did not advance",
			slog.Time("timestamp", newWatermark.Timestamp),
			slog.String("last_id", newWatermark.LastID),
		)
		return nil
	}
	if err := retry.Do(ctx, func() error {
		return SetWatermark(ctx, s.Store, cfg.SourceTable, cfg.Index, newWatermark)
	}); err != nil {
		logger.Error("failed to persist watermark", slog.Any("error", err))
		return err
	}

	return nil
}

// denormalizeAndTransform dispatches to the Denormalizer/Transformer pair
// named by cfg.Denorm.
func (s *Supervisor) denormalizeAndTransform(ctx context.Context, cfg PipelineConfig, ids []string) ([]search.Document, error) {
	switch cfg.Denorm {
	case DenormMovies:
		movies, err := s.Denormalizer.DenormalizeMovies(ctx, ids)
		if err != nil {
			return nil, err
		}
		return s.Transformer.TransformMovies(movies)

	case DenormPersons:
		persons, err := s.Denormalizer.DenormalizePersons(ctx, ids)
		if err != nil {
			return nil, err
		}
		return s.Transformer.TransformPersons(persons)

	case DenormGenres:
		genres, err := s.Denormalizer.DenormalizeGenres(ctx, ids)
		if err != nil {
			return nil, err
		}
		return s.Transformer.TransformGenres(genres)

	default:
		return nil, apperr.ConfigError(nil)
	}
}
