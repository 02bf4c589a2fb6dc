// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kinofeed/projector/internal/platform/dberr"
	"github.com/kinofeed/projector/pkg/slice"
)

// IDMapper turns the foreign ids the Extractor read off a source table into
// the set of target-entity ids the Denormalizer must re-fetch. It never
// itself advances — or suppresses advancing — the watermark; that remains
// the Extractor's sole responsibility.
type IDMapper interface {
	MapIDs(ctx context.Context, pool *pgxpool.Pool, foreignIDs []string) ([]string, error)
}

// DirectIDMapper forwards the Extractor's foreign ids unchanged (after
// deduplication). It is used when the source table's changed rows already
// name the target entity directly — a film_work row names itself, a
// person_film_work row names its film_work_id.
type DirectIDMapper struct{}

// MapIDs implements [IDMapper].
func (DirectIDMapper) MapIDs(_ context.Context, _ *pgxpool.Pool, foreignIDs []string) ([]string, error) {
	return slice.Unique(foreignIDs), nil
}

// JoinIDMapper resolves the Extractor's foreign ids into target-entity ids
// by intersecting them against a link table: a changed person or genre row
// must be translated into the set of film_work ids that reference it (or,
// for the persons/genres pipelines, back into the set of person/genre ids
// that still have at least one film appearance).
type JoinIDMapper struct {
	SelectField string
	JoinTable   string
	JoinField   string
}

// MapIDs implements [IDMapper].
func (m JoinIDMapper) MapIDs(ctx context.Context, pool *pgxpool.Pool, foreignIDs []string) ([]string, error) {
	if len(foreignIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		`SELECT t.%s AS id FROM %s t WHERE t.%s = ANY($1::uuid[])`,
		m.SelectField, m.JoinTable, m.JoinField,
	)

	rows, err := pool.Query(ctx, query, foreignIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "idmapper.join")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "idmapper.join.scan")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "idmapper.join.rows")
	}

	return slice.Unique(ids), nil
}
