// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kinofeed/projector/internal/platform/dberr"
)

// Extractor reads rows changed since a watermark from a source table.
type Extractor struct {
	Pool *pgxpool.Pool
}

// batchQuery builds the keyset-pagination query for one source table. The
// composite predicate is the load-bearing part: `ts > $1` alone would lose
// rows sharing their timestamp with the cursor, `ts >= $1` would replay the
// cursor row forever — only the (ts, id) tuple is a strict total order the
// cursor can resume from. The tie-break compares ids the same way the
// ORDER BY sorts them, so the two always agree.
func batchQuery(table, timestampField, foreignIDField string) string {
	return fmt.Sprintf(`
		SELECT id, %s AS foreign_id, %s AS ts
		FROM %s
		WHERE (%s = $1 AND id > $2::uuid) OR %s > $1
		ORDER BY %s, id
		LIMIT $3
	`, foreignIDField, timestampField, table, timestampField, timestampField, timestampField)
}

// FetchBatch returns up to limit rows from table whose (timestampField, id)
// sorts after after, ordered by (timestampField, id) so a tie on the
// timestamp is broken deterministically and no row is skipped across
// consecutive calls. foreignIDField names the column forwarded to the
// IdMapper — it may be the row's own id column.
func (e *Extractor) FetchBatch(
	ctx context.Context,
	table, timestampField, foreignIDField string,
	after Watermark,
	limit int,
) ([]SourceRow, error) {
	query := batchQuery(table, timestampField, foreignIDField)

	rows, err := e.Pool.Query(ctx, query, after.Timestamp, after.LastID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "extractor.fetch_batch")
	}
	defer rows.Close()

	var batch []SourceRow
	for rows.Next() {
		var row SourceRow
		if err := rows.Scan(&row.ID, &row.ForeignID, &row.Timestamp); err != nil {
			return nil, dberr.Wrap(err, "extractor.fetch_batch.scan")
		}
		batch = append(batch, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "extractor.fetch_batch.rows")
	}

	return batch, nil
}
