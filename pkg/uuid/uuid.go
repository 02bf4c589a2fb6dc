// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package uuid provides time-ordered unique identifiers and canonical-string
comparison helpers used to order the watermark's (timestamp, last_id) pair.

It wraps the standard UUID library to specifically generate Version 7 values,
which are optimized for database performance.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Friendly: Prevents index fragmentation in PostgreSQL (B-tree optimal).
  - Compact: 128-bit storage, compatible with standard 'uuid' types.

New exists mainly for test fixtures — the daemon itself never mints IDs,
it only reads and compares the UUIDs Postgres already assigned.
*/
package uuid

import "github.com/google/uuid"

// Zero is the canonical string form of the nil UUID, the watermark's
// last_id starting value before any row has ever been seen.
const Zero = "00000000-0000-0000-0000-000000000000"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	// Convert the UUID to a string
	return id.String()
}

// # Ordering

// Less reports whether a sorts before b among canonical UUID strings. Every
// group in a canonical UUID string (8-4-4-4-12 hex digits, hyphens in fixed
// positions) has fixed width, so byte-wise string comparison of the
// lowercased forms agrees with numeric comparison of the underlying 128-bit
// values — no need to parse into [16]byte first.
func Less(a, b string) bool {
	return Normalize(a) < Normalize(b)
}

// Normalize lowercases id for comparison. Malformed input is returned
// unchanged — ordering comparisons on a malformed watermark are a
// configuration bug, not something to mask with a silent fallback.
func Normalize(id string) string {
	out := make([]byte, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
