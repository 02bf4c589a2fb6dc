// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package schema

// GenreTable represents the 'public.genre' table.
type GenreTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// Genre is the schema definition for public.genre.
var Genre = GenreTable{
	Table:     `"public".genre`,
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

