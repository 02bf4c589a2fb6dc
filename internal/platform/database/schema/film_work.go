// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package schema

// FilmWorkTable represents the 'public.film_work' table.
type FilmWorkTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Rating      string
	Type        string
	CreatedAt   string
	UpdatedAt   string
}

// FilmWork is the schema definition for public.film_work.
var FilmWork = FilmWorkTable{
	Table:       `"public".film_work`,
	ID:          "id",
	Title:       "title",
	Description: "description",
	Rating:      "rating",
	Type:        "type",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

