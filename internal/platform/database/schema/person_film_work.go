// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package schema

// PersonFilmWorkTable represents the 'public.person_film_work' link table
// between person and film_work, carrying the person's role in that film.
type PersonFilmWorkTable struct {
	Table       string
	ID          string
	FilmWorkID  string
	PersonID    string
	Role        string
	CreatedAt   string
}

// PersonFilmWork is the schema definition for public.person_film_work. The
// table has no updated_at column — link rows are created once, never
// revised in place — so every pipeline keyed on this table watermarks
// against CreatedAt instead.
var PersonFilmWork = PersonFilmWorkTable{
	Table:      `"public".person_film_work`,
	ID:         "id",
	FilmWorkID: "film_work_id",
	PersonID:   "person_id",
	Role:       "role",
	CreatedAt:  "created_at",
}

