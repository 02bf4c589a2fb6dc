// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package schema

// GenreFilmWorkTable represents the 'public.genre_film_work' link table
// between genre and film_work.
type GenreFilmWorkTable struct {
	Table      string
	ID         string
	FilmWorkID string
	GenreID    string
	CreatedAt  string
}

// GenreFilmWork is the schema definition for public.genre_film_work. Like
// person_film_work, it has no updated_at column.
var GenreFilmWork = GenreFilmWorkTable{
	Table:      `"public".genre_film_work`,
	ID:         "id",
	FilmWorkID: "film_work_id",
	GenreID:    "genre_id",
	CreatedAt:  "created_at",
}

