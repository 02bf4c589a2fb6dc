// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import "github.com/kinofeed/projector/internal/platform/database/schema"

// PipelineConfig is one entry in the Supervisor's catalog: a source table
// watched for changes, the transformation by which a change is translated
// into denormalized documents, and the destination index those documents
// are loaded into.
type PipelineConfig struct {
	// Name labels this pipeline in logs and metrics, e.g. "person->movies".
	Name string

	// SourceTable is the fully qualified table name the Extractor polls.
	SourceTable string

	// TimestampField is the column the Extractor orders by. The movies
	// pipelines on film_work, person and genre use updated_at; the two link
	// tables, which have no updated_at column, and the persons and genres
	// pipelines watermark on created_at instead.
	TimestampField string

	// ForeignIDField is the column of a changed row that the IdMapper is
	// handed — the row's own id for a direct-entity table, or the
	// film_work_id/person_id/genre_id a link-table row names.
	ForeignIDField string

	// IDMapper turns a batch of ForeignIDField values into the set of
	// target-entity ids the Denormalizer must re-fetch.
	IDMapper IDMapper

	// Denorm selects the Denormalizer/Transformer pair this pipeline runs.
	Denorm DenormTag

	// Index is the destination search-engine index.
	Index string
}

// Catalog returns the seven pipelines that keep the movies, persons, and
// genres indices in sync with their respective source tables. A single
// source table can feed more than one pipeline — a person edit must
// refresh both the persons index (the person's own document) and the
// movies index (every film they are credited on).
func Catalog() []PipelineConfig {
	return []PipelineConfig{
		{
			Name:           "film_work->movies",
			SourceTable:    schema.FilmWork.Table,
			TimestampField: schema.FilmWork.UpdatedAt,
			ForeignIDField: schema.FilmWork.ID,
			IDMapper:       DirectIDMapper{},
			Denorm:         DenormMovies,
			Index:          "movies",
		},
		{
			Name:           "person->movies",
			SourceTable:    schema.Person.Table,
			TimestampField: schema.Person.UpdatedAt,
			ForeignIDField: schema.Person.ID,
			IDMapper: JoinIDMapper{
				SelectField: schema.PersonFilmWork.FilmWorkID,
				JoinTable:   schema.PersonFilmWork.Table,
				JoinField:   schema.PersonFilmWork.PersonID,
			},
			Denorm: DenormMovies,
			Index:  "movies",
		},
		{
			Name:           "genre->movies",
			SourceTable:    schema.Genre.Table,
			TimestampField: schema.Genre.UpdatedAt,
			ForeignIDField: schema.Genre.ID,
			IDMapper: JoinIDMapper{
				SelectField: schema.GenreFilmWork.FilmWorkID,
				JoinTable:   schema.GenreFilmWork.Table,
				JoinField:   schema.GenreFilmWork.GenreID,
			},
			Denorm: DenormMovies,
			Index:  "movies",
		},
		{
			Name:           "person_film_work->movies",
			SourceTable:    schema.PersonFilmWork.Table,
			TimestampField: schema.PersonFilmWork.CreatedAt,
			ForeignIDField: schema.PersonFilmWork.FilmWorkID,
			IDMapper:       DirectIDMapper{},
			Denorm:         DenormMovies,
			Index:          "movies",
		},
		{
			Name:           "genre_film_work->movies",
			SourceTable:    schema.GenreFilmWork.Table,
			TimestampField: schema.GenreFilmWork.CreatedAt,
			ForeignIDField: schema.GenreFilmWork.FilmWorkID,
			IDMapper:       DirectIDMapper{},
			Denorm:         DenormMovies,
			Index:          "movies",
		},
		{
			Name:           "person->persons",
			SourceTable:    schema.Person.Table,
			TimestampField: schema.Person.CreatedAt,
			ForeignIDField: schema.Person.ID,
			IDMapper: JoinIDMapper{
				SelectField: schema.PersonFilmWork.PersonID,
				JoinTable:   schema.PersonFilmWork.Table,
				JoinField:   schema.PersonFilmWork.PersonID,
			},
			Denorm: DenormPersons,
			Index:  "persons",
		},
		{
			Name:           "genre->genres",
			SourceTable:    schema.Genre.Table,
			TimestampField: schema.Genre.CreatedAt,
			ForeignIDField: schema.Genre.ID,
			IDMapper: JoinIDMapper{
				SelectField: schema.GenreFilmWork.GenreID,
				JoinTable:   schema.GenreFilmWork.Table,
				JoinField:   schema.GenreFilmWork.GenreID,
			},
			Denorm: DenormGenres,
			Index:  "genres",
		},
	}
}
