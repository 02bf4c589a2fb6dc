// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

/*
Package pipeline implements the Extractor, IdMapper, Denormalizer,
Transformer, Batcher, Loader and Supervisor stages that move a change in a
normalized Postgres row into a denormalized document in the search engine.

Every stage boundary uses an explicit Go type — the only untyped payload in
the whole chain is the driver-level jsonb scan inside the Denormalizer,
unmarshaled immediately into the Denormalized* structs below.
*/
package pipeline

import "time"

// SourceRow is one row the Extractor read from a source table. ID is the
// row's own primary key, used to advance the watermark. ForeignID is the
// column value the IdMapper forwards downstream — for film_work/person/genre
// rows this equals ID; for the person_film_work/genre_film_work link tables
// it is the film_work_id (or person_id/genre_id) the link row points at.
type SourceRow struct {
	ID        string
	ForeignID string
	Timestamp time.Time
}

// DenormTag selects which Denormalizer/Transformer query a [PipelineConfig]
// runs, in place of the subclass dispatch the original implementation used.
type DenormTag string

const (
	DenormMovies  DenormTag = "movies"
	DenormPersons DenormTag = "persons"
	DenormGenres  DenormTag = "genres"
)

// # Denormalized row shapes (Denormalizer output / Transformer input)

// DenormalizedMovie is one film_work row joined against its cast/crew and
// genres.
type DenormalizedMovie struct {
	ID          string
	Title       string
	Description *string
	Rating      *float64
	Type        string
	Persons     []DenormPersonRef
	Genres      []DenormGenreRef
}

// DenormPersonRef is one person credited on a film, with their role.
type DenormPersonRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// DenormGenreRef is one genre attached to a film.
type DenormGenreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DenormalizedPerson is one person row joined against the films they
// appear in.
type DenormalizedPerson struct {
	ID       string
	FullName string
	Films    []DenormFilmRoleRef
}

// DenormFilmRoleRef is one film a person is credited on, with their role on
// that film.
type DenormFilmRoleRef struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// DenormalizedGenre is one genre row joined against the films tagged with
// it.
type DenormalizedGenre struct {
	ID        string
	Name      string
	FilmWorks []DenormFilmRatingRef
}

// DenormFilmRatingRef is one film tagged with a genre, carrying just enough
// to populate the genre document's embedded film list.
type DenormFilmRatingRef struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Rating *float64 `json:"rating"`
}

// # Destination documents (Transformer output / Loader input)

// NamedRef is an {id, name} pair embedded in a movie document's cast/crew
// lists.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieDocument is the "movies" index schema.
type MovieDocument struct {
	ID             string     `json:"id"`
	ImdbRating     *float64   `json:"imdb_rating"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	ActorsNames    []string   `json:"actors_names"`
	WritersNames   []string   `json:"writers_names"`
	DirectorsNames []string   `json:"directors_names"`
	GenresNames    []string   `json:"genres_names"`
	Actors         []NamedRef `json:"actors"`
	Writers        []NamedRef `json:"writers"`
	Directors      []NamedRef `json:"directors"`
	Genres         []NamedRef `json:"genres"`
}

// DocumentID implements [search.Document].
func (d MovieDocument) DocumentID() string { return d.ID }

// PersonDocument is the "persons" index schema.
type PersonDocument struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
	FilmIDs  []string `json:"film_ids"`
}

// DocumentID implements [search.Document].
func (d PersonDocument) DocumentID() string { return d.ID }

// GenreFilmWork is one film embedded in a genre document.
type GenreFilmWork struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	ImdbRating *float64 `json:"imdb_rating"`
}

// GenreDocument is the "genres" index schema.
type GenreDocument struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	FilmWorks []GenreFilmWork `json:"filmworks"`
}

// DocumentID implements [search.Document].
func (d GenreDocument) DocumentID() string { return d.ID }
