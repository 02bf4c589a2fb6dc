// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"fmt"

	"github.com/kinofeed/projector/internal/platform/search"
	"github.com/kinofeed/projector/internal/platform/validate"
	"github.com/kinofeed/projector/pkg/slice"
)

// Transformer turns denormalized rows into destination documents, failing
// fast on any document that does not pass schema validation. A single
// invalid document aborts the whole batch — the watermark responsible for
// it must not advance, so the bad row is retried (and re-fails) on the next
// sweep until the source data is corrected.
type Transformer struct{}

// TransformMovies builds the "movies" documents for the given rows.
func (Transformer) TransformMovies(movies []DenormalizedMovie) ([]search.Document, error) {
	docs := make([]search.Document, 0, len(movies))

	for _, m := range movies {
		var actors, writers, directors, genres []NamedRef
		var actorsNames, writersNames, directorsNames, genresNames []string

		for _, p := range m.Persons {
			ref := NamedRef{ID: p.ID, Name: p.FullName}
			switch p.Role {
			case "actor":
				actors = append(actors, ref)
				actorsNames = append(actorsNames, p.FullName)
			case "writer":
				writers = append(writers, ref)
				writersNames = append(writersNames, p.FullName)
			case "director":
				directors = append(directors, ref)
				directorsNames = append(directorsNames, p.FullName)
			}
		}
		for _, g := range m.Genres {
			genres = append(genres, NamedRef{ID: g.ID, Name: g.Name})
			genresNames = append(genresNames, g.Name)
		}

		doc := MovieDocument{
			ID:             m.ID,
			ImdbRating:     m.Rating,
			Title:          m.Title,
			Description:    m.Description,
			ActorsNames:    orEmpty(actorsNames),
			WritersNames:   orEmpty(writersNames),
			DirectorsNames: orEmpty(directorsNames),
			GenresNames:    orEmpty(genresNames),
			Actors:         orEmptyRefs(actors),
			Writers:        orEmptyRefs(writers),
			Directors:      orEmptyRefs(directors),
			Genres:         orEmptyRefs(genres),
		}

		if err := validate.New(fmt.Sprintf("movies/%s", doc.ID)).
			Required("title", doc.Title).
			UUID("id", doc.ID).
			Custom("imdb_rating", doc.ImdbRating != nil && (*doc.ImdbRating < 0 || *doc.ImdbRating > 10), "Must be between 0 and 10").
			Err(); err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// TransformPersons builds the "persons" documents for the given rows.
func (Transformer) TransformPersons(persons []DenormalizedPerson) ([]search.Document, error) {
	docs := make([]search.Document, 0, len(persons))

	for _, p := range persons {
		var filmIDs, roles []string
		for _, f := range p.Films {
			filmIDs = append(filmIDs, f.ID)
			roles = append(roles, f.Role)
		}

		doc := PersonDocument{
			ID:       p.ID,
			FullName: p.FullName,
			Roles:    orEmpty(slice.Unique(roles)),
			FilmIDs:  orEmpty(slice.Unique(filmIDs)),
		}

		v := validate.New(fmt.Sprintf("persons/%s", doc.ID)).
			Required("full_name", doc.FullName).
			UUID("id", doc.ID)
		for _, role := range doc.Roles {
			v.OneOf("roles", role, "actor", "writer", "director")
		}
		if err := v.Err(); err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// TransformGenres builds the "genres" documents for the given rows.
func (Transformer) TransformGenres(genres []DenormalizedGenre) ([]search.Document, error) {
	docs := make([]search.Document, 0, len(genres))

	for _, g := range genres {
		filmWorks := make([]GenreFilmWork, 0, len(g.FilmWorks))
		for _, fw := range g.FilmWorks {
			filmWorks = append(filmWorks, GenreFilmWork{
				ID:         fw.ID,
				Title:      fw.Title,
				ImdbRating: fw.Rating,
			})
		}

		doc := GenreDocument{
			ID:        g.ID,
			Name:      g.Name,
			FilmWorks: filmWorks,
		}

		if err := validate.New(fmt.Sprintf("genres/%s", doc.ID)).
			Required("name", doc.Name).
			UUID("id", doc.ID).
			Err(); err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// orEmpty normalizes a nil slice to an empty (but non-nil) one, so the
// destination document's array fields never serialize as JSON null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyRefs(s []NamedRef) []NamedRef {
	if s == nil {
		return []NamedRef{}
	}
	return s
}
