// Copyright (c) 2026 Kinofeed. All rights reserved.
// Author: platform@kinofeed.dev

package pipeline

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kinofeed/projector/internal/platform/dberr"
)

// Denormalizer re-fetches a set of target-entity ids joined against
// everything a destination document needs, in a single round trip per
// index via LEFT JOIN LATERAL ... array_agg(jsonb_build_object(...)).
type Denormalizer struct {
	Pool *pgxpool.Pool
}

// DenormalizeMovies fetches film_work rows joined against their cast/crew
// and genres.
func (d *Denormalizer) DenormalizeMovies(ctx context.Context, filmIDs []string) ([]DenormalizedMovie, error) {
	if len(filmIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT
			fw.id,
			fw.title,
			fw.description,
			fw.rating,
			fw.type,
			COALESCE(to_jsonb(fwp.persons), '[]') AS persons,
			COALESCE(to_jsonb(fwg.genres), '[]') AS genres
		FROM "public".film_work fw
		LEFT JOIN LATERAL (
			SELECT
				pfw.film_work_id,
				array_agg(jsonb_build_object(
					'id', p.id,
					'full_name', p.full_name,
					'role', pfw.role
				)) AS persons
			FROM "public".person_film_work pfw
			JOIN "public".person p ON p.id = pfw.person_id
			WHERE pfw.film_work_id = fw.id
			GROUP BY 1
		) fwp ON TRUE
		LEFT JOIN LATERAL (
			SELECT
				gfw.film_work_id,
				array_agg(jsonb_build_object(
					'id', g.id,
					'name', g.name
				)) AS genres
			FROM "public".genre_film_work gfw
			JOIN "public".genre g ON g.id = gfw.genre_id
			WHERE gfw.film_work_id = fw.id
			GROUP BY 1
		) fwg ON TRUE
		WHERE fw.id = ANY($1::uuid[])
	`

	rows, err := d.Pool.Query(ctx, query, filmIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "denormalizer.movies")
	}
	defer rows.Close()

	var movies []DenormalizedMovie
	for rows.Next() {
		var (
			m           DenormalizedMovie
			personsJSON []byte
			genresJSON  []byte
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Rating, &m.Type, &personsJSON, &genresJSON); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.movies.scan")
		}
		if err := json.Unmarshal(personsJSON, &m.Persons); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.movies.unmarshal_persons")
		}
		if err := json.Unmarshal(genresJSON, &m.Genres); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.movies.unmarshal_genres")
		}
		// Defense in depth against a lateral join that returns a JSON "null"
		// rather than an empty array for a film with no credited persons.
		if m.Persons == nil {
			m.Persons = []DenormPersonRef{}
		}
		if m.Genres == nil {
			m.Genres = []DenormGenreRef{}
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "denormalizer.movies.rows")
	}

	return movies, nil
}

// DenormalizePersons fetches person rows joined against the films they
// appear in.
func (d *Denormalizer) DenormalizePersons(ctx context.Context, personIDs []string) ([]DenormalizedPerson, error) {
	if len(personIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT p.id, p.full_name, COALESCE(to_jsonb(fwp.films), '[]') AS films
		FROM person p
		LEFT JOIN LATERAL (
			SELECT
				array_agg(jsonb_build_object(
					'id', pfw.film_work_id,
					'role', pfw.role
				)) AS films
			FROM person_film_work pfw
			WHERE pfw.person_id = p.id
		) fwp ON TRUE
		WHERE p.id = ANY($1::uuid[])
	`

	rows, err := d.Pool.Query(ctx, query, personIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "denormalizer.persons")
	}
	defer rows.Close()

	var persons []DenormalizedPerson
	for rows.Next() {
		var (
			p         DenormalizedPerson
			filmsJSON []byte
		)
		if err := rows.Scan(&p.ID, &p.FullName, &filmsJSON); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.persons.scan")
		}
		if err := json.Unmarshal(filmsJSON, &p.Films); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.persons.unmarshal_films")
		}
		if p.Films == nil {
			p.Films = []DenormFilmRoleRef{}
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "denormalizer.persons.rows")
	}

	return persons, nil
}

// DenormalizeGenres fetches genre rows joined against the films tagged
// with them.
func (d *Denormalizer) DenormalizeGenres(ctx context.Context, genreIDs []string) ([]DenormalizedGenre, error) {
	if len(genreIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT g.id, g.name, COALESCE(to_jsonb(fwg.filmworks), '[]') AS filmworks
		FROM "public".genre g
		LEFT JOIN LATERAL (
			SELECT
				array_agg(jsonb_build_object(
					'id', fw.id,
					'title', fw.title,
					'rating', fw.rating
				)) AS filmworks
			FROM "public".genre_film_work gfw
			JOIN "public".film_work fw ON fw.id = gfw.film_work_id
			WHERE gfw.genre_id = g.id
		) fwg ON TRUE
		WHERE g.id = ANY($1::uuid[])
	`

	rows, err := d.Pool.Query(ctx, query, genreIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "denormalizer.genres")
	}
	defer rows.Close()

	var genres []DenormalizedGenre
	for rows.Next() {
		var (
			g             DenormalizedGenre
			filmworksJSON []byte
		)
		if err := rows.Scan(&g.ID, &g.Name, &filmworksJSON); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.genres.scan")
		}
		if err := json.Unmarshal(filmworksJSON, &g.FilmWorks); err != nil {
			return nil, dberr.Wrap(err, "denormalizer.genres.unmarshal_filmworks")
		}
		if g.FilmWorks == nil {
			g.FilmWorks = []DenormFilmRatingRef{}
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "denormalizer.genres.rows")
	}

	return genres, nil
}
