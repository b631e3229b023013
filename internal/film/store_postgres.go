// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ghibli/internal/platform/database/schema"
	"github.com/taibuivan/ghibli/internal/platform/dberr"
)

// # Film Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	filmColumns = strings.Join(schema.Film.Columns(), ", ")

	// cutSelect projects a cut with its vote count and whether $1 voted on it.
	cutSelect = fmt.Sprintf(`
		SELECT c.%[1]s, c.%[2]s, c.%[3]s,
			COUNT(v.%[4]s) AS votescount,
			COALESCE(BOOL_OR(v.%[4]s = $1), FALSE) AS isvoted
		FROM %[5]s c
		LEFT JOIN %[6]s v ON v.%[7]s = c.%[1]s`,
		schema.Cut.ID, schema.Cut.Src, schema.Cut.FilmID,
		schema.CutVote.UserID,
		schema.Cut.Table, schema.CutVote.Table, schema.CutVote.CutID,
	)
)

/*
ListFilms retrieves one page of films starting at the cursor.

Parameters:
  - context: context.Context
  - cursor: int64 (Smallest ID to include)
  - limit: int (Rows to read)

Returns:
  - []*Film: Films ordered by ID
  - error: Query failures
*/
func (repository *PostgresRepository) ListFilms(context context.Context, cursor int64, limit int) ([]*Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s >= $1 ORDER BY %s ASC LIMIT $2`,
		filmColumns, schema.Film.Table, schema.Film.ID, schema.Film.ID)

	rows, err := repository.pool.Query(context, query, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_film_repo_list_failed: %w", err)
	}

	films, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Film, error) {
		return scanFilm(row)
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_film_repo_list_scan_failed: %w", err)
	}

	return films, nil
}

/*
FindFilm retrieves a film by its primary key.

Returns:
  - *Film: Hydrated entity
  - error: ErrFilmNotFound or query failures
*/
func (repository *PostgresRepository) FindFilm(context context.Context, id int64) (*Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		filmColumns, schema.Film.Table, schema.Film.ID)

	film, err := scanFilm(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrFilmNotFound
		}
		return nil, fmt.Errorf("postgres_film_repo_find_failed: %w", err)
	}

	return film, nil
}

/*
ListCuts retrieves every cut of a film with aggregated votes.

Returns:
  - []*Cut: Cuts ordered by ID
  - error: Query failures
*/
func (repository *PostgresRepository) ListCuts(context context.Context, filmID, viewerID int64) ([]*Cut, error) {
	query := fmt.Sprintf(`%s
		WHERE c.%s = $2
		GROUP BY c.%s
		ORDER BY c.%s ASC`,
		cutSelect, schema.Cut.FilmID, schema.Cut.ID, schema.Cut.ID)

	rows, err := repository.pool.Query(context, query, viewerID, filmID)
	if err != nil {
		return nil, fmt.Errorf("postgres_cut_repo_list_failed: %w", err)
	}

	cuts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Cut, error) {
		return scanCut(row)
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_cut_repo_list_scan_failed: %w", err)
	}

	return cuts, nil
}

/*
FindCut retrieves a single cut with aggregated votes.

Returns:
  - *Cut: Hydrated entity
  - error: ErrCutNotFound or query failures
*/
func (repository *PostgresRepository) FindCut(context context.Context, cutID, viewerID int64) (*Cut, error) {
	query := fmt.Sprintf(`%s
		WHERE c.%s = $2
		GROUP BY c.%s`,
		cutSelect, schema.Cut.ID, schema.Cut.ID)

	cut, err := scanCut(repository.pool.QueryRow(context, query, viewerID, cutID))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrCutNotFound
		}
		return nil, fmt.Errorf("postgres_cut_repo_find_failed: %w", err)
	}

	return cut, nil
}

/*
ToggleVote flips the user's vote on a cut inside a transaction.

Description: Deletes an existing vote; when there was none, inserts one.
A foreign key violation means the cut does not exist.

Returns:
  - bool: true if the vote now exists
  - error: ErrCutNotFound or persistence failures
*/
func (repository *PostgresRepository) ToggleVote(context context.Context, userID, cutID int64) (bool, error) {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CutVote.Table, schema.CutVote.UserID, schema.CutVote.CutID)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CutVote.Table, schema.CutVote.UserID, schema.CutVote.CutID)

	var voted bool
	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, deleteQuery, userID, cutID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			voted = false
			return nil
		}

		if _, err := tx.Exec(context, insertQuery, userID, cutID); err != nil {
			return err
		}
		voted = true
		return nil
	})

	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return false, ErrCutNotFound
		}
		return false, fmt.Errorf("postgres_cut_repo_toggle_vote_failed: %w", err)
	}

	return voted, nil
}

// scanFilm hydrates a [Film] in the order of [schema.FilmTable.Columns].
func scanFilm(row pgx.Row) (*Film, error) {
	film := &Film{}
	err := row.Scan(
		&film.ID,
		&film.Title,
		&film.Subtitle,
		&film.Description,
		&film.Genre,
		&film.RunningTime,
		&film.Release,
		&film.PosterImg,
		&film.Director,
	)
	if err != nil {
		return nil, err
	}
	return film, nil
}

func scanCut(row pgx.Row) (*Cut, error) {
	cut := &Cut{}
	if err := row.Scan(&cut.ID, &cut.Src, &cut.FilmID, &cut.VotesCount, &cut.IsVoted); err != nil {
		return nil, err
	}
	return cut, nil
}
