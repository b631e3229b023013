// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ghibli/internal/platform/database/schema"
	"github.com/taibuivan/ghibli/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.User.Columns(), ", ")

/*
Create persists a new user record into the users table.

Description: The ID and timestamps are generated by the database and written
back into the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrEmailTaken on a duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s`,
		schema.User.Table, schema.User.Username, schema.User.Email, schema.User.Password,
		schema.User.ID, schema.User.CreatedAt, schema.User.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, schema.User.EmailKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.User.Table, schema.User.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmailOrUsername retrieves the user whose email or username equals the identifier.

Description: Usernames are not unique. An exact email match sorts first; among
username matches the oldest account wins.

Parameters:
  - context: context.Context
  - identifier: string

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmailOrUsername(context context.Context, identifier string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 OR %s = $1
		ORDER BY (%s = $1) DESC, %s ASC
		LIMIT 1`,
		userColumns, schema.User.Table,
		schema.User.Email, schema.User.Username,
		schema.User.Email, schema.User.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, identifier))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_identifier_failed: %w", err)
	}

	return user, nil
}

// scanUser hydrates a [User] in the order of [schema.UserTable.Columns].
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
