// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/drecktrack/internal/platform/database/schema"
	"github.com/taibuivan/drecktrack/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userSelect = fmt.Sprintf("SELECT %s FROM %s",
	strings.Join(schema.UserAccount.Columns(), ", "), schema.UserAccount.Table)

/*
FindByID retrieves a user record by primary key.

Returns:
  - *User: Hydrated account entity
  - error: ErrUserNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("%s WHERE %s = $1", userSelect, schema.UserAccount.ID)
	return repository.findOne(context, query, "find_user_by_id", id)
}

/*
FindByLogin retrieves a user record by username, or by email ignoring case.
*/
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := fmt.Sprintf("%s WHERE %s = $1 OR lower(%s) = lower($1) LIMIT 1",
		userSelect, schema.UserAccount.Username, schema.UserAccount.Email)
	return repository.findOne(context, query, "find_user_by_login", login)
}

/*
Exists reports whether username or email is already registered.
*/
func (repository *PostgresUserRepository) Exists(context context.Context, username, email string) (bool, bool, error) {
	account := schema.UserAccount
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %[1]s WHERE %[2]s = $1),
			EXISTS (SELECT 1 FROM %[1]s WHERE lower(%[3]s) = lower($2))`,
		account.Table, account.Username, account.Email)

	var usernameTaken, emailTaken bool
	if err := repository.pool.QueryRow(context, query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		return false, false, dberr.Wrap(err, "User", "user_exists")
	}
	return usernameTaken, emailTaken, nil
}

/*
Create persists a new user record into users.account.

Description: Initializes timestamps when absent. A concurrent registration of
the same username or email surfaces as a CONFLICT through the unique indexes.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: CONFLICT or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	columns := schema.UserAccount.Columns()
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		schema.UserAccount.Table, strings.Join(columns, ", "))

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return dberr.Wrap(err, "User", "create_user")
}

func (repository *PostgresUserRepository) findOne(context context.Context, query, action string, args ...any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, dberr.Wrap(err, "User", action)
	}

	return user, nil
}
