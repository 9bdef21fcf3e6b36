// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroomhq/stockroom/internal/platform/dberr"
)

// userColumns is the canonical select list for account queries.
const userColumns = `
	id, company, email, firstname, lastname, passwordhash, role,
	provider, providersubject, emailverified, theme, status,
	createdat, updatedat
`

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed account store.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// scanUser hydrates one account from a row.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Company, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.Role,
		&user.Provider, &user.ProviderSubject, &user.EmailVerified,
		&user.Theme, &user.Status,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID returns the active account with the given ID within a company.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - *User: Hydrated entity
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, company, id string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE company = $1 AND id = $2 AND status = 'active'
	`

	user, err := scanUser(repository.db.QueryRow(context, query, company, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

/*
FindByEmail returns the active account with the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE LOWER(email) = LOWER($1) AND status = 'active'
	`

	user, err := scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

/*
FindByProviderSubject returns the active account bound to a federated subject.

Parameters:
  - context: context.Context
  - subject: string

Returns:
  - *User: Hydrated entity
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresUserRepository) FindByProviderSubject(context context.Context, subject string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE providersubject = $1 AND status = 'active'
	`

	user, err := scanUser(repository.db.QueryRow(context, query, subject))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_provider_subject")
	}
	return user, nil
}

/*
Create persists a brand-new member account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict when the email is already registered
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO users.account (
			id, company, email, firstname, lastname, passwordhash, role,
			provider, providersubject, emailverified, theme, status,
			createdat, updatedat
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		user.ID, user.Company, user.Email, user.FirstName, user.LastName,
		user.PasswordHash, user.Role,
		user.Provider, user.ProviderSubject, user.EmailVerified,
		user.Theme, user.Status,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

/*
UpdatePassword replaces only the account's password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: dberr.ErrNotFound or persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := `
		UPDATE users.account
		SET passwordhash = $2, updatedat = now()
		WHERE id = $1 AND status = 'active'
	`

	tag, err := repository.db.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
MarkVerified flips the account's emailverified flag to true.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: dberr.ErrNotFound or persistence failures
*/
func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID string) error {
	query := `
		UPDATE users.account
		SET emailverified = true, updatedat = now()
		WHERE id = $1 AND status = 'active'
	`

	tag, err := repository.db.Exec(context, query, userID)
	if err != nil {
		return dberr.Wrap(err, "mark_user_verified")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
