// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package account

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroomhq/stockroom/internal/platform/dberr"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

// memberColumns is the select list for member management queries.
const memberColumns = `
	id, company, email, firstname, lastname, passwordhash, role,
	provider, providersubject, emailverified, theme, status,
	createdat, updatedat
`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed member store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns every active member of a company, oldest first.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - []*auth.User: Active members
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, company string) ([]*auth.User, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM users.account
		WHERE company = $1 AND status = 'active'
		ORDER BY createdat ASC
	`

	rows, err := repository.db.Query(context, query, company)
	if err != nil {
		return nil, dberr.Wrap(err, "list_members")
	}
	defer rows.Close()

	var members []*auth.User
	for rows.Next() {
		member := &auth.User{}
		err := rows.Scan(
			&member.ID, &member.Company, &member.Email, &member.FirstName, &member.LastName,
			&member.PasswordHash, &member.Role,
			&member.Provider, &member.ProviderSubject, &member.EmailVerified,
			&member.Theme, &member.Status,
			&member.CreatedAt, &member.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_member")
		}
		members = append(members, member)
	}

	return members, nil
}

/*
FindByID returns the active member with the given ID.

Parameters:
  - context: context.Context
  - company: string
  - userID: string

Returns:
  - *auth.User: Hydrated entity
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, company, userID string) (*auth.User, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM users.account
		WHERE company = $1 AND id = $2 AND status = 'active'
	`

	member := &auth.User{}
	err := repository.db.QueryRow(context, query, company, userID).Scan(
		&member.ID, &member.Company, &member.Email, &member.FirstName, &member.LastName,
		&member.PasswordHash, &member.Role,
		&member.Provider, &member.ProviderSubject, &member.EmailVerified,
		&member.Theme, &member.Status,
		&member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_member_by_id")
	}

	return member, nil
}

/*
UpdateRole replaces a member's role.

Parameters:
  - context: context.Context
  - company: string
  - userID: string
  - role: sec.Role

Returns:
  - error: dberr.ErrNotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateRole(context context.Context, company, userID string, role sec.Role) error {
	query := `
		UPDATE users.account
		SET role = $3, updatedat = now()
		WHERE company = $1 AND id = $2 AND status = 'active'
	`

	tag, err := repository.db.Exec(context, query, company, userID, role)
	if err != nil {
		return dberr.Wrap(err, "update_member_role")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
UpdateProfile replaces the member's editable profile fields.

Parameters:
  - context: context.Context
  - company: string
  - userID: string
  - firstName: string
  - lastName: string
  - theme: string

Returns:
  - error: dberr.ErrNotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateProfile(context context.Context, company, userID, firstName, lastName, theme string) error {
	query := `
		UPDATE users.account
		SET firstname = $3, lastname = $4, theme = $5, updatedat = now()
		WHERE company = $1 AND id = $2 AND status = 'active'
	`

	tag, err := repository.db.Exec(context, query, company, userID, firstName, lastName, theme)
	if err != nil {
		return dberr.Wrap(err, "update_member_profile")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Remove marks a member as removed.

Parameters:
  - context: context.Context
  - company: string
  - userID: string

Returns:
  - error: dberr.ErrNotFound or persistence failures
*/
func (repository *PostgresRepository) Remove(context context.Context, company, userID string) error {
	query := `
		UPDATE users.account
		SET status = '` + auth.StatusRemoved + `', updatedat = now()
		WHERE company = $1 AND id = $2 AND status = 'active'
	`

	tag, err := repository.db.Exec(context, query, company, userID)
	if err != nil {
		return dberr.Wrap(err, "remove_member")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
