// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package company

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroomhq/stockroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed company store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
FindBySlug retrieves a single company record by its primary key.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Company: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Company, error) {
	const query = `
		SELECT slug, name, adminuid, createdat
		FROM core.company
		WHERE slug = $1
	`
	company := &Company{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&company.Slug, &company.Name, &company.AdminUID, &company.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_company_by_slug")
	}
	return company, nil
}

/*
Create inserts a new company record.

Parameters:
  - context: context.Context
  - company: *Company

Returns:
  - error: Conflict on duplicate slug, other persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, company *Company) error {
	const query = `
		INSERT INTO core.company (slug, name, createdat)
		VALUES ($1, $2, NOW())
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query, company.Slug, company.Name).Scan(&company.CreatedAt)
	return dberr.Wrap(err, "create_company")
}

/*
EnsureExists inserts the company only if the slug is free.

Description: Uses ON CONFLICT DO NOTHING so concurrent signups into the same
company never fail; the first writer wins and later callers simply join.

Parameters:
  - context: context.Context
  - company: *Company

Returns:
  - bool: true if this call created the company row
  - error: Persistence failures
*/
func (repository *PostgresRepository) EnsureExists(context context.Context, company *Company) (bool, error) {
	const query = `
		INSERT INTO core.company (slug, name, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slug) DO NOTHING
	`
	result, err := repository.db.Exec(context, query, company.Slug, company.Name)
	if err != nil {
		return false, dberr.Wrap(err, "ensure_company")
	}
	return result.RowsAffected() > 0, nil
}

/*
SetAdmin records the founding admin uid, first writer wins.

Parameters:
  - context: context.Context
  - slug: string
  - adminUID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) SetAdmin(context context.Context, slug, adminUID string) error {
	const query = `
		UPDATE core.company
		SET adminuid = $2
		WHERE slug = $1 AND adminuid = ''
	`
	if _, err := repository.db.Exec(context, query, slug, adminUID); err != nil {
		return dberr.Wrap(err, "set_company_admin")
	}
	return nil
}
