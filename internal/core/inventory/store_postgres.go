// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroomhq/stockroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed inventory store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// itemColumns is the canonical scan order shared by all single-item queries.
const itemColumns = `
	id, company, name, description, category, quantity, price, supplier,
	sold, reorderlevel, createdat, updatedat
`

// scanItem hydrates one row in the [itemColumns] order.
func scanItem(row pgx.Row) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID, &item.Company, &item.Name, &item.Description, &item.Category,
		&item.Quantity, &item.Price, &item.Supplier,
		&item.Sold, &item.ReorderLevel, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// # Item Retrieval

/*
List returns a filtered and paginated list of items for one company.

Description: Uses ILIKE for name search and COUNT(*) OVER() for total metadata.

Parameters:
  - context: context.Context
  - company: string
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Item: Slice of matching items
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, company string, filter Filter, limit, offset int) ([]*Item, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, company, name, description, category, quantity, price, supplier,
			sold, reorderlevel, createdat, updatedat,
			COUNT(*) OVER() AS total
		FROM core.inventoryitem
		WHERE company = $1
	`)

	args := []any{company}
	argID := 2

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argID))
		args = append(args, filter.Category)
		argID++
	}

	if filter.LowStockOnly {
		queryBuilder.WriteString(" AND quantity <= reorderlevel")
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_items")
	}
	defer rows.Close()

	var items []*Item
	var total int
	for rows.Next() {
		item := &Item{}
		err := rows.Scan(
			&item.ID, &item.Company, &item.Name, &item.Description, &item.Category,
			&item.Quantity, &item.Price, &item.Supplier,
			&item.Sold, &item.ReorderLevel, &item.CreatedAt, &item.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_item")
		}
		items = append(items, item)
	}

	return items, total, nil
}

/*
FindByID retrieves a single item by its primary key within a company.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - *Item: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, company, id string) (*Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM core.inventoryitem
		WHERE company = $1 AND id = $2
	`
	item, err := scanItem(repository.db.QueryRow(context, query, company, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_item_by_id")
	}
	return item, nil
}

// # Item Mutation

/*
Create inserts a new item record.

Parameters:
  - context: context.Context
  - item: *Item

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	const query = `
		INSERT INTO core.inventoryitem (
			id, company, name, description, category, quantity, price, supplier,
			sold, reorderlevel, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		item.ID, item.Company, item.Name, item.Description, item.Category,
		item.Quantity, item.Price, item.Supplier, item.Sold, item.ReorderLevel,
	).Scan(&item.CreatedAt, &item.UpdatedAt)

	return dberr.Wrap(err, "create_item")
}

/*
Update rewrites all mutable fields of an item.

Parameters:
  - context: context.Context
  - item: *Item

Returns:
  - error: ErrNotFound if the row does not exist in this company
*/
func (repository *PostgresRepository) Update(context context.Context, item *Item) error {
	const query = `
		UPDATE core.inventoryitem
		SET name = $3, description = $4, category = $5, quantity = $6,
			price = $7, supplier = $8, sold = $9, reorderlevel = $10,
			updatedat = NOW()
		WHERE company = $1 AND id = $2
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query,
		item.Company, item.ID, item.Name, item.Description, item.Category,
		item.Quantity, item.Price, item.Supplier, item.Sold, item.ReorderLevel,
	).Scan(&item.UpdatedAt)

	return dberr.Wrap(err, "update_item")
}

/*
Delete removes an item permanently.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - error: ErrNotFound if no row matched
*/
func (repository *PostgresRepository) Delete(context context.Context, company, id string) error {
	const query = `DELETE FROM core.inventoryitem WHERE company = $1 AND id = $2`
	result, err := repository.db.Exec(context, query, company, id)
	if err != nil {
		return dberr.Wrap(err, "delete_item")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
BulkCreate inserts a batch of items atomically.

Description: Uses a single transaction with pgx batching. CSV imports either
land completely or not at all, so a malformed file never half-populates stock.

Parameters:
  - context: context.Context
  - items: []*Item

Returns:
  - error: Transactional or persistence failures
*/
func (repository *PostgresRepository) BulkCreate(context context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_bulk_create_tx")
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO core.inventoryitem (
			id, company, name, description, category, quantity, price, supplier,
			sold, reorderlevel, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID, item.Company, item.Name, item.Description, item.Category,
			item.Quantity, item.Price, item.Supplier, item.Sold, item.ReorderLevel,
		)
	}

	results := transaction.SendBatch(context, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "bulk_insert_item")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "close_bulk_insert")
	}

	return transaction.Commit(context)
}

// # Aggregation

/*
Analytics computes the dashboard summary for a company.

Description: Two queries under one connection: a SUM over quantities and a
top-5 leaderboard ordered by units sold.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - *Analytics: Totals and top sellers
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Analytics(context context.Context, company string) (*Analytics, error) {
	analytics := &Analytics{TopSelling: []TopSeller{}}

	const totalQuery = `
		SELECT COALESCE(SUM(quantity), 0)
		FROM core.inventoryitem
		WHERE company = $1
	`
	if err := repository.db.QueryRow(context, totalQuery, company).Scan(&analytics.TotalStock); err != nil {
		return nil, dberr.Wrap(err, "sum_total_stock")
	}

	const topQuery = `
		SELECT name, sold
		FROM core.inventoryitem
		WHERE company = $1 AND sold > 0
		ORDER BY sold DESC, name ASC
		LIMIT 5
	`
	rows, err := repository.db.Query(context, topQuery, company)
	if err != nil {
		return nil, dberr.Wrap(err, "list_top_sellers")
	}
	defer rows.Close()

	for rows.Next() {
		var entry TopSeller
		if err := rows.Scan(&entry.Name, &entry.Sold); err != nil {
			return nil, dberr.Wrap(err, "scan_top_seller")
		}
		analytics.TopSelling = append(analytics.TopSelling, entry)
	}

	return analytics, nil
}
