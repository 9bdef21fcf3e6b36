// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroomhq/stockroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed report store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Rows returns the tabular report for one company.

Description: All three report types project the same columns; they differ
only in filter and ordering. Low-stock keeps rows at or below the reorder
level; sales trends orders by units sold. The optional start/end bounds
narrow the window on each item's last update.

Parameters:
  - context: context.Context
  - company: string
  - query: Query

Returns:
  - []*Row: Report lines
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Rows(context context.Context, company string, query Query) ([]*Row, error) {
	sql := `
		SELECT name, quantity, sold, updatedat
		FROM core.inventoryitem
		WHERE company = $1
	`
	args := []any{company}

	if query.Start != nil {
		args = append(args, *query.Start)
		sql += fmt.Sprintf(" AND updatedat >= $%d", len(args))
	}
	if query.End != nil {
		args = append(args, *query.End)
		sql += fmt.Sprintf(" AND updatedat <= $%d", len(args))
	}

	switch query.Type {
	case TypeLowStock:
		sql += " AND quantity <= reorderlevel ORDER BY quantity ASC, name ASC"
	case TypeSalesTrends:
		sql += " ORDER BY sold DESC, name ASC"
	default:
		sql += " ORDER BY name ASC"
	}

	rows, err := repository.db.Query(context, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_report_rows")
	}
	defer rows.Close()

	var reportRows []*Row
	for rows.Next() {
		row := &Row{}
		if err := rows.Scan(&row.Name, &row.Stock, &row.Sold, &row.LastUpdated); err != nil {
			return nil, dberr.Wrap(err, "scan_report_row")
		}
		reportRows = append(reportRows, row)
	}

	return reportRows, nil
}

/*
Summary aggregates the headline numbers in a single query.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - *Summary: Aggregate block
  - error: Retrieval failures
*/
func (repository *PostgresRepository) Summary(context context.Context, company string) (*Summary, error) {
	const query = `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COUNT(*) FILTER (WHERE quantity <= reorderlevel),
			COALESCE(SUM(quantity * price), 0)
		FROM core.inventoryitem
		WHERE company = $1
	`
	summary := &Summary{}
	err := repository.db.QueryRow(context, query, company).Scan(
		&summary.TotalItems, &summary.TotalStock, &summary.LowStockCount, &summary.InventoryValue,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "aggregate_report_summary")
	}
	return summary, nil
}
