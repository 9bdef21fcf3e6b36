// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package task

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockroomhq/stockroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed task store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns all tasks for a company ordered by urgency then recency.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - []*Task: Company task board
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, company string) ([]*Task, error) {
	const query = `
		SELECT id, company, title, description, urgency, createdby, createdat, updatedat
		FROM core.task
		WHERE company = $1
		ORDER BY
			CASE urgency WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
			createdat DESC
	`
	rows, err := repository.db.Query(context, query, company)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task := &Task{}
		err := rows.Scan(
			&task.ID, &task.Company, &task.Title, &task.Description,
			&task.Urgency, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

/*
Create inserts a new task record.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO core.task (id, company, title, description, urgency, createdby, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		task.ID, task.Company, task.Title, task.Description, task.Urgency, task.CreatedBy,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	return dberr.Wrap(err, "create_task")
}

/*
Update modifies a task's mutable fields.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: ErrNotFound if the row does not exist in this company
*/
func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE core.task
		SET title = $3, description = $4, urgency = $5, updatedat = NOW()
		WHERE company = $1 AND id = $2
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query,
		task.Company, task.ID, task.Title, task.Description, task.Urgency,
	).Scan(&task.UpdatedAt)

	return dberr.Wrap(err, "update_task")
}

/*
Delete removes a task permanently.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - error: ErrNotFound if no row matched
*/
func (repository *PostgresRepository) Delete(context context.Context, company, id string) error {
	const query = `DELETE FROM core.task WHERE company = $1 AND id = $2`
	result, err := repository.db.Exec(context, query, company, id)
	if err != nil {
		return dberr.Wrap(err, "delete_task")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
