// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package task

import "context"

// # Task Data Access

// Repository defines the data access contract for tasks.
type Repository interface {

	/*
		List returns all tasks for a company, most urgent first.

		Parameters:
		  - context: context.Context
		  - company: string

		Returns:
		  - []*Task: Company task board
		  - error: Retrieval failures
	*/
	List(context context.Context, company string) ([]*Task, error)

	/*
		Create persists a new task.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, task *Task) error

	/*
		Update modifies a task's title, description, and urgency.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: ErrNotFound if missing in this company
	*/
	Update(context context.Context, task *Task) error

	/*
		Delete removes a task permanently.

		Parameters:
		  - context: context.Context
		  - company: string
		  - id: string

		Returns:
		  - error: ErrNotFound if no row matched
	*/
	Delete(context context.Context, company, id string) error
}
