// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package task

import (
	"context"
	"log/slog"

	"github.com/stockroomhq/stockroom/internal/platform/validate"
	"github.com/stockroomhq/stockroom/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the company task board.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new task [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
ListTasks returns the company task board, most urgent first.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - []*Task: Company tasks
  - error: Retrieval failures
*/
func (service *Service) ListTasks(context context.Context, company string) ([]*Task, error) {
	return service.repo.List(context, company)
}

/*
CreateTask validates and persists a new task.

Parameters:
  - context: context.Context
  - task: *Task (Company and CreatedBy populated by the handler)

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) CreateTask(context context.Context, task *Task) error {
	if task.Urgency == "" {
		task.Urgency = UrgencyMedium
	}

	if err := validateTask(task); err != nil {
		return err
	}

	task.ID = uuid.New()

	if err := service.repo.Create(context, task); err != nil {
		return err
	}

	service.logger.Info("task_created",
		slog.String("task_id", task.ID),
		slog.String("company", task.Company),
		slog.String("urgency", task.Urgency),
	)

	return nil
}

/*
UpdateTask validates and rewrites a task's mutable fields.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: Validation, ErrNotFound, or persistence failures
*/
func (service *Service) UpdateTask(context context.Context, task *Task) error {
	if err := validateTask(task); err != nil {
		return err
	}

	if err := service.repo.Update(context, task); err != nil {
		return err
	}

	service.logger.Info("task_updated", slog.String("task_id", task.ID))

	return nil
}

/*
DeleteTask removes a task permanently.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - error: ErrNotFound or persistence failures
*/
func (service *Service) DeleteTask(context context.Context, company, id string) error {
	if err := service.repo.Delete(context, company, id); err != nil {
		return err
	}

	service.logger.Info("task_deleted",
		slog.String("task_id", id),
		slog.String("company", company),
	)

	return nil
}

// validateTask applies the shared rules for create and update.
func validateTask(task *Task) error {
	validator := &validate.Validator{}
	validator.Required("title", task.Title).MaxLen("title", task.Title, 200)
	validator.MaxLen("description", task.Description, 2000)
	validator.OneOf("urgency", task.Urgency, Urgencies...)
	return validator.Err()
}
