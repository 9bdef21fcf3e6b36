// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package task

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository stores tasks in creation order.
type fakeRepository struct {
	tasks []*Task
}

func (repo *fakeRepository) List(_ context.Context, company string) ([]*Task, error) {
	var tasks []*Task
	for _, task := range repo.tasks {
		if task.Company == company {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (repo *fakeRepository) Create(_ context.Context, task *Task) error {
	repo.tasks = append(repo.tasks, task)
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, task *Task) error {
	for index, existing := range repo.tasks {
		if existing.ID == task.ID && existing.Company == task.Company {
			repo.tasks[index] = task
			return nil
		}
	}
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, company, id string) error {
	for index, existing := range repo.tasks {
		if existing.ID == id && existing.Company == company {
			repo.tasks = append(repo.tasks[:index], repo.tasks[index+1:]...)
			return nil
		}
	}
	return nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreateTask verifies the urgency default, ID assignment, and company
scoping.
*/
func TestCreateTask(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	task := &Task{Company: "acme-hardware", Title: "Restock shelf 3", CreatedBy: "user-1"}
	require.NoError(t, service.CreateTask(context.Background(), task))

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, UrgencyMedium, task.Urgency)

	tasks, err := service.ListTasks(context.Background(), "acme-hardware")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	other, err := service.ListTasks(context.Background(), "rival-tools")
	require.NoError(t, err)
	assert.Empty(t, other)
}

/*
TestCreateTask_Validation verifies title and urgency rules.
*/
func TestCreateTask_Validation(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	err := service.CreateTask(context.Background(), &Task{Company: "acme-hardware"})
	require.Error(t, err)
	assert.EqualError(t, err, "Validation failed")

	err = service.CreateTask(context.Background(), &Task{
		Company: "acme-hardware", Title: "Restock", Urgency: "critical",
	})
	require.Error(t, err)

	assert.Empty(t, repo.tasks)
}
