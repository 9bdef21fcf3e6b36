// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package report

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/core/inventory"
	"github.com/stockroomhq/stockroom/internal/platform/metrics"
)

// fakeRepository records the query it was asked for and returns canned rows.
type fakeRepository struct {
	lastCompany string
	lastQuery   Query
	rows        []*Row
	summary     *Summary
}

func (repo *fakeRepository) Rows(_ context.Context, company string, query Query) ([]*Row, error) {
	repo.lastCompany = company
	repo.lastQuery = query
	return repo.rows, nil
}

func (repo *fakeRepository) Summary(_ context.Context, company string) (*Summary, error) {
	repo.lastCompany = company
	return repo.summary, nil
}

type fakeAnalytics struct {
	analytics *inventory.Analytics
}

func (fake *fakeAnalytics) Analytics(_ context.Context, _ string) (*inventory.Analytics, error) {
	return fake.analytics, nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, &fakeAnalytics{analytics: &inventory.Analytics{}}, metrics.New(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestGetReport_DefaultsAndFilters verifies the type default and that the
company scope and time window reach the repository unchanged.
*/
func TestGetReport_DefaultsAndFilters(t *testing.T) {
	repo := &fakeRepository{rows: []*Row{{Name: "Claw Hammer"}}}
	service := newTestService(repo)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	rows, err := service.GetReport(context.Background(), "acme-hardware", Query{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "acme-hardware", repo.lastCompany)
	assert.Equal(t, TypeInventory, repo.lastQuery.Type)
	require.NotNil(t, repo.lastQuery.Start)
	assert.Equal(t, start, *repo.lastQuery.Start)
	require.NotNil(t, repo.lastQuery.End)
	assert.Equal(t, end, *repo.lastQuery.End)
}

/*
TestGetReport_Validation verifies rejection of unknown types and inverted
time windows before any repository call.
*/
func TestGetReport_Validation(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	_, err := service.GetReport(context.Background(), "acme-hardware", Query{Type: "profits"})
	require.Error(t, err)
	assert.EqualError(t, err, "Validation failed")

	start := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = service.GetReport(context.Background(), "acme-hardware", Query{Start: &start, End: &end})
	require.Error(t, err)

	assert.Empty(t, repo.lastCompany)
}
