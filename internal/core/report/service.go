// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package report

import (
	"context"
	"log/slog"

	"github.com/stockroomhq/stockroom/internal/core/inventory"
	"github.com/stockroomhq/stockroom/internal/platform/metrics"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
)

// AnalyticsSource provides the dashboard aggregates owned by the inventory
// domain. Satisfied by [inventory.PostgresRepository].
type AnalyticsSource interface {
	Analytics(context context.Context, company string) (*inventory.Analytics, error)
}

// # Service Layer

// Service assembles reports and analytics for a company.
type Service struct {
	repo      Repository
	analytics AnalyticsSource
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewService constructs a new report [Service].
func NewService(repo Repository, analytics AnalyticsSource, metrics *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		analytics: analytics,
		metrics:   metrics,
		logger:    logger,
	}
}

/*
GetReport returns the tabular report selected by the query.

Parameters:
  - context: context.Context
  - company: string
  - query: Query (Type defaults to TypeInventory when empty)

Returns:
  - []*Row: Report lines
  - error: Validation or retrieval failures
*/
func (service *Service) GetReport(context context.Context, company string, query Query) ([]*Row, error) {
	if query.Type == "" {
		query.Type = TypeInventory
	}

	validator := &validate.Validator{}
	validator.OneOf("type", query.Type, Types...)
	if query.Start != nil && query.End != nil && query.End.Before(*query.Start) {
		validator.Custom("end", true, "must not be before start")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	rows, err := service.repo.Rows(context, company, query)
	if err != nil {
		return nil, err
	}

	if query.Type == TypeLowStock {
		service.metrics.LowStockItems.Set(float64(len(rows)))
	}

	return rows, nil
}

/*
GetSummary returns the headline aggregate block.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - *Summary: Aggregates
  - error: Retrieval failures
*/
func (service *Service) GetSummary(context context.Context, company string) (*Summary, error) {
	return service.repo.Summary(context, company)
}

/*
GetAnalytics returns total stock and the top-selling leaderboard.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - *inventory.Analytics: Dashboard aggregates
  - error: Retrieval failures
*/
func (service *Service) GetAnalytics(context context.Context, company string) (*inventory.Analytics, error) {
	return service.analytics.Analytics(context, company)
}
