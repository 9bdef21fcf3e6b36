// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory

import (
	"context"
	"io"
	"log/slog"

	"github.com/stockroomhq/stockroom/internal/platform/metrics"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
	"github.com/stockroomhq/stockroom/pkg/pointer"
	"github.com/stockroomhq/stockroom/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for stock items.
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService constructs a new inventory [Service].
func NewService(repo Repository, metrics *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// # Item Management

/*
ListItems retrieves a paginated and filtered list of a company's items.

Parameters:
  - context: context.Context
  - company: string
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Item: List of items
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListItems(context context.Context, company string, filter Filter, limit, offset int) ([]*Item, int, error) {
	return service.repo.List(context, company, filter, limit, offset)
}

/*
GetItem retrieves a single item by UUID within the calling company.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - *Item: Hydrated entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetItem(context context.Context, company, id string) (*Item, error) {
	return service.repo.FindByID(context, company, id)
}

/*
CreateItem validates and persists a new item for a company.

Parameters:
  - context: context.Context
  - item: *Item (Company and input fields populated by the handler)

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) CreateItem(context context.Context, item *Item) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, item.Name).MaxLen(FieldName, item.Name, 200)
	validator.MaxLen(FieldCategory, item.Category, 100)
	validator.MaxLen(FieldSupplier, item.Supplier, 200)
	validator.Custom(FieldQuantity, item.Quantity < 0, "Must not be negative")
	validator.NonNegative(FieldPrice, item.Price)

	if err := validator.Err(); err != nil {
		return err
	}

	item.ID = uuid.New()
	if item.ReorderLevel <= 0 {
		item.ReorderLevel = DefaultReorderLevel
	}

	if err := service.repo.Create(context, item); err != nil {
		return err
	}

	service.logger.Info("item_created",
		slog.String("item_id", item.ID),
		slog.String("company", item.Company),
	)

	return nil
}

/*
UpdateItem applies a partial update to an existing item.

Description: Loads the current row, merges only the fields present in the
input, re-validates the merged result, and writes it back.

Parameters:
  - context: context.Context
  - company: string
  - id: string
  - input: UpdateInput (nil fields untouched)

Returns:
  - *Item: The updated entity
  - error: Validation, ErrNotFound, or persistence failures
*/
func (service *Service) UpdateItem(context context.Context, company, id string, input UpdateInput) (*Item, error) {
	item, err := service.repo.FindByID(context, company, id)
	if err != nil {
		return nil, err
	}

	item.Name = pointer.Fallback(input.Name, item.Name)
	item.Description = pointer.Fallback(input.Description, item.Description)
	item.Category = pointer.Fallback(input.Category, item.Category)
	item.Quantity = pointer.Fallback(input.Quantity, item.Quantity)
	item.Price = pointer.Fallback(input.Price, item.Price)
	item.Supplier = pointer.Fallback(input.Supplier, item.Supplier)
	item.Sold = pointer.Fallback(input.Sold, item.Sold)
	item.ReorderLevel = pointer.Fallback(input.ReorderLevel, item.ReorderLevel)

	validator := &validate.Validator{}
	validator.Required(FieldName, item.Name).MaxLen(FieldName, item.Name, 200)
	validator.Custom(FieldQuantity, item.Quantity < 0, "Must not be negative")
	validator.NonNegative(FieldPrice, item.Price)
	validator.Custom("reorderLevel", item.ReorderLevel < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, item); err != nil {
		return nil, err
	}

	service.logger.Info("item_updated",
		slog.String("item_id", item.ID),
		slog.String("company", item.Company),
	)

	return item, nil
}

/*
DeleteItem removes an item permanently.

Parameters:
  - context: context.Context
  - company: string
  - id: string

Returns:
  - error: ErrNotFound or persistence failures
*/
func (service *Service) DeleteItem(context context.Context, company, id string) error {
	if err := service.repo.Delete(context, company, id); err != nil {
		return err
	}

	service.logger.Info("item_deleted",
		slog.String("item_id", id),
		slog.String("company", company),
	)

	return nil
}

// # Bulk Import

/*
ImportCSV parses an uploaded CSV file and inserts its rows atomically.

Parameters:
  - context: context.Context
  - company: string
  - file: io.Reader (The uploaded CSV content)

Returns:
  - *ImportResult: Count of created rows
  - error: "Invalid CSV format" or persistence failures
*/
func (service *Service) ImportCSV(context context.Context, company string, file io.Reader) (*ImportResult, error) {
	items, err := ParseCSV(file)
	if err != nil {
		service.metrics.ObserveCSVImport("rejected", 0)
		return nil, err
	}

	for _, item := range items {
		item.ID = uuid.New()
		item.Company = company
	}

	if err := service.repo.BulkCreate(context, items); err != nil {
		service.metrics.ObserveCSVImport("failed", 0)
		return nil, err
	}

	service.metrics.ObserveCSVImport("ok", len(items))
	service.logger.Info("csv_import_completed",
		slog.String("company", company),
		slog.Int("rows", len(items)),
	)

	return &ImportResult{Created: len(items)}, nil
}

// # Aggregation

/*
GetAnalytics returns the dashboard summary for a company.

Parameters:
  - context: context.Context
  - company: string

Returns:
  - *Analytics: Total stock and top five sellers
  - error: Retrieval failures
*/
func (service *Service) GetAnalytics(context context.Context, company string) (*Analytics, error) {
	return service.repo.Analytics(context, company)
}
