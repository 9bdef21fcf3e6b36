// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/core/inventory"
	"github.com/stockroomhq/stockroom/internal/platform/dberr"
	"github.com/stockroomhq/stockroom/internal/platform/metrics"
	"github.com/stockroomhq/stockroom/pkg/pointer"
)

// fakeRepository is an in-memory [inventory.Repository] for service tests.
type fakeRepository struct {
	items map[string]*inventory.Item
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[string]*inventory.Item{}}
}

func (repo *fakeRepository) List(_ context.Context, company string, filter inventory.Filter, limit, offset int) ([]*inventory.Item, int, error) {
	var matched []*inventory.Item
	for _, item := range repo.items {
		if item.Company != company {
			continue
		}
		if filter.LowStockOnly && !item.IsLowStock() {
			continue
		}
		matched = append(matched, item)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepository) FindByID(_ context.Context, company, id string) (*inventory.Item, error) {
	item, ok := repo.items[id]
	if !ok || item.Company != company {
		return nil, dberr.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (repo *fakeRepository) Create(_ context.Context, item *inventory.Item) error {
	copied := *item
	repo.items[item.ID] = &copied
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, item *inventory.Item) error {
	if _, ok := repo.items[item.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *item
	repo.items[item.ID] = &copied
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, company, id string) error {
	item, ok := repo.items[id]
	if !ok || item.Company != company {
		return dberr.ErrNotFound
	}
	delete(repo.items, id)
	return nil
}

func (repo *fakeRepository) BulkCreate(_ context.Context, items []*inventory.Item) error {
	for _, item := range items {
		copied := *item
		repo.items[item.ID] = &copied
	}
	return nil
}

func (repo *fakeRepository) Analytics(_ context.Context, company string) (*inventory.Analytics, error) {
	analytics := &inventory.Analytics{TopSelling: []inventory.TopSeller{}}
	for _, item := range repo.items {
		if item.Company != company {
			continue
		}
		analytics.TotalStock += item.Quantity
	}
	return analytics, nil
}

func newTestService(repo inventory.Repository) *inventory.Service {
	logger := slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
	return inventory.NewService(repo, metrics.New(), logger)
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

/*
TestService_CreateItem verifies defaults and validation on creation.
*/
func TestService_CreateItem(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	item := &inventory.Item{
		Company:  "acme-hardware",
		Name:     "Claw Hammer",
		Quantity: 10,
		Price:    14.99,
	}

	require.NoError(t, service.CreateItem(context.Background(), item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, inventory.DefaultReorderLevel, item.ReorderLevel)

	// Negative quantities are rejected before touching the store.
	bad := &inventory.Item{Company: "acme-hardware", Name: "Ghost", Quantity: -1}
	assert.Error(t, service.CreateItem(context.Background(), bad))
}

/*
TestService_UpdateItem verifies partial merge semantics: only the fields
present in the input change, and zero values are applied when explicit.
*/
func TestService_UpdateItem(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	item := &inventory.Item{Company: "acme-hardware", Name: "Claw Hammer", Quantity: 10, Price: 14.99}
	require.NoError(t, service.CreateItem(context.Background(), item))

	updated, err := service.UpdateItem(context.Background(), "acme-hardware", item.ID, inventory.UpdateInput{
		Quantity: pointer.To(0),
		Sold:     pointer.To(10),
	})
	require.NoError(t, err)

	// Explicit zero quantity is a real update, not an omitted field.
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, 10, updated.Sold)
	assert.Equal(t, "Claw Hammer", updated.Name)
	assert.Equal(t, 14.99, updated.Price)
	assert.True(t, updated.IsLowStock())
}

/*
TestService_UpdateItem_WrongCompany verifies that tenant scoping holds even
with a valid item ID.
*/
func TestService_UpdateItem_WrongCompany(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	item := &inventory.Item{Company: "acme-hardware", Name: "Claw Hammer", Quantity: 10}
	require.NoError(t, service.CreateItem(context.Background(), item))

	_, err := service.UpdateItem(context.Background(), "rival-tools", item.ID, inventory.UpdateInput{
		Quantity: pointer.To(999),
	})
	assert.Error(t, err)
}

/*
TestService_ImportCSV verifies that parsed rows land with IDs and company
scope assigned.
*/
func TestService_ImportCSV(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	result, err := service.ImportCSV(context.Background(), "acme-hardware", strings.NewReader(validCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	items, total, err := service.ListItems(context.Background(), "acme-hardware", inventory.Filter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "acme-hardware", item.Company)
	}

	// A malformed file creates nothing.
	_, err = service.ImportCSV(context.Background(), "acme-hardware", strings.NewReader("bogus"))
	require.Error(t, err)
	_, total, _ = service.ListItems(context.Background(), "acme-hardware", inventory.Filter{}, 50, 0)
	assert.Equal(t, 2, total)
}

/*
TestService_LowStockFilter verifies the reorder-level threshold comparison
is inclusive.
*/
func TestService_LowStockFilter(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	atLevel := &inventory.Item{Company: "acme-hardware", Name: "At Level", Quantity: 5}
	above := &inventory.Item{Company: "acme-hardware", Name: "Above", Quantity: 6}
	require.NoError(t, service.CreateItem(context.Background(), atLevel))
	require.NoError(t, service.CreateItem(context.Background(), above))

	items, total, err := service.ListItems(context.Background(), "acme-hardware", inventory.Filter{LowStockOnly: true}, 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "At Level", items[0].Name)
}
