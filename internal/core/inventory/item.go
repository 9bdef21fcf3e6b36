// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

// Package inventory manages a company's stock items.
//
// It covers CRUD, bulk CSV import, and low-stock detection. All operations
// are scoped to the calling user's company; no query ever crosses tenants.
package inventory

import "time"

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
	FieldSupplier    = "supplier"
)

// DefaultReorderLevel is applied when an item is created without an explicit
// reorder threshold. Items at or below this quantity count as low stock.
const DefaultReorderLevel = 5

// Item is a single stock-keeping unit owned by a company.
type Item struct {
	ID      string `json:"id"`
	Company string `json:"company"`

	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Supplier    string  `json:"supplier"`

	// Sold accumulates units sold, feeding the sales trend reports.
	Sold int `json:"sold"`
	// ReorderLevel is the low-stock threshold for this item.
	ReorderLevel int `json:"reorderLevel"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the item is at or below its reorder level.
func (item *Item) IsLowStock() bool {
	return item.Quantity <= item.ReorderLevel
}

// Filter narrows inventory listings.
type Filter struct {
	// Query matches against the item name (case-insensitive substring).
	Query string
	// Category restricts to an exact category when non-empty.
	Category string
	// LowStockOnly keeps only items at or below their reorder level.
	LowStockOnly bool
}

// UpdateInput carries a partial update. Nil fields are left untouched,
// letting clients PATCH a single field without resending the rest.
type UpdateInput struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Quantity     *int     `json:"quantity"`
	Price        *float64 `json:"price"`
	Supplier     *string  `json:"supplier"`
	Sold         *int     `json:"sold"`
	ReorderLevel *int     `json:"reorderLevel"`
}

// ImportResult summarizes a bulk CSV import.
type ImportResult struct {
	Created int `json:"created"`
}

// TopSeller is a sales leaderboard entry for analytics.
type TopSeller struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
}

// Analytics is the dashboard summary for a company's inventory.
type Analytics struct {
	TotalStock int         `json:"totalStock"`
	TopSelling []TopSeller `json:"topSelling"`
}
