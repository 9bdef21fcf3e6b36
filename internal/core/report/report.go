// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

// Package report builds inventory reports and dashboard analytics.
//
// Reports are read-only projections over the inventory tables: stock levels,
// sales trends, and aggregate summaries. They never mutate stock.
package report

import "time"

// Report types selectable via the "type" query parameter.
const (
	TypeInventory   = "inventory"
	TypeLowStock    = "low_stock"
	TypeSalesTrends = "sales_trends"
)

// Types lists the accepted report type values for validation.
var Types = []string{TypeInventory, TypeLowStock, TypeSalesTrends}

// Query selects a report: its type plus an optional update-time window.
// Nil bounds leave that side of the window open.
type Query struct {
	Type  string
	Start *time.Time
	End   *time.Time
}

// Row is a single line of a tabular report.
type Row struct {
	Name        string    `json:"name"`
	Stock       int       `json:"stock"`
	Sold        int       `json:"sold"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Summary is the headline aggregate block for the analytics dashboard.
// InventoryValue is the sum of quantity times unit price over all items.
type Summary struct {
	TotalItems     int     `json:"totalItems"`
	TotalStock     int     `json:"totalStock"`
	LowStockCount  int     `json:"lowStockCount"`
	InventoryValue float64 `json:"inventoryValue"`
}
