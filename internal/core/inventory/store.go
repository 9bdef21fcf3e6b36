// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package inventory

import "context"

// # Inventory Data Access

// Repository defines the data access contract for stock items.
// Every method takes the owning company slug; implementations must never
// return rows belonging to another tenant.
type Repository interface {

	/*
		List returns a filtered, paginated slice of items and the total count.

		Parameters:
		  - context: context.Context
		  - company: string (Tenant slug)
		  - filter: Filter (Search query, category, low-stock flag)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Item: Slice of matching items
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, company string, filter Filter, limit, offset int) ([]*Item, int, error)

	/*
		FindByID retrieves an item by its UUID within a company.

		Parameters:
		  - context: context.Context
		  - company: string
		  - id: string (UUIDv7)

		Returns:
		  - *Item: Hydrated entity
		  - error: ErrNotFound if missing or owned by another company
	*/
	FindByID(context context.Context, company, id string) (*Item, error)

	/*
		Create persists a new item.

		Parameters:
		  - context: context.Context
		  - item: *Item

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, item *Item) error

	/*
		Update rewrites a full item row.

		Parameters:
		  - context: context.Context
		  - item: *Item

		Returns:
		  - error: ErrNotFound if missing, other persistence failures
	*/
	Update(context context.Context, item *Item) error

	/*
		Delete removes an item permanently.

		Parameters:
		  - context: context.Context
		  - company: string
		  - id: string

		Returns:
		  - error: ErrNotFound if missing, other persistence failures
	*/
	Delete(context context.Context, company, id string) error

	/*
		BulkCreate inserts many items in a single transaction.
		All rows are inserted or none are.

		Parameters:
		  - context: context.Context
		  - items: []*Item

		Returns:
		  - error: Persistence failures (whole batch rolled back)
	*/
	BulkCreate(context context.Context, items []*Item) error

	/*
		Analytics aggregates stock totals and the sales leaderboard.

		Parameters:
		  - context: context.Context
		  - company: string

		Returns:
		  - *Analytics: Totals and top five sellers
		  - error: Retrieval failures
	*/
	Analytics(context context.Context, company string) (*Analytics, error)
}
