// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package company

import "context"

// # Company Data Access

// Repository defines the data access contract for tenants.
type Repository interface {

	/*
		FindBySlug retrieves a company by its canonical identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Company: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Company, error)

	/*
		Create persists a new company.

		Parameters:
		  - context: context.Context
		  - company: *Company

		Returns:
		  - error: Conflict if the slug already exists
	*/
	Create(context context.Context, company *Company) error

	/*
		EnsureExists creates the company if its slug is not yet taken.
		Used during signup where joining an existing company is normal.

		Parameters:
		  - context: context.Context
		  - company: *Company

		Returns:
		  - bool: true if a new company row was created
		  - error: Persistence failures
	*/
	EnsureExists(context context.Context, company *Company) (bool, error)

	/*
		SetAdmin records the founding admin once. Later calls are no-ops
		so the original admin is never silently replaced.

		Parameters:
		  - context: context.Context
		  - slug: string
		  - adminUID: string

		Returns:
		  - error: Persistence failures
	*/
	SetAdmin(context context.Context, slug, adminUID string) error
}
