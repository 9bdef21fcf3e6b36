// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package account

import (
	"context"

	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/users/auth"
)

// # Member Data Access

// Repository defines the data access contract for company member management.
type Repository interface {

	/*
		List returns every active member of a company, oldest first.

		Parameters:
		  - context: context.Context
		  - company: string

		Returns:
		  - []*auth.User: Active members
		  - error: Retrieval failures
	*/
	List(context context.Context, company string) ([]*auth.User, error)

	/*
		FindByID returns the active member with the given ID.

		Parameters:
		  - context: context.Context
		  - company: string
		  - userID: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByID(context context.Context, company, userID string) (*auth.User, error)

	/*
		UpdateRole replaces a member's role.

		Parameters:
		  - context: context.Context
		  - company: string
		  - userID: string
		  - role: sec.Role

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdateRole(context context.Context, company, userID string, role sec.Role) error

	/*
		UpdateProfile replaces the member's editable profile fields.

		Parameters:
		  - context: context.Context
		  - company: string
		  - userID: string
		  - firstName: string
		  - lastName: string
		  - theme: string

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	UpdateProfile(context context.Context, company, userID, firstName, lastName, theme string) error

	/*
		Remove marks a member as removed. The row stays for audit but the
		account disappears from every query.

		Parameters:
		  - context: context.Context
		  - company: string
		  - userID: string

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	Remove(context context.Context, company, userID string) error
}
