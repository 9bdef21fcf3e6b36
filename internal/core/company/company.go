// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

// Package company manages tenant records.
//
// A company is the unit of data isolation: every inventory item, task, and
// user belongs to exactly one company, keyed by its slug.
package company

import "time"

// Company is a tenant of the platform.
type Company struct {
	// Slug is the canonical identifier derived from the display name.
	Slug string `json:"slug"`
	// Name is the display name as entered at signup.
	Name string `json:"name"`

	// AdminUID is the founding admin, set once the first account exists.
	AdminUID string `json:"adminUID"`

	CreatedAt time.Time `json:"createdAt"`
}
