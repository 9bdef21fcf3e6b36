// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package sec

// # User Roles

// Role represents the authorization level granted to an account within its company.
type Role string

const (
	// Full tenant control, including user management
	RoleAdmin Role = "admin"

	// Can manage inventory and view reports/analytics
	RoleManager Role = "manager"

	// Default role for members joining an existing company
	RoleStaff Role = "staff"
)

// AllRoles lists every valid role value, useful for validation and tests.
var AllRoles = []Role{RoleStaff, RoleManager, RoleAdmin}

// IsValid reports whether r is one of the known role values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// # Role Sets

// In reports whether the role is a member of the allowed set.
//
// Protected surfaces declare an explicit allowed-role set rather than a
// numeric threshold, so admin-only actions stay a strict membership check.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}
