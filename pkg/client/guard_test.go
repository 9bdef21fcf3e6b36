// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestDecide_Loading verifies a loading state always yields a placeholder,
never the protected view and never a redirect.
*/
func TestDecide_Loading(t *testing.T) {
	state := AuthState{Loading: true}

	for _, allowed := range [][]Role{nil, {RoleAdmin}, {RoleStaff, RoleManager}} {
		decision := Decide(state, allowed, "/reports")
		assert.Equal(t, Placeholder, decision.Verdict)
		assert.Empty(t, decision.From)
	}

	// Loading with a stale user attached still holds back.
	decision := Decide(AuthState{User: &User{Role: RoleAdmin}, Loading: true}, []Role{RoleAdmin}, "/reports")
	assert.Equal(t, Placeholder, decision.Verdict)
}

/*
TestDecide_SignedOut verifies the sign-in redirect preserves the requested
path.
*/
func TestDecide_SignedOut(t *testing.T) {
	decision := Decide(AuthState{}, []Role{RoleAdmin}, "/users")

	assert.Equal(t, RedirectSignIn, decision.Verdict)
	assert.Equal(t, "/users", decision.From)
}

/*
TestDecide_RoleSet verifies membership in the allowed set decides between
rendering and the unauthorized redirect.
*/
func TestDecide_RoleSet(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		want    Verdict
	}{
		{"admin on admin route", RoleAdmin, []Role{RoleAdmin}, Render},
		{"manager on reports", RoleManager, []Role{RoleManager, RoleAdmin}, Render},
		{"staff on reports", RoleStaff, []Role{RoleManager, RoleAdmin}, RedirectUnauthorized},
		{"manager on admin route", RoleManager, []Role{RoleAdmin}, RedirectUnauthorized},
		{"any signed-in user on open route", RoleStaff, nil, Render},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decision := Decide(AuthState{User: &User{Role: test.role}}, test.allowed, "/somewhere")
			assert.Equal(t, test.want, decision.Verdict)
			assert.Empty(t, decision.From)
		})
	}
}
