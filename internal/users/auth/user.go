// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package auth

import (
	"strings"
	"time"

	"github.com/stockroomhq/stockroom/internal/platform/sec"
)

// # Field Identifiers

const (
	FieldCompanyName = "companyName"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldToken       = "token"
	FieldIDToken     = "idToken"
	FieldMessage     = "message"
)

// # Sign-In Providers

const (
	// ProviderPassword marks accounts created through the signup form.
	ProviderPassword = "password"

	// ProviderGoogle marks accounts created through Google Sign-In.
	ProviderGoogle = "google"
)

// # Account Status

const (
	// StatusActive is the normal state of a member account.
	StatusActive = "active"

	// StatusRemoved marks accounts removed by an admin. The row is kept for
	// audit; removed accounts are invisible to every query.
	StatusRemoved = "removed"
)

// DefaultTheme is the UI theme assigned to new accounts.
const DefaultTheme = "light"

// # Entities

// User represents a member account within a company.
//
// # Tenancy
//
// Accounts are keyed by (company, uid) with the email unique globally:
// one email belongs to exactly one company. The Company field is the slug
// that scopes every subsequent data access for this user.
type User struct {
	ID        string `json:"uid"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// PasswordHash is never serialized. Empty for federated accounts.
	PasswordHash string `json:"-"`

	Role sec.Role `json:"role"`

	// Provider records how the account authenticates.
	Provider string `json:"provider"`

	// ProviderSubject is the stable subject identifier issued by a federated
	// provider. Empty for password accounts.
	ProviderSubject string `json:"-"`

	EmailVerified bool   `json:"emailVerified"`
	Theme         string `json:"theme"`
	Status        string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName joins the name parts for display and email salutations.
func (user *User) FullName() string {
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}

// AuthSession is the outcome of a successful sign-in.
//
// When a federated sign-in reaches a subject with no account yet and the
// request carried no completion fields, RequiresAdditionalInfo is true and
// Token/User are empty. The client must re-submit with a company name.
type AuthSession struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`

	RequiresAdditionalInfo bool `json:"requiresAdditionalInfo,omitempty"`

	// Created is true when this sign-in created the account.
	Created bool `json:"-"`
}

// splitName breaks a provider display name into first and last parts.
// "Dana Scully" becomes ("Dana", "Scully"); single words keep last empty.
func splitName(displayName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(displayName), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
