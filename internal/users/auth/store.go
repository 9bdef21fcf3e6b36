// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for member accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID within a company.

		Parameters:
		  - context: context.Context
		  - company: string
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, company, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Description: Emails are globally unique, so no company scope is needed.
		Login resolves the company from the account, never from the client.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByProviderSubject returns the account bound to a federated subject.

		Parameters:
		  - context: context.Context
		  - subject: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByProviderSubject(context context.Context, subject string) (*User, error)

	/*
		Create persists a brand-new member account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict when the email is already registered
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the account's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		MarkVerified flips the account's isverified flag to true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, userID string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
type ResetTokenRepository interface {

	/*
		Set stores a reset token associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given reset token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}

// VerificationTokenRepository defines the contract for storing volatile email verification tokens.
type VerificationTokenRepository interface {

	/*
		Set stores a verification token associated with a userID.

		Parameters:
		  - context: context.Context
		  - token: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a given verification token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: UserID
		  - error: Retrieval failures
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete removes a verification token after successful use.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, token string) error
}

// RevokedTokenRepository defines the contract for the session revocation list.
//
// Session JWTs are stateless, so logout works by blacklisting the token's
// digest until its natural expiry. The list stays small because entries
// expire together with the tokens they shadow.
type RevokedTokenRepository interface {

	/*
		Revoke marks a session token digest as invalid for the given duration.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - ttl: time.Duration (Remaining lifetime of the revoked token)

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, tokenHash string, ttl time.Duration) error

	/*
		IsRevoked reports whether a session token digest has been revoked.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - bool: true when the token was revoked
		  - error: Retrieval failures
	*/
	IsRevoked(context context.Context, tokenHash string) (bool, error)
}
