// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package identity verifies federated sign-in tokens from external providers.

Stockroom accounts can be created with a password or through a provider
(Google Sign-In). In the federated flow the browser obtains a provider ID
token, and the API exchanges it for a first-party session JWT. This package
owns the "is this provider token genuine" half of that exchange.

Architecture:

  - Provider: Interface consumed by the auth service, mockable in tests.
  - GoogleVerifier: JWKS-backed verification of Google ID tokens.
*/
package identity

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified subject extracted from a provider ID token.
type Identity struct {
	// Subject is the provider-scoped stable user identifier.
	Subject string
	// Email is the verified email address.
	Email string
	// Name is the display name, may be empty.
	Name string
}

// Provider verifies a raw provider ID token and extracts the subject identity.
type Provider interface {
	Verify(idToken string) (*Identity, error)
}

// # Google Sign-In

// googleClaims is the subset of Google ID token claims we consume.
type googleClaims struct {
	jwt.RegisteredClaims

	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// GoogleVerifier validates Google ID tokens against Google's published JWKS.
//
// The key set is fetched lazily and refreshed in the background, so key
// rotation on Google's side never requires a restart.
type GoogleVerifier struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

/*
NewGoogleVerifier constructs a verifier backed by a remote JWK Set.

Parameters:
  - jwksURL: The provider's JWKS endpoint (Google's oauth2/v3/certs).
  - issuer: Expected 'iss' claim.
  - audience: Expected 'aud' claim (the OAuth client ID).
  - logger: Structured logger for background refresh failures.

Returns:
  - *GoogleVerifier: Ready-to-use verifier.
  - error: If the initial JWKS fetch fails.
*/
func NewGoogleVerifier(jwksURL, issuer, audience string, logger *slog.Logger) (*GoogleVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Error("identity_jwks_refresh_failed", slog.Any("error", err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("identity: failed to fetch provider JWKS: %w", err)
	}

	return &GoogleVerifier{
		jwks:     jwks,
		issuer:   issuer,
		audience: audience,
	}, nil
}

// Verify checks the token signature against the provider JWKS and validates
// the issuer, audience, expiry, and email verification status.
func (verifier *GoogleVerifier) Verify(idToken string) (*Identity, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithIssuer(verifier.issuer),
		jwt.WithExpirationRequired(),
	}
	if verifier.audience != "" {
		parserOptions = append(parserOptions, jwt.WithAudience(verifier.audience))
	}

	token, err := jwt.ParseWithClaims(idToken, &googleClaims{}, verifier.jwks.Keyfunc, parserOptions...)
	if err != nil {
		return nil, fmt.Errorf("identity: provider token rejected: %w", err)
	}

	claims, ok := token.Claims.(*googleClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("identity: invalid provider token claims")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("identity: provider token missing subject")
	}
	if !claims.EmailVerified {
		return nil, fmt.Errorf("identity: provider email is not verified")
	}

	return &Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// Close stops the background JWKS refresh goroutine.
func (verifier *GoogleVerifier) Close() {
	verifier.jwks.EndBackground()
}
