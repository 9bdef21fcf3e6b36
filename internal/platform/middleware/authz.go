// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package middleware

import (
	"net/http"
	"strings"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/constants"
	"github.com/stockroomhq/stockroom/internal/platform/ctxutil"
	"github.com/stockroomhq/stockroom/internal/platform/respond"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Scope Header Agreement ─────────────────────────────────────
			// Clients also send uid/companyName headers. They are advisory only;
			// the signed token is authoritative. A mismatch means a confused or
			// tampering client, so the request is rejected outright.
			if uid := request.Header.Get(constants.HeaderUID); uid != "" && uid != claims.UserID {
				respond.Error(writer, request, apperr.Forbidden("Session does not match request identity"))
				return
			}
			if company := request.Header.Get(constants.HeaderCompany); company != "" && company != claims.Company {
				respond.Error(writer, request, apperr.Forbidden("Session does not match request company"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetSession(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRoles blocks requests unless the authenticated user's role is a
// member of the allowed set.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Authorization Model
//
// Access is decided by explicit set membership, not by comparing rank.
// A route allowing managers does not automatically allow admins; list every
// role that should pass.
//
//	router.With(middleware.RequireRoles(sec.RoleManager, sec.RoleAdmin))
func RequireRoles(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetSession(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !sec.Role(claims.Role).In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
