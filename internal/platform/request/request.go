// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom/internal/platform/apperr"
	"github.com/stockroomhq/stockroom/internal/platform/ctxutil"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
	"github.com/stockroomhq/stockroom/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Session extracts the authenticated session claims from the request context.

Returns nil if the request is not authenticated.
*/
func Session(request *http.Request) *sec.SessionClaims {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request is authenticated and returns the session claims.

Returns:
  - *sec.SessionClaims: The authenticated session claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredSession(request *http.Request) (*sec.SessionClaims, error) {

	// Get session claims
	claims := ctxutil.GetSession(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredCompany returns the company slug of the currently logged-in user.

Every tenant-scoped handler goes through this accessor so that data access
is always bound to the company carried in the session token.

Returns:
  - string: Company slug
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredCompany(request *http.Request) (string, error) {

	// Get session claims
	claims, err := RequiredSession(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.Company, nil
}

/*
RequiredUserID returns the user ID of the currently logged-in user.

Returns:
  - string: User ID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get session claims
	claims, err := RequiredSession(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}
