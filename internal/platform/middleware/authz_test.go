// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/platform/ctxutil"
	"github.com/stockroomhq/stockroom/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string.
type fakeVerifier struct {
	token  string
	claims *sec.SessionClaims
}

func (verifier *fakeVerifier) VerifyToken(tokenStr string) (*sec.SessionClaims, error) {
	if tokenStr != verifier.token {
		return nil, errors.New("token_invalid")
	}
	return verifier.claims, nil
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{
		token: "valid-token",
		claims: &sec.SessionClaims{
			UserID:  "user-1",
			Role:    string(sec.RoleManager),
			Company: "acme-hardware",
		},
	}
}

// echoSession records whether the handler ran and what session it saw.
type echoSession struct {
	called bool
	claims *sec.SessionClaims
}

func (echo *echoSession) handler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		echo.called = true
		echo.claims = ctxutil.GetSession(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate verifies token verification, anonymous pass-through, and
context injection.
*/
func TestAuthenticate(t *testing.T) {
	verifier := newFakeVerifier()

	t.Run("valid token injects claims", func(t *testing.T) {
		echo := &echoSession{}
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer valid-token")
		recorder := httptest.NewRecorder()

		Authenticate(verifier)(echo.handler()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, echo.claims)
		assert.Equal(t, "user-1", echo.claims.UserID)
	})

	t.Run("no header passes through anonymous", func(t *testing.T) {
		echo := &echoSession{}
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()

		Authenticate(verifier)(echo.handler()).ServeHTTP(recorder, request)

		assert.True(t, echo.called)
		assert.Nil(t, echo.claims)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		echo := &echoSession{}
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "valid-token")
		recorder := httptest.NewRecorder()

		Authenticate(verifier)(echo.handler()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, echo.called)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		echo := &echoSession{}
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer forged-token")
		recorder := httptest.NewRecorder()

		Authenticate(verifier)(echo.handler()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, echo.called)
	})
}

/*
TestAuthenticate_HeaderAgreement verifies the advisory uid/companyName
headers must agree with the signed token.
*/
func TestAuthenticate_HeaderAgreement(t *testing.T) {
	verifier := newFakeVerifier()

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"matching uid", "uid", "user-1", http.StatusOK},
		{"mismatched uid", "uid", "user-2", http.StatusForbidden},
		{"matching company", "companyName", "acme-hardware", http.StatusOK},
		{"mismatched company", "companyName", "rival-tools", http.StatusForbidden},
		{"empty headers are ignored", "uid", "", http.StatusOK},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			echo := &echoSession{}
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", "Bearer valid-token")
			if test.value != "" {
				request.Header.Set(test.header, test.value)
			}
			recorder := httptest.NewRecorder()

			Authenticate(verifier)(echo.handler()).ServeHTTP(recorder, request)

			assert.Equal(t, test.wantStatus, recorder.Code)
			assert.Equal(t, test.wantStatus == http.StatusOK, echo.called)
		})
	}
}

/*
TestRequireAuth verifies anonymous requests are blocked.
*/
func TestRequireAuth(t *testing.T) {
	echo := &echoSession{}
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	RequireAuth(echo.handler()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, echo.called)
}

/*
TestRequireRoles verifies access is decided by explicit set membership,
never by comparing rank.
*/
func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       sec.Role
		allowed    []sec.Role
		wantStatus int
	}{
		{"member of the set", sec.RoleManager, []sec.Role{sec.RoleManager, sec.RoleAdmin}, http.StatusOK},
		{"admin in admin-only set", sec.RoleAdmin, []sec.Role{sec.RoleAdmin}, http.StatusOK},
		{"staff outside the set", sec.RoleStaff, []sec.Role{sec.RoleManager, sec.RoleAdmin}, http.StatusForbidden},
		{"admin outside a staff-only set", sec.RoleAdmin, []sec.Role{sec.RoleStaff}, http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			echo := &echoSession{}
			claims := &sec.SessionClaims{UserID: "user-1", Role: string(test.role), Company: "acme-hardware"}

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request = request.WithContext(ctxutil.WithSession(request.Context(), claims))
			recorder := httptest.NewRecorder()

			RequireRoles(test.allowed...)(echo.handler()).ServeHTTP(recorder, request)

			assert.Equal(t, test.wantStatus, recorder.Code)
			assert.Equal(t, test.wantStatus == http.StatusOK, echo.called)
		})
	}

	t.Run("anonymous is rejected before the role check", func(t *testing.T) {
		echo := &echoSession{}
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()

		RequireRoles(sec.RoleAdmin)(echo.handler()).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, echo.called)
	})
}
