// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(writer http.ResponseWriter, status int, data any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{"data": data})
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{"error": message, "code": "ERROR"})
}

func signedInClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	apiClient := New(baseURL)
	err := apiClient.Session().Save(SessionData{
		Token:   "jwt-admin",
		UID:     "admin-1",
		Role:    RoleAdmin,
		Company: "acme-hardware",
	})
	require.NoError(t, err)
	return apiClient
}

/*
TestClient_AttachesCredentials verifies every call carries the bearer token
and the identifying headers from the session.
*/
func TestClient_AttachesCredentials(t *testing.T) {
	var authorization, uid, company string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authorization = request.Header.Get("Authorization")
		uid = request.Header.Get("uid")
		company = request.Header.Get("companyName")
		writeData(writer, http.StatusOK, []Item{})
	}))
	defer server.Close()

	apiClient := signedInClient(t, server.URL)
	_, err := apiClient.ListInventory(context.Background(), 1, 25)
	require.NoError(t, err)

	assert.Equal(t, "Bearer jwt-admin", authorization)
	assert.Equal(t, "admin-1", uid)
	assert.Equal(t, "acme-hardware", company)
}

/*
TestClient_ErrorMessagePassthrough verifies a non-2xx response surfaces
exactly the API's error message, here the CSV rejection.
*/
func TestClient_ErrorMessagePassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeError(writer, http.StatusBadRequest, "Invalid CSV format")
	}))
	defer server.Close()

	apiClient := signedInClient(t, server.URL)
	_, err := apiClient.UploadInventoryCSV(context.Background(), "items.csv", strings.NewReader("bad header\n"))

	require.Error(t, err)
	assert.EqualError(t, err, "Invalid CSV format")

	apiError := &APIError{}
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusBadRequest, apiError.Status)
}

/*
TestManageUser_FailedReAuth verifies a failed password re-verification
aborts with zero calls to the user-management endpoint.
*/
func TestManageUser_FailedReAuth(t *testing.T) {
	var managementCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/account/me", func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, User{UID: "admin-1", Email: "owner@acme.test", Role: RoleAdmin})
	})
	mux.HandleFunc("/api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writeError(writer, http.StatusUnauthorized, "Invalid login credentials")
	})
	mux.HandleFunc("/api/v1/users/", func(writer http.ResponseWriter, request *http.Request) {
		managementCalls.Add(1)
		writeData(writer, http.StatusOK, User{})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	apiClient := signedInClient(t, server.URL)

	_, err := apiClient.PromoteUser(context.Background(), "staff-1", "wrong-password")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid login credentials")
	assert.Zero(t, managementCalls.Load())

	err = apiClient.RemoveUser(context.Background(), "staff-1", "wrong-password")
	require.Error(t, err)
	assert.Zero(t, managementCalls.Load())
}

/*
TestManageUser_ReAuthThenCall verifies the happy path: the fresh login
token is stored and the privileged call goes through.
*/
func TestManageUser_ReAuthThenCall(t *testing.T) {
	var managementAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/account/me", func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, User{UID: "admin-1", Email: "owner@acme.test", Role: RoleAdmin})
	})
	mux.HandleFunc("/api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, AuthSession{
			Token: "jwt-fresh", UID: "admin-1", Role: RoleAdmin, Company: "acme-hardware",
		})
	})
	mux.HandleFunc("/api/v1/users/staff-1/promote", func(writer http.ResponseWriter, request *http.Request) {
		managementAuth = request.Header.Get("Authorization")

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "correct-password", body["password"])

		writeData(writer, http.StatusOK, User{UID: "staff-1", Role: RoleManager})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	apiClient := signedInClient(t, server.URL)

	user, err := apiClient.PromoteUser(context.Background(), "staff-1", "correct-password")
	require.NoError(t, err)

	assert.Equal(t, RoleManager, user.Role)
	assert.Equal(t, "Bearer jwt-fresh", managementAuth)
}

/*
TestManageUser_FailedCallRestoresSession verifies a management call that
fails after the re-login leaves the session exactly as it was before.
*/
func TestManageUser_FailedCallRestoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/account/me", func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, User{UID: "admin-1", Email: "owner@acme.test", Role: RoleAdmin})
	})
	mux.HandleFunc("/api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, AuthSession{
			Token: "jwt-fresh", UID: "admin-1", Role: RoleAdmin, Company: "acme-hardware",
		})
	})
	mux.HandleFunc("/api/v1/users/", func(writer http.ResponseWriter, request *http.Request) {
		writeError(writer, http.StatusUnprocessableEntity, "Only staff accounts can become manager")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	apiClient := signedInClient(t, server.URL)
	before := apiClient.Session().Snapshot()

	_, err := apiClient.PromoteUser(context.Background(), "manager-1", "correct-password")
	require.Error(t, err)
	assert.EqualError(t, err, "Only staff accounts can become manager")

	assert.Equal(t, before, apiClient.Session().Snapshot())
}

/*
TestFederatedSignIn_AdditionalInfo verifies a requiresAdditionalInfo
response stores no token.
*/
func TestFederatedSignIn_AdditionalInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, map[string]any{"requiresAdditionalInfo": true})
	}))
	defer server.Close()

	apiClient := New(server.URL)

	session, err := apiClient.FederatedSignIn(context.Background(), "provider-token", FederatedProfile{})
	require.NoError(t, err)

	assert.True(t, session.RequiresAdditionalInfo)
	assert.Empty(t, apiClient.Session().Token())
}

/*
TestLogin_SavesSession verifies a successful login stores the full session.
*/
func TestLogin_SavesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeData(writer, http.StatusOK, AuthSession{
			Token: "jwt-abc", UID: "user-1", Role: RoleStaff, Company: "acme-hardware", Theme: "light",
		})
	}))
	defer server.Close()

	apiClient := New(server.URL)

	_, err := apiClient.Login(context.Background(), "staff@acme.test", "Str0ng!pass")
	require.NoError(t, err)

	snapshot := apiClient.Session().Snapshot()
	assert.Equal(t, "jwt-abc", snapshot.Token)
	assert.Equal(t, "user-1", snapshot.UID)
	assert.Equal(t, RoleStaff, snapshot.Role)
	assert.Equal(t, "acme-hardware", snapshot.Company)
}

/*
TestLogout_ClearsSessionEvenOnFailure verifies the local session is wiped
even when the server-side revocation fails.
*/
func TestLogout_ClearsSessionEvenOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeError(writer, http.StatusServiceUnavailable, "Service unavailable")
	}))
	defer server.Close()

	apiClient := signedInClient(t, server.URL)

	err := apiClient.Logout(context.Background())
	require.Error(t, err)
	assert.Empty(t, apiClient.Session().Token())
}
