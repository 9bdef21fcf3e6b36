// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextState reads one published state or fails the test after a timeout.
func nextState(t *testing.T, states <-chan AuthState) AuthState {
	t.Helper()
	select {
	case state := <-states:
		return state
	case <-time.After(2 * time.Second):
		t.Fatal("no auth state published")
		return AuthState{}
	}
}

func exchangeServer(t *testing.T, accept string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		if body["idToken"] != accept {
			writeError(writer, http.StatusUnauthorized, "Invalid identity token")
			return
		}
		writeData(writer, http.StatusOK, AuthSession{
			Token: "jwt-abc", UID: "user-1", Role: RoleStaff, Company: "acme-hardware",
			User: &User{UID: "user-1", Role: RoleStaff, Company: "acme-hardware"},
		})
	}))
}

/*
TestResolver_SignIn verifies one event produces a loading state followed by
exactly one terminal state carrying the resolved user.
*/
func TestResolver_SignIn(t *testing.T) {
	server := exchangeServer(t, "good-token")
	defer server.Close()

	apiClient := New(server.URL)
	events := make(chan ProviderEvent, 1)
	resolver := NewResolver(apiClient, events)
	defer resolver.Close()

	events <- ProviderEvent{IDToken: "good-token"}

	loading := nextState(t, resolver.States())
	assert.True(t, loading.Loading)
	assert.Nil(t, loading.User)

	terminal := nextState(t, resolver.States())
	assert.False(t, terminal.Loading)
	require.NotNil(t, terminal.User)
	assert.Equal(t, "user-1", terminal.User.UID)

	assert.Equal(t, "jwt-abc", apiClient.Session().Token())

	// No further publishes for a single event.
	select {
	case state := <-resolver.States():
		t.Fatalf("unexpected extra state: %+v", state)
	case <-time.After(100 * time.Millisecond):
	}
}

/*
TestResolver_FailedExchange verifies a rejected provider token yields a
signed-out terminal state and a cleared session.
*/
func TestResolver_FailedExchange(t *testing.T) {
	server := exchangeServer(t, "good-token")
	defer server.Close()

	apiClient := signedInClient(t, server.URL)
	events := make(chan ProviderEvent, 1)
	resolver := NewResolver(apiClient, events)
	defer resolver.Close()

	events <- ProviderEvent{IDToken: "revoked-token"}

	nextState(t, resolver.States()) // loading
	terminal := nextState(t, resolver.States())

	assert.False(t, terminal.Loading)
	assert.Nil(t, terminal.User)
	assert.Empty(t, apiClient.Session().Token())
}

/*
TestResolver_SignOutEvent verifies an empty event clears the session
without calling the API.
*/
func TestResolver_SignOutEvent(t *testing.T) {
	apiClient := signedInClient(t, "http://127.0.0.1:0")
	events := make(chan ProviderEvent, 1)
	resolver := NewResolver(apiClient, events)
	defer resolver.Close()

	events <- ProviderEvent{}

	nextState(t, resolver.States()) // loading
	terminal := nextState(t, resolver.States())

	assert.Nil(t, terminal.User)
	assert.Empty(t, apiClient.Session().Token())
}

/*
TestResolver_CloseDropsInFlight verifies nothing is published after Close.
*/
func TestResolver_CloseDropsInFlight(t *testing.T) {
	server := exchangeServer(t, "good-token")
	defer server.Close()

	apiClient := New(server.URL)
	events := make(chan ProviderEvent)
	resolver := NewResolver(apiClient, events)

	resolver.Close()

	select {
	case events <- ProviderEvent{IDToken: "good-token"}:
	default:
		// Run loop already stopped; the event has nowhere to go.
	}

	select {
	case state := <-resolver.States():
		t.Fatalf("state published after close: %+v", state)
	case <-time.After(100 * time.Millisecond):
	}
}
