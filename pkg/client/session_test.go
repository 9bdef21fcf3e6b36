// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestSession_SaveAndClear verifies Clear wipes every key, leaving nothing of
the previous identity behind.
*/
func TestSession_SaveAndClear(t *testing.T) {
	session := NewSession()

	err := session.Save(SessionData{
		Token:   "jwt-abc",
		UID:     "user-1",
		Role:    RoleAdmin,
		Company: "acme-hardware",
		Theme:   "dark",
	})
	require.NoError(t, err)
	assert.True(t, session.Snapshot().SignedIn())

	session.Clear()

	snapshot := session.Snapshot()
	assert.Empty(t, snapshot.Token)
	assert.Empty(t, snapshot.UID)
	assert.Empty(t, snapshot.Role)
	assert.Empty(t, snapshot.Company)
	assert.Empty(t, snapshot.Theme)
	assert.False(t, snapshot.SignedIn())
}

/*
TestSession_RejectsTokenWithoutIdentity verifies a token can never be held
without the uid and role it belongs to.
*/
func TestSession_RejectsTokenWithoutIdentity(t *testing.T) {
	session := NewSession()

	err := session.Save(SessionData{Token: "jwt-abc"})
	require.ErrorIs(t, err, ErrIncompleteSession)
	assert.False(t, session.Snapshot().SignedIn())

	err = session.Save(SessionData{Token: "jwt-abc", UID: "user-1"})
	require.ErrorIs(t, err, ErrIncompleteSession)
}
