// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"errors"
	"sync"
)

// ErrIncompleteSession rejects a save that would hold a token without the
// identity it belongs to.
var ErrIncompleteSession = errors.New("client: session token requires uid and role")

// SessionData is one signed-in identity. The zero value is signed out.
type SessionData struct {
	Token   string
	UID     string
	Role    Role
	Company string
	Theme   string
}

// SignedIn reports whether a token is held.
func (data SessionData) SignedIn() bool {
	return data.Token != ""
}

// Session is the in-memory credential store shared by a [Client] and its
// [Resolver]. The resolver writes from its own goroutine, so all access
// goes through the mutex.
type Session struct {
	mu   sync.RWMutex
	data SessionData
}

// NewSession returns an empty, signed-out session.
func NewSession() *Session {
	return &Session{}
}

// Save replaces the whole session atomically. A non-empty token must come
// with the uid and role it was minted for.
func (session *Session) Save(data SessionData) error {
	if data.Token != "" && (data.UID == "" || data.Role == "") {
		return ErrIncompleteSession
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.data = data
	return nil
}

// Clear wipes every key. After Clear the session reads as signed out.
func (session *Session) Clear() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.data = SessionData{}
}

// Snapshot returns a copy of the current session.
func (session *Session) Snapshot() SessionData {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.data
}

// Token returns the held bearer token, or the empty string when signed out.
func (session *Session) Token() string {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.data.Token
}
