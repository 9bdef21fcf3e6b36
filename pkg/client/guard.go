// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

// AuthState is a resolved sign-in state as published by the [Resolver].
//
// Loading is true only while a provider event is being exchanged for an
// API session. User is nil when signed out.
type AuthState struct {
	User    *User
	Loading bool
}

// Verdict is the outcome of a route guard decision.
type Verdict int

// The four possible verdicts, checked in this order.
const (
	// Placeholder means the state is still loading. Render a neutral
	// placeholder; never the protected view, never a redirect.
	Placeholder Verdict = iota

	// Render means the user may see the protected view.
	Render

	// RedirectSignIn means nobody is signed in. From carries the path to
	// return to after sign-in.
	RedirectSignIn

	// RedirectUnauthorized means the user is signed in but their role is
	// not in the allowed set.
	RedirectUnauthorized
)

// Decision pairs a [Verdict] with the redirect target it may carry.
type Decision struct {
	Verdict Verdict

	// From is the originally requested path, set only for RedirectSignIn.
	From string
}

// Decide is the route guard. It is pure: no side effects, safe to
// re-evaluate on every state change.
//
// An empty allowed set admits any signed-in user.
func Decide(state AuthState, allowed []Role, path string) Decision {
	if state.Loading {
		return Decision{Verdict: Placeholder}
	}

	if state.User == nil {
		return Decision{Verdict: RedirectSignIn, From: path}
	}

	if len(allowed) == 0 {
		return Decision{Verdict: Render}
	}
	for _, role := range allowed {
		if state.User.Role == role {
			return Decision{Verdict: Render}
		}
	}

	return Decision{Verdict: RedirectUnauthorized}
}
