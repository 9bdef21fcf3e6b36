// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package client

import (
	"context"
	"sync"
	"time"
)

// resolveTimeout bounds one token exchange.
const resolveTimeout = 15 * time.Second

// ProviderEvent is one change of the federated provider's sign-in state.
// An empty IDToken means no principal is signed in at the provider.
type ProviderEvent struct {
	IDToken string
}

// Resolver turns a provider's sign-in event stream into resolved
// [AuthState] values.
//
// For every event it publishes a loading state, exchanges the provider
// token for an API session, and then publishes exactly one terminal state:
// {User, false} on success, {nil, false} on no principal or a failed
// exchange. The failed and signed-out paths also clear the session.
type Resolver struct {
	client *Client
	events <-chan ProviderEvent
	states chan AuthState

	done      chan struct{}
	closeOnce sync.Once
}

// NewResolver starts resolving events immediately. Callers consume
// [Resolver.States] until they call Close.
func NewResolver(client *Client, events <-chan ProviderEvent) *Resolver {
	resolver := &Resolver{
		client: client,
		events: events,
		states: make(chan AuthState, 1),
		done:   make(chan struct{}),
	}
	go resolver.run()
	return resolver
}

// States delivers the published auth states, loading and terminal alike.
func (resolver *Resolver) States() <-chan AuthState {
	return resolver.states
}

// Close stops the resolver. In-flight resolutions are dropped, never
// published after Close returns.
func (resolver *Resolver) Close() {
	resolver.closeOnce.Do(func() {
		close(resolver.done)
	})
}

func (resolver *Resolver) run() {
	for {
		select {
		case <-resolver.done:
			return
		case event, ok := <-resolver.events:
			if !ok {
				return
			}
			resolver.publish(AuthState{Loading: true})
			resolver.publish(resolver.resolve(event))
		}
	}
}

// resolve performs the exchange for one event.
func (resolver *Resolver) resolve(event ProviderEvent) AuthState {
	if event.IDToken == "" {
		resolver.client.Session().Clear()
		return AuthState{}
	}

	context, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	session, err := resolver.client.ExchangeToken(context, event.IDToken)
	if err != nil {
		resolver.client.Session().Clear()
		return AuthState{}
	}

	return AuthState{User: session.User}
}

// publish delivers a state unless the resolver was closed meanwhile.
func (resolver *Resolver) publish(state AuthState) {
	select {
	case <-resolver.done:
	case resolver.states <- state:
	}
}
