// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package backend defines the auth capability surface of the hosted backend
// and its two variants: a live client talking to the auth server and a mock
// that rejects every mutating call until the project is configured.
package backend

import (
	"context"

	"github.com/MKhiriev/go-supa-client/models"
)

// AuthStateCallback receives auth state transitions. session is nil after a
// sign-out and on the initial event when nobody is signed in.
type AuthStateCallback func(event models.AuthChangeEvent, session *models.Session)

// Subscription cancels an [AuthClient.OnAuthStateChange] registration.
type Subscription interface {
	// ID identifies the registration. Empty for the no-op subscription.
	ID() string

	// Unsubscribe removes the callback. Calling it more than once is safe.
	Unsubscribe()
}

// AuthClient is the capability set shared by the live and the mock client.
type AuthClient interface {
	// SignUp creates an account. The response carries a session only when
	// the project confirms accounts automatically.
	SignUp(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// SignInWithPassword signs in with e-mail or phone plus password.
	SignInWithPassword(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// GetSession returns the current session or nil when nobody is signed in.
	GetSession(ctx context.Context) (*models.Session, error)

	// OnAuthStateChange registers callback for auth state transitions.
	OnAuthStateChange(callback AuthStateCallback) Subscription
}

// UserFetcher is implemented by clients that can ask the server for the
// account behind the current session.
type UserFetcher interface {
	GetUser(ctx context.Context) (*models.User, error)
}
