// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for the hosted auth server
// (Supabase Auth / GoTrue).
//
// The primary abstraction is [AuthAdapter], which decouples the auth clients
// from the REST protocol. The package ships an HTTP implementation built on
// go-resty ([NewHTTPAuthAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrTooManyRequests] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-supa-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_adapter_mock.go -package=mock

// AuthAdapter defines stateless communication with the auth server. It never
// stores sessions; tokens are passed in explicitly by the caller.
type AuthAdapter interface {
	// SignUp creates an account. When the project confirms accounts
	// automatically the response carries a session, otherwise only the user.
	SignUp(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// SignInWithPassword exchanges e-mail/phone and password for a session
	// (password grant).
	SignInWithPassword(ctx context.Context, creds models.Credentials) (models.Session, error)

	// RefreshSession exchanges a refresh token for a new session
	// (refresh_token grant).
	RefreshSession(ctx context.Context, refreshToken string) (models.Session, error)

	// SignOut revokes the refresh tokens of the session identified by
	// accessToken.
	SignOut(ctx context.Context, accessToken string) error

	// GetUser fetches the account the access token belongs to.
	GetUser(ctx context.Context, accessToken string) (models.User, error)
}
