// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-supa-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_repository_mock.go -package=mock

// SessionRepository persists the auth session of a project between runs.
// Sessions are addressed by storage key ("sb-<project-ref>-auth-token").
type SessionRepository interface {
	// Load returns the session stored under key or [ErrSessionNotFound].
	Load(ctx context.Context, key string) (models.Session, error)

	// Save inserts or replaces the session stored under key.
	Save(ctx context.Context, key string, session models.Session) error

	// Delete removes the session stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
