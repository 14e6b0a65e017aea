// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-supa-client/internal/backend"
)

// Client defines the minimal lifecycle contract for client applications.
type Client interface {
	// Auth returns the auth client resolved at startup.
	Auth() backend.AuthClient

	// Start launches background work. It returns immediately.
	Start(ctx context.Context)

	// Close stops background work and releases resources.
	Close() error
}
