// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It resolves the auth handle once at startup, owns it for the lifetime of
// the application and wires the session store and the background refresh job
// around it.
package client
