// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resolver turns an environment snapshot into the application's auth
// handle.
//
// The backend URL and anon key are looked up in fixed, ordered candidate
// lists; the first non-empty value of each list wins. When both are found the
// resolver asks its [LiveFactory] for a live client. Otherwise it logs what
// is missing together with the names of all available variables and hands out
// the mock client from package backend, whose mutating calls fail with
// backend.ErrSetupIncomplete. Resolution itself never fails.
package resolver
