// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"io"
)

// notAvailable is printed for build fields the linker left empty.
const notAvailable = "N/A"

// BuildInfo is the release metadata stamped into the go-supa-client binary
// through -ldflags. Any field may be empty for local builds.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Print writes one "Build <field>: <value>" line per field to w, with N/A
// standing in for fields that were not stamped.
func (b BuildInfo) Print(w io.Writer) error {
	lines := [...]struct{ label, value string }{
		{"version", b.Version},
		{"date", b.Date},
		{"commit", b.Commit},
	}
	for _, l := range lines {
		value := l.value
		if value == "" {
			value = notAvailable
		}
		if _, err := fmt.Fprintf(w, "Build %s: %s\n", l.label, value); err != nil {
			return err
		}
	}
	return nil
}
