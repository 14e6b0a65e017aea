// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Defaults applied after all sources are merged, for fields left at zero.
const (
	DefaultRequestTimeout  = 10 * time.Second
	DefaultRefreshInterval = 30 * time.Second
	DefaultRefreshMargin   = 90 * time.Second
	DefaultLogLevel        = "info"
)

// Log formats accepted by [Log.Format].
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// StructuredConfig is the top-level ambient configuration container for the
// go-supa-client application. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// The backend URL and key are deliberately not part of it: they are picked
// from a fixed list of candidate variables by the resolver package.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the outbound HTTP settings used to talk to the auth
	// server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the session persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds the session auto-refresh settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings for the auth server transport.
type Adapter struct {
	// RequestTimeout is the maximum duration of a single outbound request
	// (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is the number of retries for requests that failed with a
	// gateway error (502, 503, 504).
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// Storage groups the configuration for session persistence.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the session database.
type DB struct {
	// DSN selects the session store. A postgres:// or postgresql:// URL
	// opens PostgreSQL, any other value is used as a SQLite file path and an
	// empty value keeps sessions in memory only.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for the background session refresh job.
type Workers struct {
	// RefreshInterval is how often the job checks the current session.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// RefreshMargin is how long before expiry a session gets refreshed.
	// Env: WORKERS_REFRESH_MARGIN
	RefreshMargin time.Duration `env:"REFRESH_MARGIN"`
}

// Log holds logging settings.
type Log struct {
	// Level is the minimum level emitted ("debug", "info", "warn", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// Format selects the log encoding: "console" for people, "json" for
	// log collectors. Both write to stderr.
	// Env: LOG_FORMAT
	Format string `env:"FORMAT"`
}

// GetStructuredConfig loads, merges, and validates the configuration from the
// process environment only. It is a shortcut for Load(LookupEnvironment(), nil).
func GetStructuredConfig() (*StructuredConfig, error) {
	return Load(LookupEnvironment(), nil)
}

// Load loads, merges, and validates the application configuration from all
// available sources in the following priority order (later non-zero values
// win):
//  1. Environment variables taken from environment
//  2. Command-line flags registered on flags via [RegisterFlags] (skipped when
//     flags is nil)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields still zero afterwards receive the package defaults.
func Load(environment Environment, flags *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder(environment, flags).
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.RefreshInterval == 0 {
		cfg.Workers.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Workers.RefreshMargin == 0 {
		cfg.Workers.RefreshMargin = DefaultRefreshMargin
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = LogFormatConsole
	}
}
