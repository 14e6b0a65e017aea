package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	flagConfig          = "config"
	flagDSN             = "dsn"
	flagRequestTimeout  = "request-timeout"
	flagRetryCount      = "retry-count"
	flagRefreshInterval = "refresh-interval"
	flagRefreshMargin   = "refresh-margin"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
)

// RegisterFlags declares all configuration flags on fs. The values are read
// back by [Load] once fs has been parsed (for a cobra command this happens
// before its Run hooks).
//
// Flags:
//
//	-c/--config JSON file path with configs
//	-d/--dsn session store DSN (sqlite file or postgres URL)
//	--request-timeout request timeout (e.g. "10s")
//	--retry-count retries on gateway errors
//	--refresh-interval session refresh check interval (e.g. "30s")
//	--refresh-margin refresh sessions expiring within this margin
//	--log-level log level (debug, info, warn, error)
//	--log-format log encoding (console, json)
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON config file path")
	fs.StringP(flagDSN, "d", "", "Session store DSN (SQLite file path or postgres:// URL)")
	fs.Duration(flagRequestTimeout, 0, "Request timeout (e.g., 10s, 1m)")
	fs.Int(flagRetryCount, 0, "Retries on gateway errors")
	fs.Duration(flagRefreshInterval, 0, "Session refresh check interval (e.g., 30s)")
	fs.Duration(flagRefreshMargin, 0, "Refresh sessions expiring within this margin (e.g., 90s)")
	fs.String(flagLogLevel, "", "Log level (debug, info, warn, error)")
	fs.String(flagLogFormat, "", "Log encoding (console, json)")
}

func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var err error

	if cfg.JSONFilePath, err = fs.GetString(flagConfig); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagConfig, err)
	}
	if cfg.Storage.DB.DSN, err = fs.GetString(flagDSN); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagDSN, err)
	}
	if cfg.Adapter.RequestTimeout, err = fs.GetDuration(flagRequestTimeout); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagRequestTimeout, err)
	}
	if cfg.Adapter.RetryCount, err = fs.GetInt(flagRetryCount); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagRetryCount, err)
	}
	if cfg.Workers.RefreshInterval, err = fs.GetDuration(flagRefreshInterval); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagRefreshInterval, err)
	}
	if cfg.Workers.RefreshMargin, err = fs.GetDuration(flagRefreshMargin); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagRefreshMargin, err)
	}
	if cfg.Log.Level, err = fs.GetString(flagLogLevel); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagLogLevel, err)
	}
	if cfg.Log.Format, err = fs.GetString(flagLogFormat); err != nil {
		return nil, fmt.Errorf("error reading flag %q: %w", flagLogFormat, err)
	}

	return cfg, nil
}
