package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParseFlags_AllFlags(t *testing.T) {
	fs := newFlagSet(t,
		"-c", "/etc/client.json",
		"-d", "/tmp/sessions.db",
		"--request-timeout", "5s",
		"--retry-count", "4",
		"--refresh-interval", "20s",
		"--refresh-margin", "45s",
		"--log-level", "warn",
		"--log-format", "json",
	)

	cfg, err := parseFlags(fs)

	require.NoError(t, err)
	assert.Equal(t, "/etc/client.json", cfg.JSONFilePath)
	assert.Equal(t, "/tmp/sessions.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 4, cfg.Adapter.RetryCount)
	assert.Equal(t, 20*time.Second, cfg.Workers.RefreshInterval)
	assert.Equal(t, 45*time.Second, cfg.Workers.RefreshMargin)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseFlags_LongConfigAlias(t *testing.T) {
	fs := newFlagSet(t, "--config", "/etc/alias.json", "--dsn", "postgres://localhost/db")

	cfg, err := parseFlags(fs)

	require.NoError(t, err)
	assert.Equal(t, "/etc/alias.json", cfg.JSONFilePath)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
}

func TestParseFlags_NoFlagsGivesZeroConfig(t *testing.T) {
	fs := newFlagSet(t)

	cfg, err := parseFlags(fs)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_UnregisteredFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("empty", pflag.ContinueOnError)

	_, err := parseFlags(fs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), flagConfig)
}

func TestRegisterFlags_InvalidDurationRejectedByParse(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)

	err := fs.Parse([]string{"--request-timeout", "soon"})
	assert.Error(t, err)
}
