// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the go-supa-client command line on top of
// [client.App].
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-supa-client/internal/client"
	"github.com/MKhiriev/go-supa-client/internal/config"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/models"
	"github.com/spf13/cobra"
)

const appName = "go-supa-client"

// Options configure the root command.
type Options struct {
	// BuildInfo is printed by the version command.
	BuildInfo models.BuildInfo

	// Environment is the snapshot the backend configuration is resolved
	// from. Defaults to the process environment.
	Environment config.Environment

	// NewLogger builds the logger once the log settings are known. Defaults
	// to [DefaultLogger] on stderr.
	NewLogger func(cfg config.Log) *logger.Logger
}

// DefaultLogger writes JSON entries to w when cfg asks for them and
// human-readable ones otherwise.
func DefaultLogger(w io.Writer, cfg config.Log) *logger.Logger {
	if cfg.Format == config.LogFormatJSON {
		return logger.NewLogger(w, appName, cfg.Level)
	}
	return logger.NewConsoleLogger(w, appName, cfg.Level)
}

// runtime is shared by all commands of one invocation.
type runtime struct {
	opts Options
	app  *client.App
	log  *logger.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	cmd, _ := newRootCommand(opts)
	return cmd
}

func newRootCommand(opts Options) (*cobra.Command, *runtime) {
	if opts.Environment == nil {
		opts.Environment = config.LookupEnvironment()
	}
	if opts.NewLogger == nil {
		opts.NewLogger = func(cfg config.Log) *logger.Logger {
			return DefaultLogger(os.Stderr, cfg)
		}
	}

	rt := &runtime{opts: opts}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Command line client for Supabase Auth",
		Long: `go-supa-client resolves the Supabase project from the environment
(VITE_SUPABASE_URL, SUPABASE_URL, ... and VITE_SUPABASE_ANON_KEY,
SUPABASE_ANON_KEY, ...) and talks to its auth server.

Without a project URL and anon key every command runs against an offline
client that asks you to complete the setup.

Common workflow:

  go-supa-client status                              # show what was resolved
  go-supa-client signup -e me@example.com            # create an account
  go-supa-client signin -e me@example.com            # sign in
  go-supa-client session                             # show the current session
  go-supa-client watch                               # follow auth events
  go-supa-client signout                             # sign out`,
		SilenceUsage:      true,
		PersistentPreRunE: rt.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return rt.teardown()
		},
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newStatusCommand(rt),
		newSignUpCommand(rt),
		newSignInCommand(rt),
		newSignOutCommand(rt),
		newSessionCommand(rt),
		newWatchCommand(rt),
		newVersionCommand(rt),
	)

	return rootCmd, rt
}

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context, opts Options) error {
	if err := NewRootCommand(opts).ExecuteContext(ctx); err != nil {
		return fmt.Errorf("cli error: %w", err)
	}
	return nil
}

func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rt.opts.Environment, cmd.Root().PersistentFlags())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	rt.log = rt.opts.NewLogger(cfg.Log)
	cmd.SetContext(rt.log.WithContext(cmd.Context()))

	rt.app, err = client.NewApp(cmd.Context(), cfg, rt.opts.Environment, rt.log)
	if err != nil {
		return fmt.Errorf("init client app error: %w", err)
	}
	rt.app.Start(cmd.Context())

	return nil
}

// runE wraps a command body so the app is closed when the body fails:
// cobra skips post-run hooks after an error.
func (rt *runtime) runE(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			if closeErr := rt.teardown(); closeErr != nil {
				logger.FromContext(cmd.Context()).Warn().Err(closeErr).Str("func", "runtime.runE").Msg("failed to close client")
			}
		}
		return err
	}
}

// teardown closes the app once.
func (rt *runtime) teardown() error {
	if rt.app == nil {
		return nil
	}
	app := rt.app
	rt.app = nil
	return app.Close()
}
