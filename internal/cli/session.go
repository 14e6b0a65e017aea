package cli

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/backend"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/models"
	"github.com/spf13/cobra"
)

func newSessionCommand(rt *runtime) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		Long: `Prints the signed-in account and when its access token expires. The
session is refreshed first when it is about to expire. With --verify the
account is fetched from the auth server.`,
		Args: cobra.NoArgs,
		RunE: rt.runE(func(cmd *cobra.Command, _ []string) error {
			session, err := rt.app.Auth().GetSession(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if session == nil {
				fmt.Fprintln(out, "not signed in")
				return nil
			}

			if verify {
				fetcher, ok := rt.app.Auth().(backend.UserFetcher)
				if !ok {
					return fmt.Errorf("account verification is not available in %s mode", rt.app.Handle().Mode)
				}
				user, err := fetcher.GetUser(cmd.Context())
				if err != nil {
					return err
				}
				session.User = *user
			}

			printSession(out, session)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Fetch the account from the auth server")
	return cmd
}

func newWatchCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print auth state changes until interrupted",
		Long: `Subscribes to auth state changes and prints every event. The session is
refreshed in the background while the command runs.`,
		Args: cobra.NoArgs,
		RunE: rt.runE(func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			log := logger.FromContext(ctx)
			events := make(chan string, 16)

			// the client waits for the printer rather than losing events
			sub := rt.app.Auth().OnAuthStateChange(func(event models.AuthChangeEvent, session *models.Session) {
				line := string(event)
				if session != nil {
					line += " " + accountName(session.User)
				}
				select {
				case events <- line:
				case <-ctx.Done():
					log.Debug().Str("func", "watch").Str("event", string(event)).Msg("watch stopped, event not printed")
				}
			})
			defer sub.Unsubscribe()
			log.Debug().Str("func", "watch").Str("subscription", sub.ID()).Msg("watching auth state changes")

			for {
				select {
				case <-ctx.Done():
					return nil
				case line := <-events:
					fmt.Fprintln(out, line)
				}
			}
		}),
	}
}

func printSession(w io.Writer, s *models.Session) {
	fmt.Fprintf(w, "user:       %s\n", accountName(s.User))
	if s.User.ID != "" {
		fmt.Fprintf(w, "user id:    %s\n", s.User.ID)
	}
	if s.ExpiresAt != 0 {
		fmt.Fprintf(w, "expires at: %s\n", time.Unix(s.ExpiresAt, 0).UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "refreshable: %t\n", s.CanRefresh())
}
