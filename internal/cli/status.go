package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how the Supabase project was resolved",
		Long: `Prints whether the client is live or offline and which environment
variables the project URL and anon key were taken from. The key itself is
never printed.`,
		Args: cobra.NoArgs,
		RunE: rt.runE(func(cmd *cobra.Command, _ []string) error {
			h := rt.app.Handle()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "mode: %s\n", h.Mode)
			if h.Backend.URL != "" {
				fmt.Fprintf(out, "url:  %s (from %s)\n", h.Backend.URL, h.Backend.URLSource)
			} else {
				fmt.Fprintln(out, "url:  not set")
			}
			if h.Backend.Key != "" {
				fmt.Fprintf(out, "key:  set (from %s)\n", h.Backend.KeySource)
			} else {
				fmt.Fprintln(out, "key:  not set")
			}

			return nil
		}),
	}
}
