package cli

import (
	"github.com/spf13/cobra"
)

func newVersionCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no configuration or backend needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.opts.BuildInfo.Print(cmd.OutOrStdout())
		},
	}
}
