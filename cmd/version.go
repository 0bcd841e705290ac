package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit, build date, and build information for stardrain.`,
		Args:  cobra.NoArgs,
		// Version output never depends on the config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			info := GetVersionInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "stardrain version %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", info.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built: %s\n", info.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "  built by: %s\n", info.BuiltBy)
		},
	}
}
