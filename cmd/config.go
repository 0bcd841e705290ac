package cmd

import (
	"github.com/spf13/cobra"

	"stardrain/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration stardrain would run with, after applying the
config file, STARDRAIN_* environment variables and flags, as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(opts.v)
			if err != nil {
				return err
			}

			out, err := settings.YAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
