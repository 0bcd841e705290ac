package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpadapter "stardrain/internal/adapters/http"
	"stardrain/internal/app"
	"stardrain/internal/commands"
	"stardrain/internal/config"
	apperrors "stardrain/internal/errors"
	"stardrain/internal/logging"
	"stardrain/internal/prompt"
	"stardrain/internal/services/drain"
	"stardrain/internal/services/github"
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

type rootOptions struct {
	cfgFile string
	verbose bool
	v       *viper.Viper
}

// NewRootCmd builds the stardrain command tree. Running it without a
// subcommand performs the drain.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "stardrain",
		Short: "Remove every star from your GitHub account",
		Long: `Stardrain asks for a GitHub classic personal access token and then
unstars every repository the account has starred, one page at a time,
pausing between pages.

Without a terminal the token is read from $GITHUB_TOKEN.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.ReadInto(opts.v, opts.cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDrain(cmd, opts)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/stardrain/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.Duration("delay", drain.DefaultDelay, "Pause after every page")
	flags.Int("per-page", github.DefaultPerPage, "Starred repositories fetched per page (max 100)")
	flags.Int("workers", drain.DefaultWorkers, "Repositories of one page unstarred at once")
	flags.String("stop-policy", string(drain.DefaultPolicy), "When a failed unstar ends the run: last, any or all")
	flags.String("api-url", httpadapter.DefaultBaseURL, "GitHub REST API base URL")
	flags.String("log-format", logging.FormatText, "Log format: text or json")

	for key, name := range map[string]string{
		config.KeyDelay:      "delay",
		config.KeyPerPage:    "per-page",
		config.KeyWorkers:    "workers",
		config.KeyStopPolicy: "stop-policy",
		config.KeyAPIURL:     "api-url",
		config.KeyLogFormat:  "log-format",
	} {
		cobra.CheckErr(opts.v.BindPFlag(key, flags.Lookup(name)))
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func runDrain(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	settings, err := config.Load(opts.v)
	if err != nil {
		return err
	}

	application, err := app.NewApp(ctx, settings,
		app.WithVerbose(opts.verbose),
		app.WithIO(cmd.InOrStdin(), cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	drainCommand := commands.NewDrainCommand(
		application.CredentialReader,
		application.ClientFactory,
		application.Logger,
	)

	stats, err := drainCommand.Execute(ctx, commands.DrainRequest{
		Label:   prompt.DefaultLabel,
		PerPage: settings.PerPage,
		Options: settings.DrainOptions(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unstarred %d repositories (%d failed) across %d pages: %s\n",
		stats.Succeeded, stats.Failed, stats.Pages, stats.Reason)
	return nil
}

// FormatError renders a fatal error as "Error: <message> <status>". The
// status is omitted when the error did not come from an HTTP response.
func FormatError(err error) string {
	var reqErr *apperrors.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
		return fmt.Sprintf("Error: %s %d", reqErr.Error(), reqErr.StatusCode)
	}
	return "Error: " + err.Error()
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), FormatError(err))
		stop()
		os.Exit(1)
	}
}
