package app

import (
	"context"

	"stardrain/internal/adapters/http"
	"stardrain/internal/adapters/terminal"
	"stardrain/internal/config"
	apperrors "stardrain/internal/errors"
	"stardrain/internal/logging"
)

// NewAppWithOptions wires all dependencies for settings.
func NewAppWithOptions(ctx context.Context, settings *config.Config, o *Options) (*App, error) {
	if settings == nil {
		return nil, apperrors.NewConfigurationError("", "no configuration loaded", nil)
	}

	// Create logger.
	logCfg := logging.DefaultConfig()
	logCfg.Level = settings.LogLevelValue(o.Verbose)
	if settings.LogFormat != "" {
		logCfg.Format = settings.LogFormat
	}
	if o.Stderr != nil {
		logCfg.Output = o.Stderr
	}
	logger := logging.NewLogger(logCfg)

	// Create client factory for on-demand client creation.
	clientFactory := http.NewFactory(settings.ClientOptions(), logger)

	// Create credential reader with environment variable support.
	credentialReader := terminal.NewAdapter(o.Stdin, o.Stderr)

	logger.DebugContext(ctx, "Initializing stardrain with configuration",
		"apiURL", settings.APIURL,
		"perPage", settings.PerPage,
		"delay", settings.Delay,
		"workers", settings.Workers,
		"stopPolicy", settings.StopPolicy,
		"verbose", o.Verbose)

	return &App{
		ClientFactory:    clientFactory,
		CredentialReader: credentialReader,
		Logger:           logger,
		Settings:         settings,
		Options:          o,
	}, nil
}
