package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"stardrain/internal/config"
	"stardrain/internal/domain"
)

// App contains all application dependencies.
type App struct {
	// Factory for authenticated API clients, one per token
	ClientFactory domain.APIClientFactory

	// I/O dependencies
	CredentialReader domain.CredentialReader

	// Logging
	Logger *slog.Logger

	// Configuration
	Settings *config.Config
	Options  *Options
}

// Options holds process-level settings that are not part of the config file.
type Options struct {
	Verbose bool
	Stdin   io.Reader
	Stderr  io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Options)

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(o *Options) {
		o.Verbose = verbose
	}
}

// WithIO replaces the terminal streams.
func WithIO(stdin io.Reader, stderr io.Writer) Option {
	return func(o *Options) {
		o.Stdin = stdin
		o.Stderr = stderr
	}
}

// NewApp creates a new App for settings with the given options.
func NewApp(ctx context.Context, settings *config.Config, opts ...Option) (*App, error) {
	o := &Options{
		Stdin:  os.Stdin,
		Stderr: os.Stderr,
	}

	// Apply options.
	for _, opt := range opts {
		opt(o)
	}

	return NewAppWithOptions(ctx, settings, o)
}
