// Package config loads stardrain settings from defaults, the config file,
// STARDRAIN_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	httpadapter "stardrain/internal/adapters/http"
	apperrors "stardrain/internal/errors"
	"stardrain/internal/logging"
	"stardrain/internal/services/drain"
	"stardrain/internal/services/github"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "STARDRAIN"

// Keys shared by the config file, environment and flags.
const (
	KeyAPIURL     = "api_url"
	KeyAPIVersion = "api_version"
	KeyPerPage    = "per_page"
	KeyDelay      = "delay"
	KeyWorkers    = "workers"
	KeyStopPolicy = "stop_policy"
	KeyTimeout    = "timeout"
	KeyRateLimit  = "rate_limit"
	KeyRateBurst  = "rate_burst"
	KeyLogFormat  = "log_format"
	KeyLogLevel   = "log_level"
)

// Config is the effective configuration of one run.
type Config struct {
	APIURL     string        `mapstructure:"api_url"`
	APIVersion string        `mapstructure:"api_version"`
	PerPage    int           `mapstructure:"per_page"`
	Delay      time.Duration `mapstructure:"delay"`
	Workers    int           `mapstructure:"workers"`
	StopPolicy string        `mapstructure:"stop_policy"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RateLimit  float64       `mapstructure:"rate_limit"`
	RateBurst  int           `mapstructure:"rate_burst"`
	LogFormat  string        `mapstructure:"log_format"`
	LogLevel   string        `mapstructure:"log_level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, httpadapter.DefaultBaseURL)
	v.SetDefault(KeyAPIVersion, httpadapter.DefaultAPIVersion)
	v.SetDefault(KeyPerPage, github.DefaultPerPage)
	v.SetDefault(KeyDelay, drain.DefaultDelay)
	v.SetDefault(KeyWorkers, drain.DefaultWorkers)
	v.SetDefault(KeyStopPolicy, string(drain.DefaultPolicy))
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRateLimit, 10.0)
	v.SetDefault(KeyRateBurst, 20)
	v.SetDefault(KeyLogFormat, logging.FormatText)
	v.SetDefault(KeyLogLevel, "info")
}

// DefaultPath returns $HOME/.config/stardrain/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.NewConfigurationError("", "cannot determine home directory", err)
	}
	return filepath.Join(home, ".config", "stardrain", "config.yaml"), nil
}

// ReadInto prepares v: defaults, environment and the config file at path (or
// the default location when path is empty). A missing default file is not an
// error; an explicit path that cannot be read is.
func ReadInto(v *viper.Viper, path string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		def, err := DefaultPath()
		if err != nil {
			return err
		}
		v.AddConfigPath(filepath.Dir(def))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return apperrors.NewConfigurationError("config", "failed to read config file", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("", "failed to decode configuration", err)
	}
	cfg.StopPolicy = strings.ToLower(strings.TrimSpace(cfg.StopPolicy))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigurationError("", err.Error(), err)
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = errs.Append(KeyAPIURL, fmt.Errorf("must be an absolute URL, got %q", c.APIURL))
	}
	if c.APIVersion == "" {
		errs = errs.Append(KeyAPIVersion, errors.New("is required"))
	}
	if c.PerPage < 1 || c.PerPage > github.MaxPerPage {
		errs = errs.Append(KeyPerPage, fmt.Errorf("must be between 1 and %d", github.MaxPerPage))
	}
	if c.Delay < 0 {
		errs = errs.Append(KeyDelay, errors.New("must not be negative"))
	}
	if c.Workers < 1 {
		errs = errs.Append(KeyWorkers, errors.New("must be at least 1"))
	}
	if _, err := drain.ParsePolicy(c.StopPolicy); err != nil {
		errs = errs.Append(KeyStopPolicy, err)
	}
	if c.Timeout <= 0 {
		errs = errs.Append(KeyTimeout, errors.New("must be positive"))
	}
	if c.RateLimit <= 0 {
		errs = errs.Append(KeyRateLimit, errors.New("must be positive"))
	}
	if c.RateBurst < 1 {
		errs = errs.Append(KeyRateBurst, errors.New("must be at least 1"))
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		criterio.Run(KeyLogFormat, c.LogFormat, validLogFormat),
		criterio.Run(KeyLogLevel, c.LogLevel, validLogLevel),
	)
}

func validLogFormat(format string) error {
	switch format {
	case logging.FormatText, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("must be %s or %s, got %q", logging.FormatText, logging.FormatJSON, format)
	}
}

func validLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
}

// ClientOptions returns the transport settings.
func (c *Config) ClientOptions() httpadapter.ClientOptions {
	return httpadapter.ClientOptions{
		BaseURL:           c.APIURL,
		APIVersion:        c.APIVersion,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RateLimit,
		Burst:             c.RateBurst,
	}
}

// DrainOptions returns the drain loop settings.
func (c *Config) DrainOptions() drain.Options {
	policy, _ := drain.ParsePolicy(c.StopPolicy)
	return drain.Options{
		Delay:   c.Delay,
		Workers: c.Workers,
		Policy:  policy,
	}
}

// LogLevelValue returns the configured slog level, forced to debug when verbose.
func (c *Config) LogLevelValue(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return logging.ParseLevel(c.LogLevel)
}

// view is the YAML shape of Config; durations are written as "1s".
type view struct {
	APIURL     string  `yaml:"api_url"`
	APIVersion string  `yaml:"api_version"`
	PerPage    int     `yaml:"per_page"`
	Delay      string  `yaml:"delay"`
	Workers    int     `yaml:"workers"`
	StopPolicy string  `yaml:"stop_policy"`
	Timeout    string  `yaml:"timeout"`
	RateLimit  float64 `yaml:"rate_limit"`
	RateBurst  int     `yaml:"rate_burst"`
	LogFormat  string  `yaml:"log_format"`
	LogLevel   string  `yaml:"log_level"`
}

// MarshalYAML implements yaml.Marshaler.
func (c Config) MarshalYAML() (any, error) {
	return view{
		APIURL:     c.APIURL,
		APIVersion: c.APIVersion,
		PerPage:    c.PerPage,
		Delay:      c.Delay.String(),
		Workers:    c.Workers,
		StopPolicy: c.StopPolicy,
		Timeout:    c.Timeout.String(),
		RateLimit:  c.RateLimit,
		RateBurst:  c.RateBurst,
		LogFormat:  c.LogFormat,
		LogLevel:   c.LogLevel,
	}, nil
}

// YAML renders the configuration as a config file would contain it.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
