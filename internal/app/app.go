package app

import (
	"context"
	"io"
	"os"

	"concatfiles/internal/domain"
	"concatfiles/internal/logging"
)

// App contains all application dependencies.
type App struct {
	// Core dependencies
	Concatenator domain.Concatenator
	ConfigLoader domain.ConfigLoader

	// File operations (needed by config validation and the concatenator)
	FileSystem domain.FileSystemAdapter

	// Console output
	Printer domain.SummaryPrinter

	// Logging
	Logger *logging.Logger
	RunID  string

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel  logging.LogLevel
	LogFormat string
	Verbose   bool
	Stdout    io.Writer
	Stderr    io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = logging.LevelDebug
		}
	}
}

// WithLogFormat selects the log handler, "text" or "json".
func WithLogFormat(format string) Option {
	return func(cfg *Config) {
		if format != "" {
			cfg.LogFormat = format
		}
	}
}

// WithOutput redirects the summary and log streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(cfg *Config) {
		cfg.Stdout = stdout
		cfg.Stderr = stderr
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	defaults := logging.DefaultConfig()
	cfg := &Config{
		LogLevel:  defaults.Level,
		LogFormat: defaults.Format,
		Verbose:   false,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	return NewAppWithConfig(ctx, cfg)
}
