package app

import (
	"context"

	"github.com/google/uuid"

	"concatfiles/internal/adapters/filesystem"
	"concatfiles/internal/concat"
	"concatfiles/internal/config"
	"concatfiles/internal/display"
	"concatfiles/internal/errors"
	"concatfiles/internal/filelock"
	"concatfiles/internal/logging"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.NewValidationError(
			"log_format",
			cfg.LogFormat,
			"supported_values",
			"log format must be one of: text, json",
		)
	}

	// Create logger. Every record of this run carries the same run id.
	runID := uuid.New().String()
	logger := logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.Stderr,
	}).WithRun(runID)

	// Create filesystem adapter.
	fs := filesystem.New()

	concatenator := concat.New(fs, logger, concat.WithLocker(filelock.NewLocker()))

	logger.DebugContext(ctx, "Initializing concatfiles",
		"logLevel", string(cfg.LogLevel),
		"logFormat", cfg.LogFormat,
		"verbose", cfg.Verbose)

	return &App{
		Concatenator: concatenator,
		ConfigLoader: config.NewLoader(fs),
		FileSystem:   fs,
		Printer:      display.NewPrinter(cfg.Stdout),
		Logger:       logger,
		RunID:        runID,
		Config:       cfg,
	}, nil
}
