package commands

import (
	"context"

	"github.com/spf13/viper"

	"concatfiles/internal/config"
	"concatfiles/internal/domain"
	"concatfiles/internal/logging"
)

// ConcatCommand resolves the run configuration and performs one concatenation.
type ConcatCommand struct {
	loader       domain.ConfigLoader
	fs           domain.FileSystemAdapter
	concatenator domain.Concatenator
	printer      domain.SummaryPrinter
	logger       *logging.Logger
}

// NewConcatCommand creates a new concat command.
func NewConcatCommand(
	loader domain.ConfigLoader,
	fs domain.FileSystemAdapter,
	concatenator domain.Concatenator,
	printer domain.SummaryPrinter,
	logger *logging.Logger,
) *ConcatCommand {
	return &ConcatCommand{
		loader:       loader,
		fs:           fs,
		concatenator: concatenator,
		printer:      printer,
		logger:       logger,
	}
}

// ConcatRequest contains the parameters for the concat command.
type ConcatRequest struct {
	// Settings carries flag and environment bindings; see config.BindEnv.
	Settings *viper.Viper
	// ConfigFile is an optional YAML file whose values replace the defaults.
	ConfigFile string
	// Args, when non-empty, is the input list verbatim.
	Args []string
}

// Execute runs the concat command. The summary is printed only on success.
func (c *ConcatCommand) Execute(ctx context.Context, req ConcatRequest) (domain.Result, error) {
	logger := c.logger.WithOperation("run")

	file := domain.Config{}
	if req.ConfigFile != "" {
		var err error
		file, err = c.loader.LoadFile(req.ConfigFile)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to load config file", "path", req.ConfigFile, "error", err)
			return domain.Result{}, err
		}
		logger.DebugContext(ctx, "Using config file", "path", req.ConfigFile)
	}

	if err := config.BindEnv(req.Settings, file); err != nil {
		return domain.Result{}, err
	}

	cfg, err := config.Resolve(req.Settings, req.Args)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to resolve configuration", "error", err)
		return domain.Result{}, err
	}
	if err := config.Validate(cfg, c.fs); err != nil {
		logger.ErrorContext(ctx, "Invalid configuration", "error", err)
		return domain.Result{}, err
	}

	result, err := c.concatenator.Concatenate(ctx, cfg)
	if err != nil {
		return result, err
	}

	if err := c.printer.Summary(result); err != nil {
		return result, err
	}
	return result, nil
}
