package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"concatfiles/internal/domain"
	"concatfiles/internal/errors"
)

// Environment variables recognised by concatfiles.
const (
	EnvOutputFile = "OUTPUT_FILE"
	EnvInputFiles = "INPUT_FILES"
	EnvLock       = "CONCATFILES_LOCK"
	EnvLogFormat  = "CONCATFILES_LOG_FORMAT"
)

// Viper keys.
const (
	KeyOutput    = "output"
	KeyInputs    = "inputs"
	KeyLock      = "lock"
	KeyLogFormat = "log_format"
)

// Defaults used when neither flags, environment nor a config file say otherwise.
const (
	DefaultOutputPath = "output.py"
	DefaultInputFiles = "input.py"
	DefaultLogFormat  = "text"
)

// InputSeparator delimits paths in INPUT_FILES and --inputs. There is no
// escaping, so a path cannot contain it.
const InputSeparator = ","

// ParseInputList splits a delimited input list. Paths are kept exactly as
// given: nothing is trimmed and empty entries are preserved.
func ParseInputList(s string) []string {
	return strings.Split(s, InputSeparator)
}

// Loader reads YAML configuration files.
type Loader struct {
	fs domain.FileSystemAdapter
}

// NewLoader creates a new configuration loader.
func NewLoader(fs domain.FileSystemAdapter) *Loader {
	return &Loader{
		fs: fs,
	}
}

// LoadFile loads the configuration file at path. An empty file yields a zero
// Config.
func (l *Loader) LoadFile(path string) (domain.Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return domain.Config{}, errors.NewConfigurationError("config_path", path, "failed to read config file", err)
	}

	if len(data) == 0 {
		return domain.Config{}, nil
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, errors.NewConfigurationError("config_format", "yaml", "failed to unmarshal config", err)
	}

	return cfg, nil
}

// BindEnv registers defaults and environment bindings on v. Values from file
// take the place of the built-in defaults.
func BindEnv(v *viper.Viper, file domain.Config) error {
	// A variable that is set but empty still counts, so INPUT_FILES="" means
	// a single empty path rather than the default.
	v.AllowEmptyEnv(true)

	output := DefaultOutputPath
	if file.OutputPath != "" {
		output = file.OutputPath
	}
	v.SetDefault(KeyOutput, output)

	if len(file.InputPaths) > 0 {
		v.SetDefault(KeyInputs, file.InputPaths)
	} else {
		v.SetDefault(KeyInputs, DefaultInputFiles)
	}

	v.SetDefault(KeyLock, file.Lock)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)

	bindings := map[string]string{
		KeyOutput:    EnvOutputFile,
		KeyInputs:    EnvInputFiles,
		KeyLock:      EnvLock,
		KeyLogFormat: EnvLogFormat,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return errors.NewConfigurationError(key, env, "failed to bind environment variable", err)
		}
	}
	return nil
}

// Resolve builds the run configuration from v. Non-empty args replace the
// configured input list and are used verbatim.
func Resolve(v *viper.Viper, args []string) (domain.Config, error) {
	cfg := domain.Config{
		OutputPath: v.GetString(KeyOutput),
		Lock:       v.GetBool(KeyLock),
	}

	if len(args) > 0 {
		cfg.InputPaths = append([]string(nil), args...)
		return cfg, nil
	}

	inputs, err := inputList(v.Get(KeyInputs))
	if err != nil {
		return domain.Config{}, err
	}
	cfg.InputPaths = inputs
	return cfg, nil
}

func inputList(value any) ([]string, error) {
	switch val := value.(type) {
	case string:
		return ParseInputList(val), nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		paths := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, errors.NewConfigurationError(KeyInputs, fmt.Sprint(item), "input paths must be strings", nil)
			}
			paths = append(paths, s)
		}
		return paths, nil
	default:
		return nil, errors.NewConfigurationError(KeyInputs, fmt.Sprint(value), "unsupported input list", nil)
	}
}

// Validate checks cfg before anything is written. It rejects an empty input
// list and an output path that refers to one of the inputs, since the output
// is truncated before the inputs are read.
func Validate(cfg domain.Config, fs domain.FileSystemAdapter) error {
	if len(cfg.InputPaths) == 0 {
		return errors.NewValidationError(KeyInputs, "", "non_empty", "at least one input file is required")
	}

	outputAbs, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return errors.NewValidationError(KeyOutput, cfg.OutputPath, "path", fmt.Sprintf("invalid output path: %v", err))
	}
	outputInfo, outputStatErr := fs.Stat(cfg.OutputPath)

	for _, input := range cfg.InputPaths {
		if sameFile(outputAbs, outputInfo, outputStatErr, input, fs) {
			return errors.NewValidationError(
				KeyOutput,
				cfg.OutputPath,
				"distinct",
				fmt.Sprintf("output path is also input '%s'", input),
			)
		}
	}
	return nil
}

func sameFile(outputAbs string, outputInfo os.FileInfo, outputStatErr error, input string, fs domain.FileSystemAdapter) bool {
	if inputAbs, err := filepath.Abs(input); err == nil && inputAbs == outputAbs {
		return true
	}
	if outputStatErr != nil {
		return false
	}
	inputInfo, err := fs.Stat(input)
	if err != nil {
		return false
	}
	return os.SameFile(outputInfo, inputInfo)
}
