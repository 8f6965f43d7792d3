package domain

// Config is the resolved input of a single concatenation run.
type Config struct {
	// OutputPath is created or truncated at the start of the run.
	OutputPath string `yaml:"output"`
	// InputPaths are concatenated in order, each used exactly as given.
	InputPaths []string `yaml:"inputs"`
	// Lock takes an exclusive advisory lock on OutputPath for the run.
	Lock bool `yaml:"lock"`
}

// ConfigLoader reads an optional configuration file.
type ConfigLoader interface {
	LoadFile(path string) (Config, error)
}
