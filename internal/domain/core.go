package domain

import "context"

// Concatenator writes the contents of every input file, each preceded by a
// separator record, into a single output file.
type Concatenator interface {
	// Concatenate processes cfg.InputPaths in order. On failure the output is
	// left as written so far.
	Concatenate(ctx context.Context, cfg Config) (Result, error)
}

// Result summarises a successful run.
type Result struct {
	OutputPath string
	Files      int
	Bytes      int64
}

// OutputLocker guards the output path against concurrent writers.
type OutputLocker interface {
	// TryLock returns a release func, or an error if the lock is held elsewhere.
	TryLock(path string) (func() error, error)
}

// SummaryPrinter reports a successful run to the user.
type SummaryPrinter interface {
	Summary(result Result) error
}
