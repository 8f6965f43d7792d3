// Package concat writes an ordered list of text files into a single output
// file, each preceded by a "--- <path> ---" separator record.
package concat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"concatfiles/internal/domain"
	"concatfiles/internal/errors"
	"concatfiles/internal/logging"
)

// RecordHeader returns the separator line emitted before the content of path,
// including the blank line that follows it.
func RecordHeader(path string) string {
	return fmt.Sprintf("--- %s ---\n\n", path)
}

// RecordTrailer terminates every record.
const RecordTrailer = "\n\n"

// Record returns the full record emitted for path with the given content.
func Record(path, content string) string {
	return RecordHeader(path) + content + RecordTrailer
}

// Concatenator implements domain.Concatenator on top of a FileSystemAdapter.
type Concatenator struct {
	fs     domain.FileSystemAdapter
	locker domain.OutputLocker
	logger *logging.Logger
}

// Option configures a Concatenator.
type Option func(*Concatenator)

// WithLocker sets the locker used when Config.Lock is set.
func WithLocker(locker domain.OutputLocker) Option {
	return func(c *Concatenator) {
		c.locker = locker
	}
}

// New creates a new Concatenator.
func New(fs domain.FileSystemAdapter, logger *logging.Logger, opts ...Option) *Concatenator {
	c := &Concatenator{
		fs:     fs,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Concatenate writes every input of cfg into cfg.OutputPath. The output is
// truncated first, flushed and synced before returning, and left partially
// written if any step fails.
func (c *Concatenator) Concatenate(ctx context.Context, cfg domain.Config) (domain.Result, error) {
	logger := c.logger.WithOperation("concatenate")
	logger.DebugContext(ctx, "Starting concatenation",
		"output_path", cfg.OutputPath,
		"inputs", len(cfg.InputPaths))

	if cfg.Lock {
		if c.locker == nil {
			return domain.Result{}, errors.NewConfigurationError("lock", "true", "no output locker configured", nil)
		}
		release, lockErr := c.locker.TryLock(cfg.OutputPath)
		if lockErr != nil {
			return domain.Result{}, lockErr
		}
		defer func() {
			if unlockErr := release(); unlockErr != nil {
				logger.WarnContext(ctx, "Failed to release output lock", "error", unlockErr)
			}
		}()
	}

	out, err := c.fs.Create(cfg.OutputPath)
	if err != nil {
		return domain.Result{}, errors.NewFileAccessError(cfg.OutputPath, "create", err)
	}
	w := bufio.NewWriter(out)
	closed := false
	defer func() {
		if !closed {
			// Keep whatever was produced before the failure.
			_ = w.Flush()
			_ = out.Close()
		}
	}()

	result := domain.Result{OutputPath: cfg.OutputPath}

	for i, path := range cfg.InputPaths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		n, err := c.appendFile(ctx, w, cfg.OutputPath, path, logger.WithFile(path, i))
		result.Bytes += n
		if err != nil {
			logger.ErrorContext(ctx, "Concatenation aborted", "input_path", path, "error", err)
			return result, err
		}
		result.Files++
	}

	closed = true
	if err := finalize(cfg.OutputPath, w, out); err != nil {
		logger.ErrorContext(ctx, "Failed to finalize output", "error", err)
		return result, err
	}

	logger.InfoContext(ctx, "Concatenation completed",
		"output_path", cfg.OutputPath,
		"files", result.Files,
		"bytes", result.Bytes)
	return result, nil
}

// finalize flushes w, syncs and closes out. The file is closed even when the
// flush or sync fails.
func finalize(path string, w *bufio.Writer, out domain.WritableFile) error {
	var flushErr, syncErr, closeErr error
	if err := w.Flush(); err != nil {
		flushErr = errors.NewIOError(path, "flush", err)
	} else if err := out.Sync(); err != nil {
		syncErr = errors.NewIOError(path, "sync", err)
	}
	if err := out.Close(); err != nil {
		closeErr = errors.NewIOError(path, "close", err)
	}
	return errors.Join(flushErr, syncErr, closeErr)
}

func (c *Concatenator) appendFile(
	ctx context.Context,
	w io.Writer,
	outputPath, path string,
	logger *logging.Logger,
) (int64, error) {
	var written int64
	write := func(chunk []byte) error {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return errors.NewIOError(outputPath, "write", err)
		}
		return nil
	}

	if err := write([]byte(RecordHeader(path))); err != nil {
		return written, err
	}

	content, err := c.readInput(path)
	if err != nil {
		return written, err
	}
	logger.DebugContext(ctx, "Appending file", slog.Int("size", len(content)))

	if err := write(content); err != nil {
		return written, err
	}
	err = write([]byte(RecordTrailer))
	return written, err
}

func (c *Concatenator) readInput(path string) ([]byte, error) {
	in, err := c.fs.Open(path)
	if err != nil {
		return nil, errors.NewFileAccessError(path, "open", err)
	}
	defer in.Close()

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.NewIOError(path, "read", err)
	}
	if !utf8.Valid(content) {
		return nil, errors.NewIOError(path, "decode", fmt.Errorf("content is not valid UTF-8"))
	}
	return content, nil
}
