// Package filelock provides an exclusive advisory lock on the output file so
// two concatenation runs cannot interleave writes into the same destination.
package filelock

import (
	"fmt"

	"github.com/gofrs/flock"

	"concatfiles/internal/errors"
)

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The file is created if it does not exist yet.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held elsewhere.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Path returns the locked path.
func (fl *FileLock) Path() string {
	return fl.path
}

// Locker implements domain.OutputLocker with flock.
type Locker struct{}

// NewLocker creates a new output locker.
func NewLocker() *Locker {
	return &Locker{}
}

// TryLock locks path without blocking. The returned func releases the lock.
func (l *Locker) TryLock(path string) (func() error, error) {
	lock := NewFileLock(path)
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, errors.NewFileAccessError(path, "lock", err)
	}
	if !acquired {
		return nil, errors.NewFileAccessError(path, "lock", fmt.Errorf("held by another process"))
	}
	return lock.Unlock, nil
}
