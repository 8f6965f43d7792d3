// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"concatfiles/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *logging.Logger {
	return logging.NewTestLogger()
}

// WriteFiles creates each file under dir with the given content, creating
// parent directories as needed. Names are slash separated.
func WriteFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// Chdir changes the working directory to dir and restores the previous one
// when the test finishes, mirroring testing.T.Chdir from newer Go releases.
func Chdir(t testing.TB, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("Failed to restore working directory to %s: %v", oldwd, err)
		}
	})
}
