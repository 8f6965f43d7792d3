package domain

import (
	"io"
	"os"
)

// WritableFile is an output file opened for writing.
type WritableFile interface {
	io.Writer
	Sync() error
	Close() error
}

// FileSystemAdapter defines the interface for file operations.
type FileSystemAdapter interface {
	Open(path string) (io.ReadCloser, error)
	Create(path string) (WritableFile, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (os.FileInfo, error)
}
