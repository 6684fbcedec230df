package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider is the set of file operations a join needs
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadDir reads the directory entries at the given path, sorted by name
	ReadDir(path string) ([]FileInfo, error)

	// Create creates or truncates the file at path.
	// The parent directory must already exist.
	Create(path string) (io.WriteCloser, error)

	// Rename moves oldPath to newPath, replacing newPath if it exists
	Rename(oldPath, newPath string) error

	// Remove deletes the file at path
	Remove(path string) error
}
