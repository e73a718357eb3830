// Package filesystem provides an abstraction layer for filesystem operations
// so scans and report output can run against local disks, SFTP servers, or
// an in-memory tree in tests.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	krfs "github.com/kr/fs"
)

// File is a handle opened for writing.
type File interface {
	io.Writer
	io.Closer
}

// FileSystem is the set of operations the report generator and event log
// need from a filesystem.
type FileSystem interface {
	// Scan returns an iterator over every entry below root.
	Scan(root string) FileScanner

	// Create opens path for writing, truncating any existing content.
	Create(path string) (File, error)
	// OpenAppend opens path for appending, creating it if needed.
	OpenAppend(path string) (File, error)
	Join(elem ...string) string
	MkdirAll(path string, perm os.FileMode) error
	// Stat follows symlinks.
	Stat(path string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem on the local disk.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Create creates or truncates a file for writing.
func (fs *RealFileSystem) Create(path string) (File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return file, nil
}

// Join joins path elements with the OS separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// MkdirAll creates a directory and all necessary parents.
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	err := os.MkdirAll(path, perm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// OpenAppend opens a file for appending, creating it if it does not exist.
func (fs *RealFileSystem) OpenAppend(path string) (File, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:mnd // standard log file mode
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for append: %w", path, err)
	}

	return file, nil
}

// Scan returns an iterator over all entries in a directory tree. A root
// that is a symlink to a directory is scanned through the link.
func (fs *RealFileSystem) Scan(root string) FileScanner {
	start := throughLink(root, string(filepath.Separator))

	return newWalkScanner(krfs.Walk(start), root, start, localRelativePath)
}

// Stat returns file information.
func (fs *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}
