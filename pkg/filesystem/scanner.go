package filesystem

import (
	"os"
	"time"
)

// FileScanner is an iterator over the entries of a directory tree.
type FileScanner interface {
	// Next advances to the next entry and returns its info.
	// Returns (FileInfo{}, false) when done or when the root itself failed.
	// Check Err() after Next() returns false to distinguish between end-of-scan and error.
	Next() (FileInfo, bool)

	// Err returns the error that stopped the scan, if any.
	// Failures below the root are reported per entry via FileInfo.Err instead.
	Err() error
}

// FileInfo contains metadata about a scanned entry as seen at enumeration time.
type FileInfo struct {
	// Path is the root-joined path, usable with the same FileSystem.
	Path string

	// RelativePath is the path relative to the scan root
	RelativePath string

	Size    int64
	ModTime time.Time
	Mode    os.FileMode

	// Err is set when the entry could not be read (for example an
	// unreadable subdirectory). The walk continues past it.
	Err error
}

// IsDir reports whether the entry is a directory.
func (fi FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

// IsRegular reports whether the entry is a regular file. Entries carry
// their Lstat mode, so a link to a file is not regular here; Stat the
// entry's Path to see the target.
func (fi FileInfo) IsRegular() bool {
	return fi.Err == nil && fi.Mode.IsRegular()
}
