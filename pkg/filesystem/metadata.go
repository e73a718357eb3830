package filesystem

import (
	"fmt"
	"time"
)

// CivilTimeLayout is the second-precision local timestamp used in reports.
const CivilTimeLayout = "2006-01-02 15:04:05"

// Metadata is the subset of file information a report row needs.
type Metadata struct {
	Size    uint64
	ModTime time.Time
}

// Modified returns ModTime in local civil time.
func (m Metadata) Modified() string {
	return FormatCivil(m.ModTime)
}

// Lookup stats path (following symlinks) and returns its metadata.
func Lookup(fsys FileSystem, path string) (Metadata, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata for %s: %w", path, err)
	}

	return Metadata{
		Size:    clampSize(info.Size()),
		ModTime: info.ModTime(),
	}, nil
}

// FileSize returns the size of path in bytes, or 0 if it cannot be stat'ed.
// A file that vanished between enumeration and this call is not an error.
func FileSize(fsys FileSystem, path string) uint64 {
	meta, err := Lookup(fsys, path)
	if err != nil {
		return 0
	}

	return meta.Size
}

// LastModified returns the modification time of path in local civil time.
// ok is false when the file cannot be stat'ed.
func LastModified(fsys FileSystem, path string) (string, bool) {
	meta, err := Lookup(fsys, path)
	if err != nil {
		return "", false
	}

	return meta.Modified(), true
}

// FormatCivil renders t in the local zone as YYYY-MM-DD HH:MM:SS.
// time.Time already carries wall-clock seconds, so whatever clock the
// filesystem stamps with has been converted by the time it gets here.
func FormatCivil(t time.Time) string {
	return t.Local().Format(CivilTimeLayout)
}

func clampSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
