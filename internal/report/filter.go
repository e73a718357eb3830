package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFilter decides which scanned files get a report row.
type FileFilter interface {
	// ShouldInclude reports whether the file at relativePath belongs in the report.
	ShouldInclude(relativePath string) bool
}

// GlobFilter matches root-relative paths against a doublestar pattern,
// ignoring case. An empty pattern matches everything.
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewGlobFilter creates a GlobFilter for pattern.
func NewGlobFilter(pattern string) *GlobFilter {
	return &GlobFilter{
		normalizedPattern: strings.ToLower(pattern),
		isEmpty:           pattern == "",
	}
}

// ValidatePattern returns an error if pattern is not a valid glob.
func ValidatePattern(pattern string) error {
	if pattern == "" || doublestar.ValidatePattern(pattern) {
		return nil
	}

	return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
}

// ShouldInclude matches relativePath with OS separators converted to slashes.
func (f *GlobFilter) ShouldInclude(relativePath string) bool {
	if f.isEmpty {
		return true
	}

	normalizedPath := strings.ToLower(filepath.ToSlash(relativePath))

	matched, err := doublestar.Match(f.normalizedPattern, normalizedPath)
	if err != nil {
		return false
	}

	return matched
}
