package errors

import (
	"errors"
	"os"
	"strings"
	"syscall"
)

// Matcher assigns a category to an error.
type Matcher interface {
	Match(err error) ErrorCategory
}

// NewMatcher creates a Matcher that checks well-known sentinel errors first
// and falls back to message patterns for errors that lost their type (for
// example ones coming back over SFTP or SSH).
func NewMatcher() Matcher {
	return &matcher{
		sentinels: []sentinelCategory{
			{os.ErrPermission, CategoryPermission},
			{os.ErrNotExist, CategoryPath},
			{syscall.ENOSPC, CategoryDiskSpace},
			{syscall.EROFS, CategoryWrite},
			{syscall.EIO, CategoryWrite},
			{syscall.ECONNREFUSED, CategoryConnection},
		},
		patterns: []patternCategory{
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryDiskSpace, []string{
				"no space left on device",
				"disk full",
				"quota exceeded",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file does not exist",
				"not a directory",
				"does not exist",
			}},
			{CategoryWrite, []string{
				"short write",
				"read-only file system",
				"input/output error",
				"i/o error",
			}},
			{CategoryConnection, []string{
				"connection refused",
				"no route to host",
				"unable to authenticate",
				"handshake failed",
				"knownhosts: key mismatch",
				"no ssh authentication methods",
			}},
		},
	}
}

type sentinelCategory struct {
	target   error
	category ErrorCategory
}

type patternCategory struct {
	category ErrorCategory
	patterns []string
}

// matcher is the concrete implementation of Matcher.
type matcher struct {
	sentinels []sentinelCategory
	patterns  []patternCategory
}

// Match returns the category for err. Patterns are checked in declaration
// order so the result does not depend on map iteration.
func (m *matcher) Match(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	for _, sentinel := range m.sentinels {
		if errors.Is(err, sentinel.target) {
			return sentinel.category
		}
	}

	return m.MatchMessage(err.Error())
}

// MatchMessage categorizes a bare error message.
func (m *matcher) MatchMessage(msg string) ErrorCategory {
	lowerMsg := strings.ToLower(msg)

	for _, group := range m.patterns {
		for _, pattern := range group.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return group.category
			}
		}
	}

	return CategoryUnknown
}
