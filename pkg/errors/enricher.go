package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with the default matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

//nolint:gochecknoglobals // Compiled once, shared by all enrichers
var pathExtractionPatterns = []*regexp.Regexp{
	// Unix/Linux paths (absolute and relative)
	regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
	// Windows paths with backslashes
	regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
	// Windows paths with forward slashes
	regexp.MustCompile(`\b\w+\s+([A-Za-z]:/[^\s:]+):`),
}

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   Matcher
	generator SuggestionGenerator
}

// Enrich wraps err with a category and suggestions. Errors that are already
// actionable, and nil, are returned unchanged. If affectedPath is empty a
// path is pulled from the message when one can be found.
func (e *enricher) Enrich(err error, affectedPath string) error {
	if err == nil {
		return nil
	}

	if _, ok := asActionable(err); ok {
		return err
	}

	if affectedPath == "" {
		affectedPath = extractPath(err.Error())
	}

	category := e.matcher.Match(err)

	return NewActionableError(
		err,
		category,
		e.generator.Generate(category, affectedPath),
		affectedPath,
	)
}

func asActionable(err error) (ActionableError, bool) {
	var actionable ActionableError
	if err == nil || !errors.As(err, &actionable) {
		return nil, false
	}

	return actionable, true
}

// extractPath pulls a path out of Go's "op /path: reason" error format, e.g.
// "open /home/user/file.txt: permission denied". Returns "" if none is found.
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			if path := strings.TrimSpace(matches[1]); path != "" {
				return path
			}
		}
	}

	return ""
}
