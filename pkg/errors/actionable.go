// Package errors turns scan and report failures into errors that carry a
// category and suggestions the user can act on.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	file, err := os.Create("/readonly/report.txt")
//	if err != nil {
//	    enriched := enricher.Enrich(err, "/readonly/report.txt")
//	    fmt.Println(enriched)
//	    fmt.Println(errors.FormatSuggestions(enriched))
//	}
//
// Enriched errors unwrap to the original, so errors.Is and errors.As keep
// working on sentinel errors further down the chain.
package errors

import "strings"

// Exported constants.
const (
	CategoryConnection ErrorCategory = "connection"
	CategoryDiskSpace  ErrorCategory = "disk_space"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryUnknown    ErrorCategory = "unknown"
	CategoryWrite      ErrorCategory = "write"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	Unwrap() error
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError wraps cause with a category and suggestions.
func NewActionableError(
	cause error,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		cause:        cause,
		category:     category,
		suggestions:  suggestions,
		affectedPath: affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions carried by err as an indented
// bulleted list. Returns empty string if err carries none.
func FormatSuggestions(err error) string {
	actionable, ok := asActionable(err)
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder

	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	cause        error
	category     ErrorCategory
	suggestions  []string
	affectedPath string
}

// AffectedPath returns the file path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	if e.cause == nil {
		return string(e.category) + " error"
	}

	return e.cause.Error()
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the wrapped error.
func (e *actionableError) Unwrap() error {
	return e.cause
}
