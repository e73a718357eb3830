package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.permission(affectedPath)
	case CategoryDiskSpace:
		return g.diskSpace(affectedPath)
	case CategoryPath:
		return g.path(affectedPath)
	case CategoryWrite:
		return g.write(affectedPath)
	case CategoryConnection:
		return g.connection()
	case CategoryUnknown:
		return g.unknown(affectedPath)
	default:
		return g.unknown(affectedPath)
	}
}

func (g *suggestionGenerator) connection() []string {
	return []string{
		"Check that the host is reachable and the SSH port is open",
		"Make sure your key is loaded in ssh-agent or stored as ~/.ssh/id_ed25519, id_rsa or id_ecdsa",
		"If the host key changed, update ~/.ssh/known_hosts",
	}
}

func (g *suggestionGenerator) diskSpace(path string) []string {
	suggestions := []string{
		"Free up space on the device holding the report folder",
		"Check available space with 'df -h'",
	}

	if path != "" {
		suggestions = append(suggestions, "Write the report somewhere else with --output-dir instead of "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) path(path string) []string {
	if path == "" {
		return []string{
			"Verify the path exists and is spelled correctly",
			"Use --create-missing to create a missing scan directory",
		}
	}

	return []string{
		"Verify the path exists and is spelled correctly: " + path,
		"Ensure all parent directories exist for " + path,
		"Use --create-missing to create a missing scan directory",
	}
}

func (g *suggestionGenerator) permission(path string) []string {
	suggestions := []string{
		"Ensure you can read the scanned directories and write the report folder",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -la' on the affected path")
	}

	return append(suggestions, "Point --output-dir at a folder you own")
}

func (g *suggestionGenerator) unknown(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run again with --verbose for per-file diagnostics",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) write(path string) []string {
	suggestions := []string{
		"Check whether the filesystem is mounted read-only",
		"Try the scan again; this may be a transient I/O error",
	}

	if path != "" {
		suggestions = append(suggestions, "Check the device holding "+path+" for hardware errors")
	}

	return suggestions
}
