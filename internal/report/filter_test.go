//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, etc.)
package report_test

import (
	"errors"
	"testing"

	"github.com/joe/file-report/internal/report"
)

func TestGlobFilterInvalidPattern(t *testing.T) {
	t.Parallel()

	if report.NewGlobFilter("[invalid").ShouldInclude("test.txt") {
		t.Error("Invalid pattern should not match files")
	}
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"", "*.log", "**/*.{txt,csv}", "data/[0-9]*.bin"} {
		if err := report.ValidatePattern(pattern); err != nil {
			t.Errorf("ValidatePattern(%q) = %v, want nil", pattern, err)
		}
	}

	err := report.ValidatePattern("[invalid")
	if !errors.Is(err, report.ErrInvalidPattern) {
		t.Errorf("ValidatePattern(\"[invalid\") = %v, want ErrInvalidPattern", err)
	}
}

//nolint:funlen // Table-driven test cases
func TestGlobFilterShouldInclude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		pattern     string
		path        string
		shouldMatch bool
	}{
		{name: "empty pattern matches all", pattern: "", path: "any/file.txt", shouldMatch: true},
		{name: "extension match", pattern: "*.log", path: "app.log", shouldMatch: true},
		{name: "extension no match", pattern: "*.log", path: "app.txt", shouldMatch: false},
		{name: "uppercase pattern", pattern: "*.LOG", path: "app.log", shouldMatch: true},
		{name: "uppercase path", pattern: "*.log", path: "APP.LOG", shouldMatch: true},
		{name: "mixed case", pattern: "*.LoG", path: "aPp.lOg", shouldMatch: true},
		{name: "recursive nested", pattern: "**/*.log", path: "var/app/today.log", shouldMatch: true},
		{name: "recursive top level", pattern: "**/*.log", path: "today.log", shouldMatch: true},
		{name: "single star stays in one directory", pattern: "*.log", path: "var/today.log", shouldMatch: false},
		{name: "directory prefix", pattern: "archive/**/summary.csv", path: "archive/2023/december/summary.csv", shouldMatch: true},
		{name: "alternation first", pattern: "*.{csv,txt}", path: "data.csv", shouldMatch: true},
		{name: "alternation second", pattern: "*.{csv,txt}", path: "notes.txt", shouldMatch: true},
		{name: "alternation miss", pattern: "*.{csv,txt}", path: "image.png", shouldMatch: false},
		{name: "directory anchored", pattern: "archive/*.csv", path: "archive/q1.csv", shouldMatch: true},
		{name: "other directory", pattern: "archive/*.csv", path: "current/q1.csv", shouldMatch: false},
		{name: "too deep for single star", pattern: "archive/*.csv", path: "archive/2023/q1.csv", shouldMatch: false},
		{name: "question mark", pattern: "file?.txt", path: "file1.txt", shouldMatch: true},
		{name: "question mark one char only", pattern: "file?.txt", path: "file12.txt", shouldMatch: false},
		{name: "character class", pattern: "file[0-9].txt", path: "file5.txt", shouldMatch: true},
		{name: "character class miss", pattern: "file[0-9].txt", path: "filea.txt", shouldMatch: false},
		{name: "very deep", pattern: "**/*.bin", path: "a/b/c/d/e/f/g/blob.bin", shouldMatch: true},
		{name: "empty path", pattern: "*.log", path: "", shouldMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := report.NewGlobFilter(tt.pattern).ShouldInclude(tt.path); got != tt.shouldMatch {
				t.Errorf("NewGlobFilter(%q).ShouldInclude(%q) = %v, want %v",
					tt.pattern, tt.path, got, tt.shouldMatch)
			}
		})
	}
}
