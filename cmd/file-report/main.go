// Package main is the entry point for the file-report application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/file-report/internal/clock"
	"github.com/joe/file-report/internal/config"
	"github.com/joe/file-report/internal/eventlog"
	"github.com/joe/file-report/internal/report"
	"github.com/joe/file-report/internal/summary"
	pkgerrors "github.com/joe/file-report/pkg/errors"
	"github.com/joe/file-report/pkg/filesystem"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, clock.Real{}))
}

// run executes one invocation and returns the process exit code. Only
// command-line problems produce a non-zero code; scan failures are logged.
func run(args []string, stdout, stderr io.Writer, clk clock.Clock) int {
	defaults, err := config.LoadDefaults(".")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	cfg, err := config.Parse(args, defaults, clk, stdout, stderr)

	switch {
	case errors.Is(err, arg.ErrHelp), errors.Is(err, arg.ErrVersion):
		return 0
	case errors.Is(err, config.ErrInvalidAction):
		fmt.Fprintln(stdout, "Invalid action. Use: report.")

		return 1
	case errors.Is(err, config.ErrUsage):
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	diagnostics, err := eventlog.NewDiagnostics(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)

		diagnostics = zap.NewNop()
	}

	defer func() { _ = diagnostics.Sync() }()

	local := filesystem.NewRealFileSystem()
	events := eventlog.New(local, cfg.LogPath(), stdout, clk)

	defer events.Sync()

	source, root, closer, err := filesystem.CreateFileSystem(cfg.Directory)
	if err != nil {
		events.Event("Error: Unable to open " + cfg.Directory)
		diagnostics.Error("Failed to open scan directory", zap.String("directory", cfg.Directory), zap.Error(err))
		printSuggestions(stderr, pkgerrors.NewEnricher().Enrich(err, cfg.Directory))

		return 0
	}

	defer closer()

	gen := report.NewGenerator(cfg.ReportOptions(), source, local, events)
	gen.SetClock(clk)
	gen.SetLogger(diagnostics)

	result := gen.Generate(report.Request{Root: root, Output: cfg.Output})
	if !result.OK() {
		diagnostics.Error("Report aborted", zap.String("directory", cfg.Directory), zap.Error(result.Reason))
		printSuggestions(stderr, result.Reason)
	}

	fmt.Fprint(stderr, summary.Render(result, isTerminal(stderr)))

	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func printSuggestions(w io.Writer, err error) {
	if suggestions := pkgerrors.FormatSuggestions(err); suggestions != "" {
		fmt.Fprintf(w, "Suggestions:\n%s\n", suggestions)
	}
}
