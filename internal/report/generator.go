// Package report walks a directory tree and writes a fixed-width listing of
// every regular file with its size and modification time.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/joe/file-report/internal/clock"
	pkgerrors "github.com/joe/file-report/pkg/errors"
	"github.com/joe/file-report/pkg/filesystem"
)

// Column widths of the report table.
const (
	PathColumnWidth     = 50
	SizeColumnWidth     = 15
	ModifiedColumnWidth = 25
)

// Separator is the line between the generation timestamp and the column header.
var Separator = strings.Repeat("-", PathColumnWidth+SizeColumnWidth+ModifiedColumnWidth) //nolint:gochecknoglobals // derived constant

const dirPerm = 0o755

// EventLogger receives the run events that end up in the integrity log.
type EventLogger interface {
	Event(message string)
}

// Options holds the output location and scan behavior for a Generator.
type Options struct {
	// OutputDir is created on demand; reports are written inside it.
	OutputDir string
	// Pattern limits rows to files whose root-relative path matches.
	Pattern string
	// Relative prints root-relative paths instead of root-joined ones.
	Relative bool
	// CreateMissing creates a missing root and reports it as empty
	// instead of aborting.
	CreateMissing bool
}

// Request names the tree to scan and the report file name.
type Request struct {
	Root   string
	Output string
}

// Generator produces reports.
type Generator struct {
	opts     Options
	source   filesystem.FileSystem
	output   filesystem.FileSystem
	events   EventLogger
	filter   FileFilter
	logger   *zap.Logger
	clock    clock.Clock
	enricher pkgerrors.Enricher
}

// NewGenerator creates a Generator that scans source and writes to output.
// The two may be the same filesystem.
func NewGenerator(opts Options, source, output filesystem.FileSystem, events EventLogger) *Generator {
	return &Generator{
		opts:     opts,
		source:   source,
		output:   output,
		events:   events,
		filter:   NewGlobFilter(opts.Pattern),
		logger:   zap.NewNop(),
		clock:    clock.Real{},
		enricher: pkgerrors.NewEnricher(),
	}
}

// SetClock sets the time source for the header and durations.
func (g *Generator) SetClock(clk clock.Clock) {
	g.clock = clk
}

// SetLogger sets the diagnostics logger for per-file details.
func (g *Generator) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g.logger = logger
}

// Generate scans req.Root and writes the report. Failures never escape as
// errors: they are logged as events and described by the Result.
func (g *Generator) Generate(req Request) Result {
	start := g.clock.Now()
	result := g.generate(req)
	result.Duration = g.clock.Now().Sub(start)

	return result
}

func (g *Generator) generate(req Request) Result {
	if g.opts.OutputDir != "" {
		if err := g.output.MkdirAll(g.opts.OutputDir, dirPerm); err != nil {
			g.logger.Warn("Failed to create output directory",
				zap.String("dir", g.opts.OutputDir), zap.Error(err))
		}
	}

	reportPath := g.output.Join(g.opts.OutputDir, req.Output)

	if aborted, ok := g.checkRoot(req.Root, reportPath); !ok {
		return aborted
	}

	// Listing the root happens before the report is created, so a root that
	// can be stat'ed but not read leaves no header-only report behind.
	entries := g.source.Scan(req.Root)

	first, more := entries.Next()
	if !more && entries.Err() != nil {
		g.events.Event("Error: Unable to read " + req.Root)

		return g.abort(reportPath, fmt.Errorf("%w: %w", ErrRootInaccessible, entries.Err()), req.Root)
	}

	file, err := g.output.Create(reportPath)
	if err != nil {
		g.events.Event("Error: Unable to create " + reportPath)

		return g.abort(reportPath, fmt.Errorf("%w: %w", ErrOutputUnwritable, err), reportPath)
	}

	counts, err := g.writeReport(file, req.Root, &primedScanner{FileScanner: entries, first: first, pending: more})
	if err != nil {
		g.events.Event("Error: Unable to write " + reportPath)

		return g.abort(reportPath, fmt.Errorf("%w: %w", ErrOutputUnwritable, err), reportPath)
	}

	g.events.Event("File report generated in " + reportPath)

	status := StatusOK
	if counts.skipped > 0 {
		status = StatusPartial
	}

	return Result{
		Status:     status,
		ReportPath: reportPath,
		Files:      counts.files,
		Bytes:      counts.bytes,
		Skipped:    counts.skipped,
	}
}

func (g *Generator) abort(reportPath string, reason error, affectedPath string) Result {
	return Result{
		Status:     StatusAborted,
		ReportPath: reportPath,
		Reason:     g.enricher.Enrich(reason, affectedPath),
	}
}

// checkRoot returns ok=false with an aborted Result when the root cannot be
// scanned. With CreateMissing a missing root is created instead.
func (g *Generator) checkRoot(root, reportPath string) (Result, bool) {
	info, err := g.source.Stat(root)

	switch {
	case err == nil && info.IsDir():
		return Result{}, true
	case err == nil:
		g.events.Event("Error: " + root + " is not a directory.")

		return g.abort(reportPath, fmt.Errorf("%w: %s", ErrRootNotDirectory, root), root), false
	case !errors.Is(err, os.ErrNotExist):
		g.events.Event("Error: Unable to read " + root)

		return g.abort(reportPath, fmt.Errorf("%w: %w", ErrRootInaccessible, err), root), false
	case !g.opts.CreateMissing:
		g.events.Event("Directory " + root + " does not exist.")

		return g.abort(reportPath, fmt.Errorf("%w: %w", ErrRootMissing, err), root), false
	}

	if mkErr := g.source.MkdirAll(root, dirPerm); mkErr != nil {
		g.events.Event("Error: Unable to create directory " + root)

		return g.abort(reportPath, fmt.Errorf("%w: %w", ErrRootMissing, mkErr), root), false
	}

	g.events.Event("Directory " + root + " did not exist and was created.")

	return Result{}, true
}

type tally struct {
	files   int
	bytes   uint64
	skipped int
}

// writeReport always closes file. A close failure is reported when nothing
// else went wrong first.
func (g *Generator) writeReport(file filesystem.File, root string, scanner filesystem.FileScanner) (counts tally, err error) {
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "Report generated on: %s\n", filesystem.FormatCivil(g.clock.Now()))
	fmt.Fprintln(w, Separator)
	writeRow(w, "File Path", "Size (bytes)", "Last Modified")

	for entry, ok := scanner.Next(); ok; entry, ok = scanner.Next() {
		if entry.Err != nil {
			counts.skipped++

			g.logger.Warn("Skipping unreadable entry",
				zap.String("path", entry.Path), zap.Error(entry.Err))

			continue
		}

		if !g.filter.ShouldInclude(entry.RelativePath) || !g.isRegularFile(entry) {
			continue
		}

		size := filesystem.FileSize(g.source, entry.Path)

		modified, found := filesystem.LastModified(g.source, entry.Path)
		if !found {
			counts.skipped++
			modified = filesystem.FormatCivil(entry.ModTime)

			g.logger.Warn("File vanished before stat, reporting size 0", zap.String("path", entry.Path))
		}

		writeRow(w, g.displayPath(entry), strconv.FormatUint(size, 10), modified)

		counts.files++
		counts.bytes += size
	}

	if scanErr := scanner.Err(); scanErr != nil {
		counts.skipped++

		g.logger.Warn("Scan stopped early", zap.String("root", root), zap.Error(scanErr))
	}

	if flushErr := w.Flush(); flushErr != nil {
		return counts, fmt.Errorf("failed to write report: %w", flushErr)
	}

	return counts, nil
}

// isRegularFile follows a symlink entry to its target, so a link to a
// regular file gets a row. A dangling link gets none.
func (g *Generator) isRegularFile(entry filesystem.FileInfo) bool {
	if entry.Mode&os.ModeSymlink == 0 {
		return entry.IsRegular()
	}

	target, err := g.source.Stat(entry.Path)
	if err != nil {
		g.logger.Debug("Skipping dangling symlink", zap.String("path", entry.Path), zap.Error(err))

		return false
	}

	return target.Mode().IsRegular()
}

func (g *Generator) displayPath(entry filesystem.FileInfo) string {
	if g.opts.Relative {
		return entry.RelativePath
	}

	return entry.Path
}

// writeRow pads each column like the header. Values wider than their
// column push the rest of the row right rather than being cut.
func writeRow(w *bufio.Writer, filePath, size, modified string) {
	fmt.Fprintf(w, "%-*s%-*s%-*s\n",
		PathColumnWidth, filePath,
		SizeColumnWidth, size,
		ModifiedColumnWidth, modified)
}

// primedScanner hands back an entry already taken from the underlying
// scanner before resuming it.
type primedScanner struct {
	filesystem.FileScanner

	first   filesystem.FileInfo
	pending bool
}

func (p *primedScanner) Next() (filesystem.FileInfo, bool) {
	if p.pending {
		p.pending = false

		return p.first, true
	}

	return p.FileScanner.Next()
}
