package report

import (
	"errors"
	"time"
)

// Exported variables.
var (
	ErrInvalidPattern   = errors.New("invalid file pattern")
	ErrOutputUnwritable = errors.New("report could not be written")
	ErrRootInaccessible = errors.New("directory could not be read")
	ErrRootMissing      = errors.New("directory does not exist")
	ErrRootNotDirectory = errors.New("path is not a directory")
)

// Status is the outcome of a report run.
type Status int

// Status values.
const (
	// StatusOK means every regular file got a complete row.
	StatusOK Status = iota
	// StatusPartial means the report was written but some entries were
	// skipped or degraded to size 0.
	StatusPartial
	// StatusAborted means no report was produced.
	StatusAborted
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPartial:
		return "partial"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result describes what a Generate call did.
type Result struct {
	Status Status

	// ReportPath is the resolved report location, set even when aborted.
	ReportPath string

	// Files is the number of rows written.
	Files int
	// Bytes is the sum of the sizes in those rows.
	Bytes uint64
	// Skipped counts files that degraded to size 0 plus entries the walk
	// could not read.
	Skipped int

	// Reason is set when Status is StatusAborted. It wraps one of the
	// exported sentinel errors and carries actionable suggestions.
	Reason error

	Duration time.Duration
}

// OK reports whether a report file was produced.
func (r Result) OK() bool {
	return r.Status != StatusAborted
}
