// Package clock provides time sources that can be swapped out in tests.
package clock

import "time"

// Clock provides the current time. It satisfies zapcore.Clock so the same
// value can drive both report timestamps and log lines.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) *time.Ticker
}

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	At time.Time
}

// NewTicker creates a real ticker. Fixed only freezes Now.
func (f Fixed) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time {
	return f.At
}

// Real implements Clock using the system clock.
type Real struct{}

// NewTicker creates a new ticker.
func (Real) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

// Now returns the current time.
func (Real) Now() time.Time {
	return time.Now()
}
