package ports

import "time"

// Clock abstracts wall-clock time so debounce and gate-age behavior is
// testable without sleeps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

// Now returns the current wall-clock time
func (SystemClock) Now() time.Time {
	return time.Now()
}
