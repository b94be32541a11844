// Package clock provides the wall clock used to date expenses.
package clock

import "time"

// SystemClock reads the local wall clock.
type SystemClock struct{}

// New returns a SystemClock.
func New() SystemClock {
	return SystemClock{}
}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
