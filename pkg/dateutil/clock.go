package dateutil

import "time"

// Clock is the wall-clock source the tracker reads "now" from
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host's local time
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.T
}
