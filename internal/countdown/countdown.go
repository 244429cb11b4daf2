// Package countdown computes clamped day/hour/minute/second durations
// between "now" and target instants.
package countdown

import (
	"fmt"
	"time"

	"github.com/username/weekday-tracker/pkg/dateutil"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Duration is a non-negative span decomposed into calendar-style fields.
// Hours, Minutes and Seconds stay within their modulus; Days is unbounded.
type Duration struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// FromSeconds decomposes a whole-second count; negative input clamps to zero
func FromSeconds(total int64) Duration {
	if total <= 0 {
		return Duration{}
	}
	return Duration{
		Days:    int(total / secondsPerDay),
		Hours:   int(total % secondsPerDay / secondsPerHour),
		Minutes: int(total % secondsPerHour / secondsPerMinute),
		Seconds: int(total % secondsPerMinute),
	}
}

// RemainingTo returns the floored whole seconds from now until target.
// A target at or before now yields the zero Duration.
func RemainingTo(target, now time.Time) Duration {
	// time.Time.Sub saturates past ~292 years; Unix seconds do not
	delta := target.Unix() - now.Unix()
	if target.Nanosecond() < now.Nanosecond() {
		delta--
	}
	return FromSeconds(delta)
}

// TotalSeconds reconstructs the whole-second span
func (d Duration) TotalSeconds() int64 {
	return int64(d.Days)*secondsPerDay +
		int64(d.Hours)*secondsPerHour +
		int64(d.Minutes)*secondsPerMinute +
		int64(d.Seconds)
}

// IsZero reports whether the span is empty
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// Std converts to a time.Duration, saturating on overflow
func (d Duration) Std() time.Duration {
	total := d.TotalSeconds()
	if total > int64(1<<63-1)/int64(time.Second) {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(total) * time.Second
}

// String renders "3d 04:05:06"
func (d Duration) String() string {
	return fmt.Sprintf("%dd %02d:%02d:%02d", d.Days, d.Hours, d.Minutes, d.Seconds)
}

// NextSaturday returns midnight of the next Saturday after now.
// On a Saturday the target is the following week's Saturday, never today.
func NextSaturday(now time.Time) time.Time {
	weekday := int(now.Weekday()) // Sunday = 0
	if now.Weekday() == time.Saturday {
		return dateutil.AddDays(now, 7)
	}
	return dateutil.AddDays(now, (int(time.Saturday)-weekday+7)%7)
}

// UntilNextSaturday is RemainingTo(NextSaturday(now), now)
func UntilNextSaturday(now time.Time) Duration {
	return RemainingTo(NextSaturday(now), now)
}
