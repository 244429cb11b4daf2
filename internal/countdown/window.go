package countdown

import (
	"fmt"
	"time"

	"github.com/username/weekday-tracker/internal/calendar"
	"github.com/username/weekday-tracker/pkg/dateutil"
)

// maxSearchDays bounds the hunt for the next work start when a holiday
// table marks long stretches as non-working
const maxSearchDays = 366

// ClockTime is a local time of day
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime parses "HH:MM" or "HH:MM:SS"
func ParseClockTime(s string) (ClockTime, error) {
	var c ClockTime
	n, _ := fmt.Sscanf(s, "%d:%d:%d", &c.Hour, &c.Minute, &c.Second)
	if n < 2 {
		return ClockTime{}, fmt.Errorf("invalid time of day %q (want HH:MM)", s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return ClockTime{}, fmt.Errorf("time of day out of range: %q", s)
	}
	return c, nil
}

// On returns the clock time on the calendar day of date
func (c ClockTime) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, c.Second, 0, date.Location())
}

// Before reports whether c is earlier in the day than o
func (c ClockTime) Before(o ClockTime) bool {
	return c.seconds() < o.seconds()
}

func (c ClockTime) seconds() int {
	return c.Hour*secondsPerHour + c.Minute*secondsPerMinute + c.Second
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Window is the Monday-Friday working interval [Start, End) in local time
type Window struct {
	Start ClockTime
	End   ClockTime

	// Holidays, when set, removes holiday weekdays from the working days
	Holidays calendar.Holidays
}

// DefaultWindow returns the 10:00-18:30 working window
func DefaultWindow() Window {
	return Window{
		Start: ClockTime{Hour: 10},
		End:   ClockTime{Hour: 18, Minute: 30},
	}
}

// Validate checks that the window is non-empty
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return fmt.Errorf("working window start %s must be before end %s", w.Start, w.End)
	}
	return nil
}

// WorkStatus describes "now" relative to the working window
type WorkStatus struct {
	InWindow bool
	// Start and End bound the current window, or the next one when outside
	Start time.Time
	End   time.Time
	// UntilStart is set outside the window, RemainingToday inside it
	UntilStart     Duration
	RemainingToday Duration
}

// Target returns the instant the active countdown runs to
func (s WorkStatus) Target() time.Time {
	if s.InWindow {
		return s.End
	}
	return s.Start
}

// Status computes the working-window status at now
func (w Window) Status(now time.Time) WorkStatus {
	if w.IsWorkday(now) {
		start, end := w.Start.On(now), w.End.On(now)
		if !now.Before(start) && now.Before(end) {
			return WorkStatus{
				InWindow:       true,
				Start:          start,
				End:            end,
				RemainingToday: RemainingTo(end, now),
			}
		}
	}

	next := w.NextStart(now)
	return WorkStatus{
		Start:      next,
		End:        w.End.On(next),
		UntilStart: RemainingTo(next, now),
	}
}

// NextStart returns the next window opening strictly after now.
// Weekends roll to Monday; a weekday evening rolls to the next working day.
// A Friday evening therefore targets Monday rather than Saturday 10:00.
func (w Window) NextStart(now time.Time) time.Time {
	if w.IsWorkday(now) {
		if start := w.Start.On(now); now.Before(start) {
			return start
		}
	}

	for d := 1; d <= maxSearchDays; d++ {
		day := dateutil.AddDays(now, d)
		if w.IsWorkday(day) {
			return w.Start.On(day)
		}
	}

	// Holiday table covers a whole year; fall back to plain weekdays
	day := dateutil.AddDays(now, 1)
	for !dateutil.IsWeekday(day) {
		day = dateutil.AddDays(day, 1)
	}
	return w.Start.On(day)
}

// IsWorkday reports whether date is a weekday not listed as a holiday
func (w Window) IsWorkday(date time.Time) bool {
	if !dateutil.IsWeekday(date) {
		return false
	}
	if w.Holidays != nil {
		if _, ok := w.Holidays.Lookup(date); ok {
			return false
		}
	}
	return true
}
