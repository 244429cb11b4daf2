package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/weekday-tracker/pkg/dateutil"
)

var (
	// ErrInvalidMonth is returned for a month index outside 0-11
	ErrInvalidMonth = errors.New("month must be in range 0-11")
	// ErrInvalidYear is returned for a year time.Time cannot represent
	ErrInvalidYear = errors.New("year out of representable range")
)

// Month identifies a calendar month. Month is zero-based (0 = January).
type Month struct {
	Year  int
	Month int
}

// NewMonth validates and returns a Month
func NewMonth(year, month int) (Month, error) {
	if month < 0 || month > 11 {
		return Month{}, fmt.Errorf("invalid month %d: %w", month, ErrInvalidMonth)
	}

	// time.Date silently wraps years its internal representation cannot hold
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month+1), dateutil.DaysInMonth(year, time.Month(month+1)), 0, 0, 0, 0, time.UTC)
	if first.Year() != year || last.Year() != year {
		return Month{}, fmt.Errorf("invalid year %d: %w", year, ErrInvalidYear)
	}

	return Month{Year: year, Month: month}, nil
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month()) - 1}
}

// ParseMonth parses "YYYY-MM" (1-based month, as written on a calendar)
func ParseMonth(s string) (Month, error) {
	var year, month int
	if _, err := fmt.Sscanf(s, "%d-%d", &year, &month); err != nil {
		return Month{}, fmt.Errorf("failed to parse month %q (want YYYY-MM): %w", s, err)
	}
	return NewMonth(year, month-1)
}

// TimeMonth returns the standard library month
func (m Month) TimeMonth() time.Month {
	return time.Month(m.Month + 1)
}

// Days returns the number of days in the month
func (m Month) Days() int {
	return dateutil.DaysInMonth(m.Year, m.TimeMonth())
}

// First returns midnight of the first day in loc
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, m.TimeMonth(), 1, 0, 0, 0, 0, loc)
}

// Next returns the following month
func (m Month) Next() Month {
	if m.Month == 11 {
		return Month{Year: m.Year + 1, Month: 0}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month
func (m Month) Prev() Month {
	if m.Month == 0 {
		return Month{Year: m.Year - 1, Month: 11}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Contains reports whether t falls within the month
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.TimeMonth()
}

func (m Month) String() string {
	return fmt.Sprintf("%d-%02d", m.Year, m.Month+1)
}

// Dates returns midnight of every day in the month, ascending
func (m Month) Dates(loc *time.Location) []time.Time {
	n := m.Days()
	dates := make([]time.Time, 0, n)
	for day := 1; day <= n; day++ {
		dates = append(dates, time.Date(m.Year, m.TimeMonth(), day, 0, 0, 0, 0, loc))
	}
	return dates
}

// Generate enumerates every date of the zero-based (year, month).
// Invalid input yields an error and no dates.
func Generate(year, month int, loc *time.Location) ([]time.Time, error) {
	m, err := NewMonth(year, month)
	if err != nil {
		return nil, err
	}
	return m.Dates(loc), nil
}
