package dateutil

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// AddDays returns the start of the day n calendar days after date.
// Calendar arithmetic keeps the result on midnight across DST changes.
func AddDays(date time.Time, n int) time.Time {
	return StartOfDay(date.AddDate(0, 0, n))
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsToday returns true if date falls on the same calendar day as now,
// read in now's location
func IsToday(date, now time.Time) bool {
	return IsSameDay(date.In(now.Location()), now)
}

// IsPast returns true if the date lies entirely before the day of now.
// Today itself is never past.
func IsPast(date, now time.Time) bool {
	return StartOfDay(now).After(StartOfDay(date.In(now.Location())))
}

// DaysBetween returns the number of whole calendar days from the day of
// from to the day of to. Negative when to is before from. Works in Unix
// seconds, so spans beyond time.Duration's ~292 years stay exact.
func DaysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

// IsLeapYear applies the proleptic Gregorian rule
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	return ParseDateIn(dateStr, time.UTC)
}

// ParseDateIn parses a date string, interpreting zone-less layouts in loc
func ParseDateIn(dateStr string, loc *time.Location) (time.Time, error) {
	zoned := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}
	for _, format := range zoned {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.In(loc), nil
		}
	}

	local := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, format := range local {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}
