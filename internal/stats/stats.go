// Package stats classifies the days of a month relative to "now" and folds
// them into weekday and weekend counts.
package stats

import (
	"time"

	"github.com/username/weekday-tracker/internal/calendar"
	"github.com/username/weekday-tracker/pkg/dateutil"
)

// DayRecord is one classified calendar day
type DayRecord struct {
	Date      time.Time
	IsWeekend bool
	IsToday   bool
	IsPast    bool
	Holiday   *calendar.Holiday
}

// WeekendTotals counts the Saturdays and Sundays of a month
type WeekendTotals struct {
	Saturdays          int
	Sundays            int
	PastSaturdays      int
	PastSundays        int
	RemainingSaturdays int
	RemainingSundays   int
}

// Stats aggregates a month's classified days.
//
// TotalWeekdays + Weekends.Saturdays + Weekends.Sundays equals the number
// of days, WeekdaysElapsed + WeekdaysRemaining equals TotalWeekdays.
type Stats struct {
	TotalWeekdays     int
	WeekdaysElapsed   int
	WeekdaysRemaining int
	Weekends          WeekendTotals

	// Holidays counts weekdays marked by the holiday table
	Holidays int
	// WorkingDaysRemaining counts remaining weekdays that are not holidays
	WorkingDaysRemaining int
}

// WeekendLists holds the not-yet-passed weekend days, today included
type WeekendLists struct {
	Saturdays []time.Time
	Sundays   []time.Time
}

// Classify tags each date relative to now. holidays may be nil.
func Classify(dates []time.Time, now time.Time, holidays calendar.Holidays) []DayRecord {
	records := make([]DayRecord, 0, len(dates))
	for _, date := range dates {
		rec := DayRecord{
			Date:      date,
			IsWeekend: dateutil.IsWeekend(date),
			IsToday:   dateutil.IsToday(date, now),
			IsPast:    dateutil.IsPast(date, now),
		}
		if holidays != nil {
			if h, ok := holidays.Lookup(date); ok {
				rec.Holiday = h
			}
		}
		records = append(records, rec)
	}
	return records
}

// Aggregate folds classified records into counts
func Aggregate(records []DayRecord, now time.Time) Stats {
	var s Stats

	for _, rec := range records {
		switch rec.Date.Weekday() {
		case time.Saturday:
			s.Weekends.Saturdays++
			if isRemaining(rec.Date, now) {
				s.Weekends.RemainingSaturdays++
			} else {
				s.Weekends.PastSaturdays++
			}
		case time.Sunday:
			s.Weekends.Sundays++
			if isRemaining(rec.Date, now) {
				s.Weekends.RemainingSundays++
			} else {
				s.Weekends.PastSundays++
			}
		default:
			s.TotalWeekdays++
			// A weekday counts as elapsed as soon as it has started
			if !rec.Date.After(now) {
				s.WeekdaysElapsed++
			} else if rec.Holiday == nil {
				s.WorkingDaysRemaining++
			}
			if rec.Holiday != nil {
				s.Holidays++
			}
		}
	}

	s.WeekdaysRemaining = s.TotalWeekdays - s.WeekdaysElapsed
	return s
}

// RemainingWeekends lists the Saturdays and Sundays that are today or later
func RemainingWeekends(records []DayRecord, now time.Time) WeekendLists {
	lists := WeekendLists{
		Saturdays: []time.Time{},
		Sundays:   []time.Time{},
	}

	for _, rec := range records {
		if !isRemaining(rec.Date, now) {
			continue
		}
		switch rec.Date.Weekday() {
		case time.Saturday:
			lists.Saturdays = append(lists.Saturdays, rec.Date)
		case time.Sunday:
			lists.Sundays = append(lists.Sundays, rec.Date)
		}
	}

	return lists
}

// isRemaining reports whether date is today or later
func isRemaining(date, now time.Time) bool {
	return !dateutil.IsPast(date, now)
}
