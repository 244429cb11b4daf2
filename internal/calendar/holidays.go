package calendar

import "time"

const dateKeyLayout = "2006-01-02"

// Holiday is a non-working weekday supplied by a lookup table
type Holiday struct {
	Date time.Time
	Note string
}

// Holidays is a static lookup table of non-working weekdays
type Holidays interface {
	// Lookup returns the holiday falling on date's calendar day, if any
	Lookup(date time.Time) (*Holiday, bool)
}

// StaticHolidays is an in-memory table keyed by calendar date
type StaticHolidays map[string]Holiday

// NewStaticHolidays builds a table from the given holidays
func NewStaticHolidays(holidays ...Holiday) StaticHolidays {
	table := make(StaticHolidays, len(holidays))
	for _, h := range holidays {
		table.Add(h)
	}
	return table
}

// Add inserts or replaces the holiday for its date
func (s StaticHolidays) Add(h Holiday) {
	s[dateKey(h.Date)] = h
}

// Lookup returns the holiday for date, if any
func (s StaticHolidays) Lookup(date time.Time) (*Holiday, bool) {
	h, ok := s[dateKey(date)]
	if !ok {
		return nil, false
	}
	return &h, true
}

func dateKey(date time.Time) string {
	return date.Format(dateKeyLayout)
}
