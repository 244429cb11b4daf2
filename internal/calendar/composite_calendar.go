package calendar

import (
	"time"

	"go.uber.org/zap"
)

// CompositeHolidays chains several tables; the first table holding an
// entry for a date wins
type CompositeHolidays struct {
	tables []Holidays
	logger *zap.Logger
}

// NewCompositeHolidays creates a new CompositeHolidays
func NewCompositeHolidays(logger *zap.Logger, tables ...Holidays) *CompositeHolidays {
	return &CompositeHolidays{
		tables: tables,
		logger: logger,
	}
}

// Lookup returns the first holiday found for date
func (ch *CompositeHolidays) Lookup(date time.Time) (*Holiday, bool) {
	for i, table := range ch.tables {
		if h, ok := table.Lookup(date); ok {
			ch.logger.Debug("Holiday found",
				zap.String("date", dateKey(date)),
				zap.Int("table", i),
				zap.String("note", h.Note))
			return h, true
		}
	}
	return nil, false
}

// Len returns the number of chained tables
func (ch *CompositeHolidays) Len() int {
	return len(ch.tables)
}
