package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/weekday-tracker/internal/calendar"
)

func monthRecords(t *testing.T, year, month int, now time.Time, holidays calendar.Holidays) []DayRecord {
	t.Helper()
	dates, err := calendar.Generate(year, month, now.Location())
	require.NoError(t, err)
	return Classify(dates, now, holidays)
}

func TestClassify_LeapFebruary(t *testing.T) {
	now := time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)
	records := monthRecords(t, 2024, 1, now, nil)
	require.Len(t, records, 29)

	var weekendDays []int
	for _, rec := range records {
		if rec.IsWeekend {
			weekendDays = append(weekendDays, rec.Date.Day())
		}
	}
	assert.Equal(t, []int{3, 4, 10, 11, 17, 18, 24, 25}, weekendDays)

	s := Aggregate(records, now)
	assert.Equal(t, 21, s.TotalWeekdays)
	assert.Equal(t, 4, s.Weekends.Saturdays)
	assert.Equal(t, 4, s.Weekends.Sundays)

	assert.True(t, records[13].IsToday)
	assert.False(t, records[13].IsPast)
	assert.True(t, records[12].IsPast)
	assert.False(t, records[14].IsPast)
}

func TestAggregate_MidMonth(t *testing.T) {
	// Wednesday 2025-03-12, 09:00
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	s := Aggregate(monthRecords(t, 2025, 2, now, nil), now)

	// March 2025: 21 weekdays, Saturdays 1,8,15,22,29 and Sundays 2,9,16,23,30
	assert.Equal(t, 21, s.TotalWeekdays)
	assert.Equal(t, 8, s.WeekdaysElapsed, "Mar 3-7, 10-12 including today")
	assert.Equal(t, 13, s.WeekdaysRemaining)
	assert.Equal(t, WeekendTotals{
		Saturdays:          5,
		Sundays:            5,
		PastSaturdays:      2,
		PastSundays:        2,
		RemainingSaturdays: 3,
		RemainingSundays:   3,
	}, s.Weekends)
}

func TestAggregate_WeekendTodayIsRemaining(t *testing.T) {
	// Saturday 2025-03-08, late evening
	now := time.Date(2025, 3, 8, 23, 0, 0, 0, time.UTC)
	records := monthRecords(t, 2025, 2, now, nil)
	s := Aggregate(records, now)

	assert.Equal(t, 1, s.Weekends.PastSaturdays)
	assert.Equal(t, 4, s.Weekends.RemainingSaturdays)

	lists := RemainingWeekends(records, now)
	require.NotEmpty(t, lists.Saturdays)
	assert.Equal(t, 8, lists.Saturdays[0].Day())
	assert.Equal(t, 9, lists.Sundays[0].Day())
}

func TestAggregate_OtherMonths(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	t.Run("future month has nothing past", func(t *testing.T) {
		records := monthRecords(t, 2025, 5, now, nil)
		s := Aggregate(records, now)
		assert.Zero(t, s.WeekdaysElapsed)
		assert.Equal(t, s.TotalWeekdays, s.WeekdaysRemaining)
		assert.Zero(t, s.Weekends.PastSaturdays)
		assert.Zero(t, s.Weekends.PastSundays)
	})

	t.Run("past month is fully elapsed", func(t *testing.T) {
		records := monthRecords(t, 2025, 0, now, nil)
		s := Aggregate(records, now)
		assert.Equal(t, s.TotalWeekdays, s.WeekdaysElapsed)
		assert.Zero(t, s.WeekdaysRemaining)
		assert.Equal(t, s.Weekends.Saturdays, s.Weekends.PastSaturdays)
		assert.Equal(t, s.Weekends.Sundays, s.Weekends.PastSundays)

		lists := RemainingWeekends(records, now)
		assert.NotNil(t, lists.Saturdays)
		assert.Empty(t, lists.Saturdays)
		assert.Empty(t, lists.Sundays)
	})
}

func TestRemainingWeekends_LastDayOfMonth(t *testing.T) {
	// Monday 2025-03-31: no weekend days left
	now := time.Date(2025, 3, 31, 8, 0, 0, 0, time.UTC)
	records := monthRecords(t, 2025, 2, now, nil)

	lists := RemainingWeekends(records, now)
	assert.Empty(t, lists.Saturdays)
	assert.Empty(t, lists.Sundays)

	s := Aggregate(records, now)
	assert.Zero(t, s.Weekends.RemainingSaturdays)
	assert.Zero(t, s.Weekends.RemainingSundays)
	assert.Zero(t, s.WeekdaysRemaining)
}

func TestAggregate_Holidays(t *testing.T) {
	now := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)
	holidays := calendar.NewStaticHolidays(
		calendar.Holiday{Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Note: "Labour Day"},
		calendar.Holiday{Date: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), Note: "Victory Day"},
		calendar.Holiday{Date: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), Note: "Saturday, ignored"},
	)

	records := monthRecords(t, 2025, 4, now, holidays)
	require.NotNil(t, records[0].Holiday)
	assert.Equal(t, "Labour Day", records[0].Holiday.Note)

	s := Aggregate(records, now)
	// May 2025: 22 weekdays; elapsed May 1, 2, 5
	assert.Equal(t, 22, s.TotalWeekdays)
	assert.Equal(t, 3, s.WeekdaysElapsed)
	assert.Equal(t, 2, s.Holidays)
	assert.Equal(t, s.WeekdaysRemaining-1, s.WorkingDaysRemaining, "May 9 is still ahead")
}

func TestAggregate_InvariantsHoldEverywhere(t *testing.T) {
	nows := []time.Time{
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC),
		time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, now := range nows {
		for year := 1999; year <= 2101; year += 17 {
			for month := 0; month < 12; month++ {
				records := monthRecords(t, year, month, now, nil)
				s := Aggregate(records, now)
				w := s.Weekends

				if s.TotalWeekdays+w.Saturdays+w.Sundays != len(records) {
					t.Fatalf("%d-%02d @ %v: weekday/weekend sum mismatch", year, month+1, now)
				}
				if s.WeekdaysElapsed+s.WeekdaysRemaining != s.TotalWeekdays {
					t.Fatalf("%d-%02d @ %v: elapsed+remaining mismatch", year, month+1, now)
				}
				if w.PastSaturdays+w.RemainingSaturdays != w.Saturdays ||
					w.PastSundays+w.RemainingSundays != w.Sundays {
					t.Fatalf("%d-%02d @ %v: weekend past+remaining mismatch", year, month+1, now)
				}

				lists := RemainingWeekends(records, now)
				if len(lists.Saturdays) != w.RemainingSaturdays || len(lists.Sundays) != w.RemainingSundays {
					t.Fatalf("%d-%02d @ %v: list length mismatch", year, month+1, now)
				}
			}
		}
	}
}

func TestAggregate_ElapsedIsMonotonic(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	dates, err := calendar.Generate(2025, 2, time.UTC)
	require.NoError(t, err)

	prev := -1
	for now := start; now.Month() == time.March; now = now.Add(5 * time.Hour) {
		s := Aggregate(Classify(dates, now, nil), now)
		assert.GreaterOrEqual(t, s.WeekdaysElapsed, prev, "at %v", now)
		prev = s.WeekdaysElapsed
	}
	assert.Equal(t, 21, prev)
}
