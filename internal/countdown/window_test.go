package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/weekday-tracker/internal/calendar"
)

func at(day, hour, minute, second int) time.Time {
	// March 2025: the 3rd is a Monday
	return time.Date(2025, 3, day, hour, minute, second, 0, time.UTC)
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ClockTime
		wantErr bool
	}{
		{"10:00", ClockTime{Hour: 10}, false},
		{"18:30", ClockTime{Hour: 18, Minute: 30}, false},
		{"07:05:09", ClockTime{Hour: 7, Minute: 5, Second: 9}, false},
		{"24:00", ClockTime{}, true},
		{"10", ClockTime{}, true},
		{"noon", ClockTime{}, true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestWindow_Validate(t *testing.T) {
	assert.NoError(t, DefaultWindow().Validate())
	assert.Error(t, Window{Start: ClockTime{Hour: 18}, End: ClockTime{Hour: 10}}.Validate())
	assert.Error(t, Window{Start: ClockTime{Hour: 9}, End: ClockTime{Hour: 9}}.Validate())
}

func TestWindow_Status(t *testing.T) {
	w := DefaultWindow()

	tests := []struct {
		name           string
		now            time.Time
		wantIn         bool
		wantTarget     time.Time
		wantUntilStart Duration
		wantRemaining  Duration
	}{
		{
			name:           "weekday before start",
			now:            at(4, 8, 30, 0),
			wantTarget:     at(4, 10, 0, 0),
			wantUntilStart: Duration{Hours: 1, Minutes: 30},
		},
		{
			name:          "exactly at start is inside",
			now:           at(4, 10, 0, 0),
			wantIn:        true,
			wantTarget:    at(4, 18, 30, 0),
			wantRemaining: Duration{Hours: 8, Minutes: 30},
		},
		{
			name:          "inside window",
			now:           at(4, 17, 59, 30),
			wantIn:        true,
			wantTarget:    at(4, 18, 30, 0),
			wantRemaining: Duration{Minutes: 30, Seconds: 30},
		},
		{
			name:           "exactly at end rolls to tomorrow",
			now:            at(4, 18, 30, 0),
			wantTarget:     at(5, 10, 0, 0),
			wantUntilStart: Duration{Hours: 15, Minutes: 30},
		},
		{
			name:           "Friday evening rolls to Monday",
			now:            at(7, 20, 0, 0),
			wantTarget:     at(10, 10, 0, 0),
			wantUntilStart: Duration{Days: 2, Hours: 14},
		},
		{
			name:           "Saturday rolls to Monday",
			now:            at(8, 12, 0, 0),
			wantTarget:     at(10, 10, 0, 0),
			wantUntilStart: Duration{Days: 1, Hours: 22},
		},
		{
			name:           "Sunday morning rolls to Monday",
			now:            at(9, 9, 0, 0),
			wantTarget:     at(10, 10, 0, 0),
			wantUntilStart: Duration{Days: 1, Hours: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := w.Status(tt.now)
			assert.Equal(t, tt.wantIn, st.InWindow)
			assert.True(t, st.Target().Equal(tt.wantTarget), "target = %v, want %v", st.Target(), tt.wantTarget)
			assert.Equal(t, tt.wantUntilStart, st.UntilStart)
			assert.Equal(t, tt.wantRemaining, st.RemainingToday)
		})
	}
}

func TestWindow_StatusSkipsHolidays(t *testing.T) {
	w := DefaultWindow()
	w.Holidays = calendar.NewStaticHolidays(
		calendar.Holiday{Date: at(10, 0, 0, 0), Note: "Bridge day"},
		calendar.Holiday{Date: at(11, 0, 0, 0), Note: "Holiday"},
	)

	st := w.Status(at(7, 19, 0, 0))
	assert.False(t, st.InWindow)
	assert.True(t, st.Start.Equal(at(12, 10, 0, 0)), "start = %v", st.Start)

	// Inside the usual hours of a holiday is not working time
	st = w.Status(at(10, 12, 0, 0))
	assert.False(t, st.InWindow)
	assert.True(t, st.Start.Equal(at(12, 10, 0, 0)), "start = %v", st.Start)
}

func TestWindow_NextStartIsAlwaysAhead(t *testing.T) {
	w := DefaultWindow()
	for now := at(1, 0, 0, 0); now.Before(at(20, 0, 0, 0)); now = now.Add(47 * time.Minute) {
		next := w.NextStart(now)
		assert.True(t, next.After(now), "NextStart(%v) = %v", now, next)
		assert.True(t, w.IsWorkday(next))
		assert.Equal(t, 10, next.Hour())
	}
}
