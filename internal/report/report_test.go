package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/weekday-tracker/internal/calendar"
	"github.com/username/weekday-tracker/internal/labeling"
	"github.com/username/weekday-tracker/internal/snapshot"
)

// Friday 2025-03-07, midday
var testNow = time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

func computeSnapshot(t *testing.T, month calendar.Month, opts ...snapshot.Option) *snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.NewEngine(zap.NewNop(), opts...).Compute(month, testNow)
	require.NoError(t, err)
	return snap
}

func TestWriteMonthTable(t *testing.T) {
	snap := computeSnapshot(t, calendar.MonthOf(testNow))

	var buf bytes.Buffer
	require.NoError(t, WriteMonthTable(&buf, snap))
	out := buf.String()

	for _, want := range []string{"2025-03-01", "2025-03-31", "Tomorrow", "In 8 days", "upcoming", "past", "today", "weekend"} {
		assert.Contains(t, out, want)
	}

	var rows int
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "2025-03-") {
			rows++
		}
	}
	assert.Equal(t, 31, rows)
}

func TestWriteMonthTable_Holiday(t *testing.T) {
	holidays := calendar.NewStaticHolidays(calendar.Holiday{
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Note: "Spring break",
	})
	snap := computeSnapshot(t, calendar.MonthOf(testNow), snapshot.WithHolidays(holidays))

	var buf bytes.Buffer
	require.NoError(t, WriteMonthTable(&buf, snap))
	assert.Contains(t, buf.String(), "holiday: Spring break")

	buf.Reset()
	require.NoError(t, WriteStats(&buf, snap))
	assert.Contains(t, buf.String(), "Working days remaining")
}

func TestWriteStats(t *testing.T) {
	snap := computeSnapshot(t, calendar.MonthOf(testNow))

	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, "Total weekdays")
	assert.Contains(t, out, "21")
	assert.Contains(t, out, "16")
	assert.Contains(t, out, "1 / 4")
	assert.NotContains(t, out, "Holidays")
}

func TestWriteSummary(t *testing.T) {
	snap := computeSnapshot(t, calendar.MonthOf(testNow))

	var buf bytes.Buffer
	WriteSummary(&buf, snap)
	out := buf.String()

	assert.Contains(t, out, "Weekday tracker: 2025-03")
	assert.Contains(t, out, "Sat Mar 8 in 0d 12:00:00")
	assert.Contains(t, out, "in progress, ends 18:30 (in 0d 06:30:00)")
	assert.Contains(t, out, "Mar 8")
	assert.Contains(t, out, "Mar 30")
}

func TestWriteSummary_PastMonth(t *testing.T) {
	snap := computeSnapshot(t, calendar.Month{Year: 2025, Month: 0})

	var buf bytes.Buffer
	WriteSummary(&buf, snap)
	assert.Equal(t, 2, strings.Count(buf.String(), "none left"))
}

func TestWorkLine_OutsideWindow(t *testing.T) {
	now := time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	snap, err := snapshot.NewEngine(zap.NewNop()).Compute(calendar.MonthOf(now), now)
	require.NoError(t, err)

	assert.Equal(t, "next start Mon Mar 10 10:00 (in 2d 01:00:00)", WorkLine(snap))
}

func TestRankStyle(t *testing.T) {
	for _, r := range []labeling.Rank{labeling.RankToday, labeling.RankTomorrow, labeling.RankSoon, labeling.RankNextWeek, labeling.RankLater} {
		assert.Contains(t, RankStyle(r).Render("x"), "x")
	}
	assert.Contains(t, StyledLabel(labeling.Label{Text: "Today", Rank: labeling.RankToday}), "Today")
}

func TestBuildICS(t *testing.T) {
	snap := computeSnapshot(t, calendar.MonthOf(testNow))

	data, err := BuildICS(snap)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 8)

	var starts []string
	for _, ev := range events {
		starts = append(starts, ev.Props.Get(propDTStart).Value)
	}
	assert.Equal(t, []string{
		"20250308", "20250309", "20250315", "20250316",
		"20250322", "20250323", "20250329", "20250330",
	}, starts)

	first := events[0]
	assert.Equal(t, "20250308@weekday-tracker", first.Props.Get(propUID).Value)
	assert.Equal(t, "Saturday (Tomorrow)", first.Props.Get(propSummary).Value)
	assert.Equal(t, "20250309", first.Props.Get(propDTEnd).Value)
}

func TestBuildICS_NoRemainingWeekends(t *testing.T) {
	snap := computeSnapshot(t, calendar.Month{Year: 2025, Month: 0})

	data, err := BuildICS(snap)
	require.NoError(t, err)
	assert.Equal(t, stubCalendar, string(data))

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, snap))
	assert.Equal(t, data, buf.Bytes())
}
