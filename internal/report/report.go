// Package report renders snapshots for the terminal and as iCalendar feeds.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/username/weekday-tracker/internal/labeling"
	"github.com/username/weekday-tracker/internal/snapshot"
	"github.com/username/weekday-tracker/internal/stats"
)

const dateLayout = "2006-01-02"

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Cyan
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")) // White
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Dark gray

	rankStyles = map[labeling.Rank]lipgloss.Style{
		labeling.RankToday:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		labeling.RankTomorrow: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		labeling.RankSoon:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		labeling.RankNextWeek: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		labeling.RankLater:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}
)

// RankStyle returns the color style used for a label of the given rank
func RankStyle(r labeling.Rank) lipgloss.Style {
	if s, ok := rankStyles[r]; ok {
		return s
	}
	return valueStyle
}

// StyledLabel renders a label's text in its rank color
func StyledLabel(l labeling.Label) string {
	return RankStyle(l.Rank).Render(l.Text)
}

// WriteMonthTable writes one row per day of the snapshot's month
func WriteMonthTable(w io.Writer, snap *snapshot.Snapshot) error {
	rows := make([][]string, 0, len(snap.AllDates))
	for _, d := range snap.AllDates {
		rows = append(rows, []string{
			d.Date.Format(dateLayout),
			d.Date.Format("Mon"),
			dayKind(d.DayRecord),
			dayStatus(d.DayRecord),
			d.Label.Text,
		})
	}
	return renderTable(w, []any{"Date", "Day", "Kind", "Status", "Label"}, rows)
}

// WriteStats writes the month's counts as a two-column table
func WriteStats(w io.Writer, snap *snapshot.Snapshot) error {
	s := snap.Stats
	rows := [][]string{
		{"Total weekdays", strconv.Itoa(s.TotalWeekdays)},
		{"Weekdays elapsed", strconv.Itoa(s.WeekdaysElapsed)},
		{"Weekdays remaining", strconv.Itoa(s.WeekdaysRemaining)},
		{"Saturdays (past / remaining)", fmt.Sprintf("%d / %d", s.Weekends.PastSaturdays, s.Weekends.RemainingSaturdays)},
		{"Sundays (past / remaining)", fmt.Sprintf("%d / %d", s.Weekends.PastSundays, s.Weekends.RemainingSundays)},
	}
	if s.Holidays > 0 {
		rows = append(rows,
			[]string{"Holidays", strconv.Itoa(s.Holidays)},
			[]string{"Working days remaining", strconv.Itoa(s.WorkingDaysRemaining)},
		)
	}

	return renderTable(w, []any{"Metric", "Value"}, rows)
}

func renderTable(w io.Writer, header []any, rows [][]string) error {
	table := tablewriter.NewTable(w, tablewriter.WithRowAutoWrap(tw.WrapNone))
	table.Header(header...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// WriteSummary writes the countdowns and remaining weekends
func WriteSummary(w io.Writer, snap *snapshot.Snapshot) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Weekday tracker: %s", snap.Month)))
	fmt.Fprintln(w, separatorStyle.Render(strings.Repeat("─", 40)))

	writeField(w, "Now", snap.Now.Format("Mon 2006-01-02 15:04:05"))
	writeField(w, "Next Saturday", fmt.Sprintf("%s in %s",
		snap.NextSaturday.Format("Mon Jan 2"), snap.NextSaturdayCountdown))
	writeField(w, "Work", WorkLine(snap))

	writeWeekends(w, "Saturdays", snap.RemainingWeekends.Saturdays, snap)
	writeWeekends(w, "Sundays", snap.RemainingWeekends.Sundays, snap)
}

// WorkLine describes the working-window status in one line
func WorkLine(snap *snapshot.Snapshot) string {
	work := snap.Work
	if work.InWindow {
		return fmt.Sprintf("in progress, ends %s (in %s)", work.End.Format("15:04"), work.RemainingToday)
	}
	return fmt.Sprintf("next start %s (in %s)", work.Start.Format("Mon Jan 2 15:04"), work.UntilStart)
}

func writeField(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(name+":"), valueStyle.Render(value))
}

func writeWeekends(w io.Writer, name string, dates []time.Time, snap *snapshot.Snapshot) {
	if len(dates) == 0 {
		writeField(w, name, "none left")
		return
	}

	parts := make([]string, 0, len(dates))
	for _, date := range dates {
		label := labeling.Label{Text: date.Format("Jan 2")}
		for _, d := range snap.AllDates {
			if d.Date.Equal(date) {
				label = d.Label
				break
			}
		}
		parts = append(parts, fmt.Sprintf("%s %s", date.Format("Jan 2"), StyledLabel(label)))
	}
	writeField(w, name, strings.Join(parts, ", "))
}

func dayKind(rec stats.DayRecord) string {
	switch {
	case rec.Holiday != nil:
		return "holiday: " + rec.Holiday.Note
	case rec.IsWeekend:
		return "weekend"
	default:
		return "weekday"
	}
}

func dayStatus(rec stats.DayRecord) string {
	switch {
	case rec.IsToday:
		return "today"
	case rec.IsPast:
		return "past"
	default:
		return "upcoming"
	}
}
