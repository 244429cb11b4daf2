package snapshot

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-tracker/internal/calendar"
	"github.com/username/weekday-tracker/internal/countdown"
	"github.com/username/weekday-tracker/internal/labeling"
	"github.com/username/weekday-tracker/internal/stats"
)

// Day is a classified day together with its label
type Day struct {
	stats.DayRecord
	Label labeling.Label
}

// Snapshot is everything derived from one (month, now) pair
type Snapshot struct {
	Month calendar.Month
	Now   time.Time

	AllDates          []Day
	Stats             stats.Stats
	RemainingWeekends stats.WeekendLists

	NextSaturday          time.Time
	NextSaturdayCountdown countdown.Duration

	Work countdown.WorkStatus
}

// Engine computes snapshots. Its configuration is fixed at construction,
// so Compute is a pure function of its arguments.
type Engine struct {
	policy   *labeling.Policy
	window   countdown.Window
	holidays calendar.Holidays
	logger   *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithPolicy replaces the default label policy
func WithPolicy(p *labeling.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithWindow replaces the default 10:00-18:30 working window
func WithWindow(w countdown.Window) Option {
	return func(e *Engine) { e.window = w }
}

// WithHolidays attaches a holiday lookup table
func WithHolidays(h calendar.Holidays) Option {
	return func(e *Engine) { e.holidays = h }
}

// NewEngine creates a new snapshot engine
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		policy: labeling.DefaultPolicy(),
		window: countdown.DefaultWindow(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.holidays != nil && e.window.Holidays == nil {
		e.window.Holidays = e.holidays
	}
	return e
}

// Compute derives the snapshot for month as seen at now. Dates are
// generated in now's location.
func (e *Engine) Compute(month calendar.Month, now time.Time) (*Snapshot, error) {
	// Re-validate: Month is a plain struct and may have been built by hand
	if _, err := calendar.NewMonth(month.Year, month.Month); err != nil {
		return nil, fmt.Errorf("failed to compute snapshot: %w", err)
	}

	records := stats.Classify(month.Dates(now.Location()), now, e.holidays)

	days := make([]Day, len(records))
	for i, rec := range records {
		days[i] = Day{
			DayRecord: rec,
			Label:     e.policy.LabelFor(rec.Date, now),
		}
	}

	nextSat := countdown.NextSaturday(now)
	snap := &Snapshot{
		Month:                 month,
		Now:                   now,
		AllDates:              days,
		Stats:                 stats.Aggregate(records, now),
		RemainingWeekends:     stats.RemainingWeekends(records, now),
		NextSaturday:          nextSat,
		NextSaturdayCountdown: countdown.RemainingTo(nextSat, now),
		Work:                  e.window.Status(now),
	}

	e.logger.Debug("Snapshot computed",
		zap.String("month", month.String()),
		zap.Time("now", now),
		zap.Int("total_weekdays", snap.Stats.TotalWeekdays),
		zap.Int("weekdays_elapsed", snap.Stats.WeekdaysElapsed),
		zap.Int("weekdays_remaining", snap.Stats.WeekdaysRemaining))

	return snap, nil
}

// LabelFor labels a single date without recomputing a snapshot
func (e *Engine) LabelFor(date, now time.Time) labeling.Label {
	return e.policy.LabelFor(date, now)
}

// RemainingTo is the countdown from now to target
func (e *Engine) RemainingTo(target, now time.Time) countdown.Duration {
	return countdown.RemainingTo(target, now)
}

// Window returns the engine's working window
func (e *Engine) Window() countdown.Window {
	return e.window
}
