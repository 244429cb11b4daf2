package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekday-tracker/internal/calendar"
	"github.com/username/weekday-tracker/internal/snapshot"
	"github.com/username/weekday-tracker/pkg/dateutil"
)

// Sink receives every freshly computed snapshot
type Sink func(*snapshot.Snapshot)

// Daemon recomputes the snapshot on a fixed tick and on month selection
type Daemon struct {
	engine     *snapshot.Engine
	clock      dateutil.Clock
	interval   time.Duration
	sink       Sink
	systemTray bool // Show system tray icon
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	trayApp    *TrayApp

	mu      sync.Mutex // Serializes recomputes and guards the fields below
	month   calendar.Month
	follow  bool // Month tracks the clock until one is selected explicitly
	last    *snapshot.Snapshot
	lastNow time.Time
}

// NewDaemon creates a new daemon showing the clock's current month
func NewDaemon(engine *snapshot.Engine, clock dateutil.Clock, interval time.Duration, sink Sink, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		engine:   engine,
		clock:    clock,
		interval: interval,
		sink:     sink,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		month:    calendar.MonthOf(clock.Now()),
		follow:   true,
	}
}

// SetSystemTray enables the tray icon (Windows only)
func (d *Daemon) SetSystemTray(enabled bool) {
	d.systemTray = enabled
}

// Start runs the daemon until Stop, a signal, or tray Quit
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.Run(d.ctx)
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	return d.Run(d.ctx)
}

// Run recomputes immediately and then on every tick until ctx is done
func (d *Daemon) Run(ctx context.Context) error {
	if d.interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", d.interval)
	}

	d.logger.Info("Daemon started",
		zap.Duration("tick_interval", d.interval),
		zap.String("month", d.Month().String()))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	d.Refresh()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Daemon stopped")
			return nil

		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			return nil

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
			return nil

		case <-ticker.C:
			d.Refresh()
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
	if d.trayApp != nil {
		d.trayApp.Stop()
	}
}

// Refresh recomputes the snapshot for the current month and publishes it.
// On failure the previous snapshot is kept and returned.
func (d *Daemon) Refresh() *snapshot.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshLocked()
}

func (d *Daemon) refreshLocked() *snapshot.Snapshot {
	now := d.clock.Now()

	if !d.lastNow.IsZero() && now.Before(d.lastNow) {
		d.logger.Warn("Wall clock moved backwards",
			zap.Time("previous", d.lastNow),
			zap.Time("now", now),
			zap.Duration("jump", d.lastNow.Sub(now)))
	}
	d.lastNow = now

	if d.follow {
		if m := calendar.MonthOf(now); m != d.month {
			d.logger.Info("Month rolled over", zap.String("month", m.String()))
			d.month = m
		}
	}

	snap, err := d.engine.Compute(d.month, now)
	if err != nil {
		d.logger.Error("Failed to compute snapshot", zap.Error(err))
		return d.last
	}

	d.last = snap
	if d.sink != nil {
		d.sink(snap)
	}
	if d.trayApp != nil {
		d.trayApp.Update(snap)
	}
	return snap
}

// SelectMonth switches the displayed month and recomputes right away.
// Before the first refresh it only sets the month, leaving the publish to Run.
// An invalid month is rejected and the last snapshot stays in place.
func (d *Daemon) SelectMonth(year, month int) error {
	m, err := calendar.NewMonth(year, month)
	if err != nil {
		d.logger.Warn("Rejected month selection",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err))
		return fmt.Errorf("failed to select month: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.month = m
	d.follow = false
	d.logger.Info("Month selected", zap.String("month", m.String()))
	if d.last != nil {
		d.refreshLocked()
	}
	return nil
}

// NextMonth selects the month after the current one
func (d *Daemon) NextMonth() error {
	m := d.Month().Next()
	return d.SelectMonth(m.Year, m.Month)
}

// PrevMonth selects the month before the current one
func (d *Daemon) PrevMonth() error {
	m := d.Month().Prev()
	return d.SelectMonth(m.Year, m.Month)
}

// Month returns the month being tracked
func (d *Daemon) Month() calendar.Month {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.month
}

// Last returns the most recent valid snapshot, nil before the first compute
func (d *Daemon) Last() *snapshot.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
