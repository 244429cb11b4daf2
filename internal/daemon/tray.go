//go:build windows

package daemon

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"

	"github.com/username/weekday-tracker/internal/snapshot"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	mbOK              = 0x00000000
	mbIconInformation = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon   *Daemon
	logger   *zap.Logger
	quit     chan struct{}
	stopOnce sync.Once

	mu   sync.Mutex
	last *snapshot.Snapshot
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	icon, err := calendarIcon()
	if err != nil {
		t.logger.Warn("Failed to render tray icon", zap.Error(err))
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTitle("WT")
	systray.SetTooltip("Weekday Tracker")

	mPrev := systray.AddMenuItem("Previous month", "Show the previous month")
	mNext := systray.AddMenuItem("Next month", "Show the next month")
	systray.AddSeparator()
	mStatus := systray.AddMenuItem("Status", "Show current status")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start daemon loop in background
	go func() {
		if err := t.daemon.Run(t.daemon.ctx); err != nil {
			t.logger.Error("Daemon loop failed", zap.Error(err))
		}
	}()

	go func() {
		for {
			select {
			case <-mPrev.ClickedCh:
				if err := t.daemon.PrevMonth(); err != nil {
					t.logger.Warn("Previous month failed", zap.Error(err))
				}
			case <-mNext.ClickedCh:
				if err := t.daemon.NextMonth(); err != nil {
					t.logger.Warn("Next month failed", zap.Error(err))
				}
			case <-mStatus.ClickedCh:
				t.showStatus()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.stopOnce.Do(func() { close(t.quit) })
}

// Update refreshes the tooltip from a new snapshot
func (t *TrayApp) Update(snap *snapshot.Snapshot) {
	t.mu.Lock()
	t.last = snap
	t.mu.Unlock()

	systray.SetTooltip(tooltip(snap))
}

func (t *TrayApp) showStatus() {
	t.mu.Lock()
	snap := t.last
	t.mu.Unlock()

	if snap == nil {
		showMessageBox("Weekday Tracker", "No status available yet")
		return
	}
	showMessageBox("Weekday Tracker", statusMessage(snap))
}

func statusMessage(snap *snapshot.Snapshot) string {
	s := snap.Stats
	msg := fmt.Sprintf("Month: %s\nWeekdays: %d (elapsed %d, remaining %d)\nWeekends left: %d Sat, %d Sun\nNext Saturday (%s): %s",
		snap.Month,
		s.TotalWeekdays, s.WeekdaysElapsed, s.WeekdaysRemaining,
		s.Weekends.RemainingSaturdays, s.Weekends.RemainingSundays,
		snap.NextSaturday.Format("Jan 2"), snap.NextSaturdayCountdown)

	if snap.Work.InWindow {
		msg += fmt.Sprintf("\nWork ends in %s", snap.Work.RemainingToday)
	} else {
		msg += fmt.Sprintf("\nWork starts in %s", snap.Work.UntilStart)
	}
	return msg
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(mbOK|mbIconInformation),
	)
}
