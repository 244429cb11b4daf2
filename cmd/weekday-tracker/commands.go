package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekday-tracker/internal/countdown"
	"github.com/username/weekday-tracker/internal/daemon"
	"github.com/username/weekday-tracker/internal/report"
	"github.com/username/weekday-tracker/internal/snapshot"
	"github.com/username/weekday-tracker/pkg/dateutil"
)

// computeFor builds the engine and computes the snapshot for --month
func computeFor(monthFlag string) (*snapshot.Snapshot, error) {
	clk, err := clock()
	if err != nil {
		return nil, err
	}
	now := clk.Now()

	month, err := resolveMonth(monthFlag, now)
	if err != nil {
		return nil, err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	return engine.Compute(month, now)
}

func snapshotCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show the month table, stats, remaining weekends and countdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := computeFor(month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report.WriteSummary(out, snap)
			fmt.Fprintln(out)
			if err := report.WriteStats(out, snap); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return report.WriteMonthTable(out, snap)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show (YYYY-MM, default current)")
	return cmd
}

func watchCmd() *cobra.Command {
	var month string
	var tray bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute and print the summary on every tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			clk, err := clock()
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sink := func(snap *snapshot.Snapshot) {
				report.WriteSummary(out, snap)
				fmt.Fprintln(out)
			}

			d := daemon.NewDaemon(engine, clk, cfg.Daemon.GetTickInterval(), sink, logger)
			d.SetSystemTray(tray || cfg.Daemon.SystemTray)

			if month != "" {
				m, err := resolveMonth(month, clk.Now())
				if err != nil {
					return err
				}
				if err := d.SelectMonth(m.Year, m.Month); err != nil {
					return err
				}
			}

			logger.Info("Starting watch", zap.Duration("tick_interval", cfg.Daemon.GetTickInterval()))
			return d.Start()
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show (YYYY-MM, default current)")
	cmd.Flags().BoolVar(&tray, "tray", false, "Show a system tray icon (Windows only)")
	return cmd
}

func labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label DATE",
		Short: "Show the label and countdown for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clk, err := clock()
			if err != nil {
				return err
			}
			now := clk.Now()

			date, err := dateutil.ParseDateIn(args[0], now.Location())
			if err != nil {
				return err
			}
			date = dateutil.StartOfDay(date)

			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			label := engine.LabelFor(date, now)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%s, %d days, starts in %s)\n",
				date.Format("Mon 2006-01-02"),
				report.StyledLabel(label),
				label.Rank,
				label.DaysUntil,
				engine.RemainingTo(date, now))
			return nil
		},
	}
}

func countdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countdown",
		Short: "Show the countdown to next Saturday",
		RunE: func(cmd *cobra.Command, args []string) error {
			clk, err := clock()
			if err != nil {
				return err
			}
			now := clk.Now()

			target := countdown.NextSaturday(now)
			fmt.Fprintf(cmd.OutOrStdout(), "Next Saturday %s in %s\n",
				target.Format("2006-01-02"), countdown.RemainingTo(target, now))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the working-window status",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := computeFor("")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Work: %s\n", report.WorkLine(snap))
			return nil
		},
	}
}

func icsCmd() *cobra.Command {
	var month string
	var outPath string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export the remaining weekends as an iCalendar feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := computeFor(month)
			if err != nil {
				return err
			}

			if outPath == "" {
				return report.WriteICS(cmd.OutOrStdout(), snap)
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output path: %w", err)
			}
			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open output file: %w", err)
			}
			defer f.Close()

			if err := report.WriteICS(f, snap); err != nil {
				return err
			}
			logger.Info("iCalendar written", zap.String("path", outPath), zap.String("month", snap.Month.String()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to export (YYYY-MM, default current)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}
