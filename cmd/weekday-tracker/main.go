package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/weekday-tracker/internal/calendar"
	"github.com/username/weekday-tracker/internal/config"
	"github.com/username/weekday-tracker/internal/snapshot"
	"github.com/username/weekday-tracker/pkg/dateutil"
)

var (
	configPath string
	nowFlag    string
	cfg        *config.Config
	logger     *zap.Logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "weekday-tracker",
		Short:         "Weekday and weekend tracker",
		Long:          "Track elapsed and remaining weekdays in a month, upcoming weekends and the countdown to Saturday",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.Daemon.LogFile != "" {
				logger, err = initFileLogger(cfg.Daemon.LogFile, cfg.Daemon.LogLevel)
				if err != nil {
					logger = initLogger(cfg.Daemon.LogLevel) // Fallback to console
				}
			} else {
				logger = initLogger(cfg.Daemon.LogLevel)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "Pretend the current time is this (RFC3339 or YYYY-MM-DD[ HH:MM:SS])")

	rootCmd.AddCommand(
		snapshotCmd(),
		watchCmd(),
		labelCmd(),
		countdownCmd(),
		statusCmd(),
		icsCmd(),
	)

	return rootCmd
}

// clock returns a fixed clock when --now is given, the system clock otherwise
func clock() (dateutil.Clock, error) {
	if nowFlag == "" {
		return dateutil.SystemClock{}, nil
	}
	t, err := dateutil.ParseDateIn(nowFlag, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --now: %w", err)
	}
	return dateutil.FixedClock{T: t}, nil
}

// resolveMonth parses --month, defaulting to the month containing now
func resolveMonth(flag string, now time.Time) (calendar.Month, error) {
	if flag == "" {
		return calendar.MonthOf(now), nil
	}
	return calendar.ParseMonth(flag)
}

func buildEngine(cfg *config.Config) (*snapshot.Engine, error) {
	window, err := cfg.Window.GetWindow()
	if err != nil {
		return nil, fmt.Errorf("failed to build working window: %w", err)
	}
	policy, err := cfg.Labels.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to build label policy: %w", err)
	}

	opts := []snapshot.Option{
		snapshot.WithWindow(window),
		snapshot.WithPolicy(policy),
	}

	holidays, err := loadHolidays(cfg)
	if err != nil {
		return nil, err
	}
	if holidays != nil {
		opts = append(opts, snapshot.WithHolidays(holidays))
	}

	return snapshot.NewEngine(logger, opts...), nil
}

func loadHolidays(cfg *config.Config) (calendar.Holidays, error) {
	var tables []calendar.Holidays

	if cfg.Holidays.File != "" {
		fh := calendar.NewFileHolidays(cfg.Holidays.File, logger)
		if err := fh.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holiday file: %w", err)
		}
		tables = append(tables, fh)
	}

	if cfg.Holidays.XMLCalendarFile != "" {
		xc := calendar.NewXMLCalendarHolidays(cfg.Holidays.XMLCalendarFile, logger)
		if err := xc.Load(); err != nil {
			return nil, fmt.Errorf("failed to load xmlcalendar file: %w", err)
		}
		tables = append(tables, xc)
	}

	switch len(tables) {
	case 0:
		return nil, nil
	case 1:
		return tables[0], nil
	default:
		return calendar.NewCompositeHolidays(logger, tables...), nil
	}
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
