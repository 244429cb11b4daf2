package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/weekday-tracker/internal/countdown"
	"github.com/username/weekday-tracker/internal/labeling"
)

const (
	defaultTickInterval = time.Second
	minTickInterval     = 10 * time.Millisecond
)

// Config represents application configuration
type Config struct {
	Window   WindowConfig   `mapstructure:"window"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Labels   LabelsConfig   `mapstructure:"labels"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
}

// WindowConfig is the Monday-Friday working window
type WindowConfig struct {
	Start string `mapstructure:"start"` // HH:MM, local time
	End   string `mapstructure:"end"`
}

// HolidaysConfig points at optional local holiday tables
type HolidaysConfig struct {
	File            string `mapstructure:"file"`             // "YYYY-MM-DD type [note]" lines
	XMLCalendarFile string `mapstructure:"xmlcalendar_file"` // xmlcalendar.ru year JSON
}

// LabelsConfig overrides the default label tiers when non-empty
type LabelsConfig struct {
	Tiers []TierConfig `mapstructure:"tiers"`
}

// TierConfig is one label tier. An omitted bound is unbounded.
type TierConfig struct {
	Min      *int   `mapstructure:"min"`
	Max      *int   `mapstructure:"max"`
	Template string `mapstructure:"template"`
	Rank     string `mapstructure:"rank"`
}

// DaemonConfig represents watch mode configuration
type DaemonConfig struct {
	TickInterval string `mapstructure:"tick_interval"`
	LogFile      string `mapstructure:"log_file"`
	LogLevel     string `mapstructure:"log_level"`
	SystemTray   bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.start", "10:00")
	v.SetDefault("window.end", "18:30")
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.xmlcalendar_file", "")
	v.SetDefault("daemon.tick_interval", "1s")
	v.SetDefault("daemon.log_file", "")
	v.SetDefault("daemon.log_level", "info")
	v.SetDefault("daemon.system_tray", false)
}

// Load loads configuration from file. With an empty configPath the usual
// locations are searched and a missing file falls back to defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.weekday-tracker")
		v.AddConfigPath("/etc/weekday-tracker")
	}

	// Read environment variables, e.g. WEEKDAY_DAEMON_LOG_LEVEL
	v.SetEnvPrefix("WEEKDAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Window: WindowConfig{Start: "10:00", End: "18:30"},
		Daemon: DaemonConfig{TickInterval: "1s", LogLevel: "info"},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Window.GetWindow(); err != nil {
		return fmt.Errorf("window: %w", err)
	}

	if c.Daemon.TickInterval != "" {
		d, err := time.ParseDuration(c.Daemon.TickInterval)
		if err != nil {
			return fmt.Errorf("daemon.tick_interval: %w", err)
		}
		if d < minTickInterval {
			return fmt.Errorf("daemon.tick_interval must be at least %s, got %s", minTickInterval, d)
		}
	}

	if len(c.Labels.Tiers) > 0 {
		if _, err := c.Labels.GetPolicy(); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
	}

	return nil
}

// GetWindow parses the working window
func (w *WindowConfig) GetWindow() (countdown.Window, error) {
	window := countdown.DefaultWindow()

	if w.Start != "" {
		start, err := countdown.ParseClockTime(w.Start)
		if err != nil {
			return countdown.Window{}, fmt.Errorf("start: %w", err)
		}
		window.Start = start
	}
	if w.End != "" {
		end, err := countdown.ParseClockTime(w.End)
		if err != nil {
			return countdown.Window{}, fmt.Errorf("end: %w", err)
		}
		window.End = end
	}

	if err := window.Validate(); err != nil {
		return countdown.Window{}, err
	}
	return window, nil
}

// GetPolicy builds the label policy, falling back to the default tiers
func (l *LabelsConfig) GetPolicy() (*labeling.Policy, error) {
	if len(l.Tiers) == 0 {
		return labeling.DefaultPolicy(), nil
	}

	tiers := make([]labeling.Tier, 0, len(l.Tiers))
	for i, tc := range l.Tiers {
		rank, err := labeling.ParseRank(tc.Rank)
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i, err)
		}
		tier := labeling.Tier{
			Min:      labeling.MinDays,
			Max:      labeling.MaxDays,
			Template: tc.Template,
			Rank:     rank,
		}
		if tc.Min != nil {
			tier.Min = *tc.Min
		}
		if tc.Max != nil {
			tier.Max = *tc.Max
		}
		tiers = append(tiers, tier)
	}

	return labeling.NewPolicy(tiers)
}

// GetTickInterval returns daemon tick interval duration
func (c *DaemonConfig) GetTickInterval() time.Duration {
	if c.TickInterval == "" {
		return defaultTickInterval
	}
	duration, err := time.ParseDuration(c.TickInterval)
	if err != nil || duration < minTickInterval {
		return defaultTickInterval
	}
	return duration
}

// ExpandEnvVars expands environment variables in file paths
func (c *Config) ExpandEnvVars() {
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
	c.Holidays.XMLCalendarFile = os.ExpandEnv(c.Holidays.XMLCalendarFile)
	c.Daemon.LogFile = os.ExpandEnv(c.Daemon.LogFile)
}
