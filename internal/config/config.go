// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Layered loading lives in Load: defaults -> optional file -> env.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	defaultLogLevel     = "info"
	defaultTimezone     = "UTC"
	defaultHistoryLimit = 20
	defaultLogFileName  = "events.yaml"
	defaultConfigDir    = ".steady"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// EventLog is the path of the YAML event-log file.
	EventLog string `koanf:"event_log"`

	// Timezone pins calendar-day grouping for same-day offset
	// cancellation. IANA name, or "Local" for the host zone.
	Timezone string `koanf:"timezone"`

	// HistoryLimit bounds the recent-history view.
	HistoryLimit int `koanf:"history_limit"`

	// MetricsFile, when set, receives a Prometheus textfile export
	// after every command.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults. The event log defaults to
// ~/.steady/events.yaml, falling back to the working directory when the
// home directory cannot be resolved.
func New() *Config {
	logPath := defaultLogFileName
	if home, err := os.UserHomeDir(); err == nil {
		logPath = filepath.Join(home, defaultConfigDir, defaultLogFileName)
	}
	return &Config{
		LogLevel:     defaultLogLevel,
		EventLog:     logPath,
		Timezone:     defaultTimezone,
		HistoryLimit: defaultHistoryLimit,
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}
