// Package config resolves runtime settings: defaults, then the YAML file,
// then HARBOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AlertsMode decides whether the terminal can display alerts.
type AlertsMode string

const (
	// AlertsAuto supports alerts only when stdout is a terminal.
	AlertsAuto AlertsMode = "auto"
	AlertsOn   AlertsMode = "on"
	AlertsOff  AlertsMode = "off"
)

// Config holds every setting of the harbor binary.
type Config struct {
	DBPath      string        `yaml:"db"`
	LogUseCases bool          `yaml:"log_use_cases"`
	LogLevel    string        `yaml:"log_level"`
	WatchPoll   time.Duration `yaml:"watch_poll"`
	Alerts      AlertsMode    `yaml:"alerts"`
}

// DefaultConfig returns a Config with sensible defaults. Paths live under
// ~/.harbor.
func DefaultConfig() Config {
	return Config{
		DBPath:      filepath.Join(harborDir(), "harbor.db"),
		LogUseCases: false,
		LogLevel:    "info",
		WatchPoll:   30 * time.Second,
		Alerts:      AlertsAuto,
	}
}

func harborDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".harbor"
	}
	return filepath.Join(home, ".harbor")
}

// DefaultPath is the config file read when HARBOR_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(harborDir(), "config.yaml")
}

// Load builds the effective configuration. A missing config file is not
// an error; a malformed one is.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("HARBOR_CONFIG")
	if path == "" {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HARBOR_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HARBOR_LOG_USECASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HARBOR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("HARBOR_WATCH_POLL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.WatchPoll = d
		}
	}
	if v := os.Getenv("HARBOR_ALERTS"); v != "" {
		c.Alerts = AlertsMode(strings.ToLower(v))
	}
}

// Validate rejects settings the binary cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db path is empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.WatchPoll <= 0 {
		return fmt.Errorf("config: watch_poll must be positive, got %s", c.WatchPoll)
	}
	switch c.Alerts {
	case AlertsAuto, AlertsOn, AlertsOff:
	default:
		return fmt.Errorf("config: alerts must be auto, on or off, got %q", c.Alerts)
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// AlertsSupported resolves the alerts mode against whether stdout is a
// terminal.
func (c Config) AlertsSupported(isTerminal bool) bool {
	switch c.Alerts {
	case AlertsOn:
		return true
	case AlertsOff:
		return false
	}
	return isTerminal
}
