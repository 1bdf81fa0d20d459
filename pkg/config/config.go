// Package config loads the calcly YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/germanamz/calcly/pkg/history"
)

// Limits for configurable values.
const (
	MaxHistoryCapacity  = 1000
	MinDisplayWidth     = 20
	DefaultDisplayWidth = 36
)

// Config is the top-level configuration.
type Config struct {
	CalclyDir string        `yaml:"-"` // Set by CLI, not from YAML.
	History   HistoryConfig `yaml:"history"`
	Display   DisplayConfig `yaml:"display"`
	Log       LogConfig     `yaml:"log"`
}

// HistoryConfig controls the history log.
type HistoryConfig struct {
	Capacity int  `yaml:"capacity"` // Entries kept (default 10).
	Persist  bool `yaml:"persist"`  // Store history under the calcly dir.
}

// DisplayConfig controls the terminal widget.
type DisplayConfig struct {
	Width       int   `yaml:"width"`        // LCD width in cells (default 36).
	ShowHistory *bool `yaml:"show_history"` // Default true.
}

// LogConfig controls structured logging. Logs never go to the terminal the
// UI is drawn on.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn or error (default info).
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML file and returns a Config with defaults applied.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.History.Capacity == 0 {
		c.History.Capacity = history.DefaultCapacity
	}
	if c.Display.Width == 0 {
		c.Display.Width = DefaultDisplayWidth
	}
	if c.Display.ShowHistory == nil {
		show := true
		c.Display.ShowHistory = &show
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// HistoryVisible reports whether the history panel is enabled.
func (c Config) HistoryVisible() bool {
	return c.Display.ShowHistory == nil || *c.Display.ShowHistory
}

// Validate checks that the configuration values are in range.
func (c Config) Validate() error {
	if c.History.Capacity < 1 || c.History.Capacity > MaxHistoryCapacity {
		return fmt.Errorf("config: history.capacity must be between 1 and %d, got %d", MaxHistoryCapacity, c.History.Capacity)
	}

	if c.Display.Width < MinDisplayWidth {
		return fmt.Errorf("config: display.width must be at least %d, got %d", MinDisplayWidth, c.Display.Width)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", name)
	}
}
