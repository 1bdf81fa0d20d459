package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
history:
  capacity: 25
  persist: true
display:
  width: 40
  show_history: false
log:
  file: /tmp/calcly.log
  level: debug
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.History.Capacity)
	assert.True(t, cfg.History.Persist)
	assert.Equal(t, 40, cfg.Display.Width)
	assert.False(t, cfg.HistoryVisible())
	assert.Equal(t, "/tmp/calcly.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/no/such/file.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("CALCLY_TEST_LOG", "/var/log/calcly.log")

	cfg, err := Parse([]byte("log:\n  file: ${CALCLY_TEST_LOG}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/var/log/calcly.log", cfg.Log.File)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("history: [unterminated"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.History.Capacity)
	assert.False(t, cfg.History.Persist)
	assert.Equal(t, DefaultDisplayWidth, cfg.Display.Width)
	assert.True(t, cfg.HistoryVisible())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("history:\n  persist: true\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.History.Capacity)
	assert.True(t, cfg.HistoryVisible())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative capacity", func(c *Config) { c.History.Capacity = -1 }, "history.capacity"},
		{"huge capacity", func(c *Config) { c.History.Capacity = MaxHistoryCapacity + 1 }, "history.capacity"},
		{"narrow display", func(c *Config) { c.Display.Width = 5 }, "display.width"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		lvl, err := ParseLevel(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, lvl, "ParseLevel(%q)", tt.input)
	}
}
