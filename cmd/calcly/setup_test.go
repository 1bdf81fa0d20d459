package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/calcly/cmd/calcly/internal/lcd"
	"github.com/germanamz/calcly/pkg/calc"
	"github.com/germanamz/calcly/pkg/calcdir"
	"github.com/germanamz/calcly/pkg/config"
)

func TestResolveConfigPath(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	dir := filepath.Join(tmp, ".calcly")

	assert.Equal(t, "explicit.yaml", resolveConfigPath("explicit.yaml", dir))
	assert.Equal(t, "calcly.yaml", resolveConfigPath("", dir))

	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}\n"), 0o600))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), resolveConfigPath("", dir))
}

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	cfg, err := loadConfig("", filepath.Join(tmp, ".calcly"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.History.Capacity)
	assert.Equal(t, config.DefaultDisplayWidth, cfg.Display.Width)
	assert.Equal(t, filepath.Join(tmp, ".calcly"), cfg.CalclyDir)
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	tmp := t.TempDir()

	_, err := loadConfig(filepath.Join(tmp, "nope.yaml"), filepath.Join(tmp, ".calcly"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "calcly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  capacity: 5000\n"), 0o600))

	_, err := loadConfig(path, filepath.Join(tmp, ".calcly"))
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcly.log")

	log, closeLog, err := newLogger(config.LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	log.Debug("hello", "key", "value")
	closeLog()

	data, err := os.ReadFile(path) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "key=value")
}

func TestNewLogger_Discard(t *testing.T) {
	log, closeLog, err := newLogger(config.LogConfig{})
	require.NoError(t, err)
	defer closeLog()

	assert.NotNil(t, log)
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, _, err := newLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewSession_PersistsHistory(t *testing.T) {
	dir := calcdir.New(filepath.Join(t.TempDir(), ".calcly"))

	cfg := config.Default()
	cfg.History.Persist = true

	sess, err := newSession(cfg, dir, nil, nil)
	require.NoError(t, err)

	_, err = sess.PressKeys("6*7=")
	require.NoError(t, err)
	assert.FileExists(t, dir.HistoryPath())

	reopened, err := newSession(cfg, dir, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"6 × 7 = 42"}, reopened.History())
}

func TestNewSession_InMemory(t *testing.T) {
	dir := calcdir.New(filepath.Join(t.TempDir(), ".calcly"))

	sess, err := newSession(config.Default(), dir, nil, nil)
	require.NoError(t, err)

	sess.Press(calc.Digit('1'), calc.Op(calc.OpAdd), calc.Digit('2'), calc.Equals)
	assert.Equal(t, []string{"1 + 2 = 3"}, sess.History())
	assert.False(t, dir.Exists())
}

func TestNewSession_RendersToDisplay(t *testing.T) {
	dir := calcdir.New(filepath.Join(t.TempDir(), ".calcly"))
	scr := &lcd.Screen{}

	sess, err := newSession(config.Default(), dir, scr, nil)
	require.NoError(t, err)

	_, err = sess.PressKeys("9*")
	require.NoError(t, err)

	expr, result := scr.Text()
	assert.Equal(t, "9 × ", expr)
	assert.Equal(t, "0", result)
}
