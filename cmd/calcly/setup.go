package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/germanamz/calcly/pkg/calc"
	"github.com/germanamz/calcly/pkg/calcdir"
	"github.com/germanamz/calcly/pkg/config"
	"github.com/germanamz/calcly/pkg/history"
	"github.com/germanamz/calcly/pkg/session"
	"github.com/germanamz/calcly/pkg/store"
)

// resolveConfigPath picks the config file: explicit flag, then
// .calcly/config.yaml, then calcly.yaml in the working directory.
func resolveConfigPath(explicit, calclyDirPath string) string {
	if explicit != "" {
		return explicit
	}

	dirConfig := filepath.Join(calclyDirPath, "config.yaml")
	if _, err := os.Stat(dirConfig); err == nil {
		return dirConfig
	}

	return "calcly.yaml"
}

// loadConfig loads and validates the resolved config. Without an explicit
// path a missing file falls back to the defaults.
func loadConfig(explicit, calclyDirPath string) (config.Config, error) {
	path := resolveConfigPath(explicit, calclyDirPath)

	cfg, err := config.LoadConfig(path)
	switch {
	case err == nil:
	case explicit == "" && errors.Is(err, os.ErrNotExist):
		cfg = config.Default()
	default:
		return config.Config{}, err
	}

	cfg.CalclyDir = calclyDirPath

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// newLogger builds the slog logger. The terminal belongs to the UI, so logs
// go to the configured file or nowhere.
func newLogger(lc config.LogConfig) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, err
	}

	if lc.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from flags or config
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))

	return log, func() { _ = f.Close() }, nil
}

// newSession creates the calculator session rendering to display (may be
// nil), backing history with .calcly/local/history.yaml when persistence is
// enabled.
func newSession(cfg config.Config, dir calcdir.Dir, display calc.Display, log *slog.Logger) (*session.Session, error) {
	opts := session.Options{
		Capacity: cfg.History.Capacity,
		Display:  display,
		Logger:   log,
	}

	if cfg.History.Persist {
		if err := calcdir.EnsureStructure(dir); err != nil {
			return nil, err
		}

		fs, err := store.OpenFile(dir.HistoryPath())
		if err != nil {
			return nil, err
		}

		opts.Persister = history.StorePersister{Store: fs}
	}

	return session.New(opts), nil
}
