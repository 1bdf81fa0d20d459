package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/germanamz/calcly/pkg/calcdir"
	"github.com/germanamz/calcly/pkg/config"
	"github.com/germanamz/calcly/pkg/history"
)

type wizardConfig struct {
	Capacity    string
	Persist     bool
	ShowHistory bool
	Width       string
	LogLevel    string
	LogFile     string
}

func defaultWizardConfig() wizardConfig {
	return wizardConfig{
		Capacity:    strconv.Itoa(history.DefaultCapacity),
		ShowHistory: true,
		Width:       strconv.Itoa(config.DefaultDisplayWidth),
		LogLevel:    "info",
	}
}

// runInit writes .calcly/config.yaml. An existing config is left alone and
// the changes the new settings would make are printed as a unified diff.
func runInit(w io.Writer, dirPath string, useDefaults bool) error {
	cfg := defaultWizardConfig()

	if !useDefaults {
		if err := runWizard(&cfg); err != nil {
			return err
		}
	}

	data, err := marshalWizardConfig(cfg)
	if err != nil {
		return err
	}

	d := calcdir.New(dirPath)

	err = calcdir.BootstrapWithConfig(d, data)
	if errors.Is(err, calcdir.ErrConfigExists) {
		reportExisting(w, d.ConfigPath(), data)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Initialized %s\n", d.Root())

	return nil
}

func runWizard(cfg *wizardConfig) error {
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("History size").Value(&cfg.Capacity).Validate(validateCapacity),
			huh.NewConfirm().Title("Keep history between runs?").Value(&cfg.Persist),
			huh.NewConfirm().Title("Show the history panel?").Value(&cfg.ShowHistory),
			huh.NewInput().Title("Display width").Value(&cfg.Width).Validate(validateWidth),
		),
	).Run(); err != nil {
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&cfg.LogLevel),
			huh.NewInput().Title("Log file (empty = no logs)").Value(&cfg.LogFile),
		),
	).Run()
}

func validateCapacity(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > config.MaxHistoryCapacity {
		return fmt.Errorf("must be between 1 and %d", config.MaxHistoryCapacity)
	}

	return nil
}

func validateWidth(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < config.MinDisplayWidth {
		return fmt.Errorf("must be at least %d", config.MinDisplayWidth)
	}

	return nil
}

// YAML output types.

type configYAML struct {
	History historyYAML `yaml:"history"`
	Display displayYAML `yaml:"display"`
	Log     logYAML     `yaml:"log"`
}

type historyYAML struct {
	Capacity int  `yaml:"capacity"`
	Persist  bool `yaml:"persist"`
}

type displayYAML struct {
	Width       int  `yaml:"width"`
	ShowHistory bool `yaml:"show_history"`
}

type logYAML struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level"`
}

func marshalWizardConfig(cfg wizardConfig) ([]byte, error) {
	capacity, err := strconv.Atoi(cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("history size: %w", err)
	}

	width, err := strconv.Atoi(cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("display width: %w", err)
	}

	return yaml.Marshal(configYAML{
		History: historyYAML{Capacity: capacity, Persist: cfg.Persist},
		Display: displayYAML{Width: width, ShowHistory: cfg.ShowHistory},
		Log:     logYAML{File: cfg.LogFile, Level: cfg.LogLevel},
	})
}

func reportExisting(w io.Writer, path string, proposed []byte) {
	diff, err := configDiff(path, proposed)
	switch {
	case err != nil:
		return
	case diff == "":
		_, _ = fmt.Fprintf(w, "%s already matches these settings\n", path)
	default:
		_, _ = fmt.Fprintf(w, "%s already exists; remove it to apply:\n%s", path, diff)
	}
}

// configDiff returns a unified diff from the config at path to proposed, or
// "" when they are identical.
func configDiff(path string, proposed []byte) (string, error) {
	current, err := os.ReadFile(path) //nolint:gosec // path comes from flags
	if err != nil {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(proposed)),
		FromFile: path,
		ToFile:   "new settings",
		Context:  3,
	})
}
