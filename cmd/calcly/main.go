// Calcly is a terminal calculator. It keeps an expression built from keypad
// input, folds it strictly left to right, and shows the last calculations in
// a history panel. The same calculator is available headless through the
// eval subcommand and to MCP clients through the mcp subcommand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/germanamz/calcly/cmd/calcly/internal/app"
	"github.com/germanamz/calcly/cmd/calcly/internal/lcd"
	"github.com/germanamz/calcly/pkg/calcdir"
)

const version = "0.1.0"

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init":
			initCmd := flag.NewFlagSet("init", flag.ExitOnError)
			initCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: calcly init [flags]\n\nCreate a .calcly directory with a config file.\n\nFlags:\n")
				initCmd.PrintDefaults()
			}
			dir := initCmd.String("calcly-dir", ".calcly", "path to .calcly directory")
			defaults := initCmd.Bool("defaults", false, "write the default config without prompting")
			_ = initCmd.Parse(os.Args[2:])

			if err := runInit(os.Stdout, *dir, *defaults); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "eval":
			evalCmd := flag.NewFlagSet("eval", flag.ExitOnError)
			evalCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: calcly eval [flags] <keys>...\n\nPress keys on a headless calculator and print the result.\nExample: calcly eval '2+3*4='\n\nFlags:\n")
				evalCmd.PrintDefaults()
			}
			showHistory := evalCmd.Bool("history", false, "print the history after the result")
			_ = evalCmd.Parse(os.Args[2:])

			if err := runEval(os.Stdout, evalCmd.Args(), *showHistory); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "mcp":
			mcpCmd := flag.NewFlagSet("mcp", flag.ExitOnError)
			mcpCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: calcly mcp [flags]\n\nServe the calculator as MCP tools over stdio.\n\nFlags:\n")
				mcpCmd.PrintDefaults()
			}
			cfgPath := mcpCmd.String("config", "", "path to configuration file")
			dir := mcpCmd.String("calcly-dir", ".calcly", "path to .calcly directory")
			_ = mcpCmd.Parse(os.Args[2:])

			if err := runMCP(*cfgPath, *dir); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		case "serve":
			serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
			serveCmd.Usage = func() {
				fmt.Fprintf(os.Stderr, "Usage: calcly serve [flags]\n\nServe the calculator as a WebSocket keypad at /keypad.\n\nFlags:\n")
				serveCmd.PrintDefaults()
			}
			cfgPath := serveCmd.String("config", "", "path to configuration file")
			dir := serveCmd.String("calcly-dir", ".calcly", "path to .calcly directory")
			addr := serveCmd.String("addr", "127.0.0.1:7007", "listen address")
			origins := serveCmd.String("origins", "", "comma-separated browser origins allowed to connect")
			_ = serveCmd.Parse(os.Args[2:])

			if err := runServe(*cfgPath, *dir, *addr, splitList(*origins)); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: calcly [flags]\n       calcly <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  init    Create a .calcly directory with a config file\n  eval    Press keys on a headless calculator\n  mcp     Serve the calculator over MCP (stdio)\n  serve   Serve the calculator as a WebSocket keypad\n")
	}

	configPath := flag.String("config", "", "path to configuration file (default: .calcly/config.yaml or calcly.yaml)")
	calclyDir := flag.String("calcly-dir", ".calcly", "path to .calcly directory")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	logFile := flag.String("log-file", "", "write logs to this file (overrides log.file in config)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*configPath, *calclyDir, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads environment variables from path. A missing file is
// ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func run(configPath, calclyDirPath, logFile string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath, calclyDirPath)
	if err != nil {
		return err
	}

	if logFile != "" {
		cfg.Log.File = logFile
	}

	log, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	screen := &lcd.Screen{}

	sess, err := newSession(cfg, calcdir.New(calclyDirPath), screen, log)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "calcly started", "version", version, "history_capacity", cfg.History.Capacity, "persist", cfg.History.Persist)

	model := app.New(sess, app.Options{
		Width:       cfg.Display.Width,
		ShowHistory: cfg.HistoryVisible(),
		Screen:      screen,
	})

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}
