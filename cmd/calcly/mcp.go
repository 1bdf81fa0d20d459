package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/calcly/pkg/calcdir"
	"github.com/germanamz/calcly/pkg/calctools"
)

// runMCP serves the calculator over stdio. Logs never go to stdout, which
// carries the protocol.
func runMCP(configPath, calclyDirPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(configPath, calclyDirPath)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := newSession(cfg, calcdir.New(calclyDirPath), nil, log)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "mcp server started", "version", version)

	srv := calctools.NewServer("calcly", version, calctools.Tools(sess))
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.ErrorContext(ctx, "mcp server stopped", "error", err)
		return err
	}

	return nil
}
