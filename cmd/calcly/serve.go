package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/germanamz/calcly/pkg/calcdir"
	"github.com/germanamz/calcly/pkg/remote"
)

const shutdownTimeout = 5 * time.Second

// runServe serves the calculator as a WebSocket keypad at addr until
// interrupted.
func runServe(configPath, calclyDirPath, addr string, origins []string) error {
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

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/keypad", remote.NewHandler(sess, remote.Options{
		OriginPatterns: origins,
		Logger:         log,
	}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.InfoContext(ctx, "keypad server started", "version", version, "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.InfoContext(ctx, "keypad server stopped")

	return nil
}
