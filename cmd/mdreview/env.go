package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-mdreview/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and logging.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // Loaded once per command
	Logger *slog.Logger   // Replaced by a stderr logger with --verbose
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
		Logger: slog.New(slog.DiscardHandler),
	}
}

// verboseLogger returns a debug-level text logger writing to w.
func verboseLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
