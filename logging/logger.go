// SPDX-License-Identifier: MIT

// Package logging owns the process-wide slog logger: a compact console
// handler by default, JSON on request.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// LevelTrace is below Debug and reserved for per-edge diagnostics.
const LevelTrace = slog.LevelDebug - 4

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(NewCompactHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Logger returns the current process-wide logger.
func Logger() *slog.Logger { return logger.Load() }

// SetLogger replaces the process-wide logger. A nil logger discards output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// SetLevel switches to the compact handler at the given level.
func SetLevel(level slog.Level) {
	SetLogger(slog.New(NewCompactHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// SetJSONOutput switches to JSON output at the given level.
func SetJSONOutput(level slog.Level) {
	SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// New builds a logger writing to w, compact or JSON.
func New(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(NewCompactHandler(w, opts))
}

// ParseLevel maps trace, debug, info, warn and error (case-insensitive) to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// Trace logs at LevelTrace.
func Trace(msg string, args ...any) {
	Logger().Log(context.Background(), LevelTrace, msg, args...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { Logger().Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { Logger().Error(msg, args...) }
