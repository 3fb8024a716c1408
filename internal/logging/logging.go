// Package logging defines the minimal structured-logging interface the rest of
// the codebase depends on, with a slog-backed implementation and a no-op one.
package logging

import (
	"io"
	"log/slog"
)

// Logger is a leveled, structured logger. The variadic args are key-value
// pairs, e.g. log.Info("session restored", "scope", scope).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogLogger adapts *slog.Logger to the Logger interface.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger returns a Logger writing text records to w at the given level.
// A *slog.LevelVar makes the level adjustable after construction.
func NewSlogLogger(w io.Writer, level slog.Leveler) *SlogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{l: slog.New(h)}
}

func (s *SlogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *SlogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *SlogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *SlogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// With returns a child logger that always includes the given key-value pairs.
func (s *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{l: s.l.With(args...)}
}

// NoOp discards everything. It is the default when no logger is wired.
type NoOp struct{}

func NewNoOp() NoOp { return NoOp{} }

func (NoOp) Debug(string, ...any) {}
func (NoOp) Info(string, ...any)  {}
func (NoOp) Warn(string, ...any)  {}
func (NoOp) Error(string, ...any) {}
