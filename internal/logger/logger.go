package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
	With(fields ...interface{}) Logger
}

// SlogLogger implements Logger on top of log/slog. Fields are key/value pairs.
type SlogLogger struct {
	inner *slog.Logger
}

// New creates a logger: JSON output in production, text otherwise
func New(environment string) Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if environment == "development" {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return &SlogLogger{inner: slog.New(handler)}
}

// NewSimpleLogger creates a text logger for command line tools
func NewSimpleLogger() Logger {
	return New("development")
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() Logger {
	return &SlogLogger{inner: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Info logs an info message
func (l *SlogLogger) Info(msg string, fields ...interface{}) {
	l.inner.Info(msg, fields...)
}

// Error logs an error message
func (l *SlogLogger) Error(msg string, err error, fields ...interface{}) {
	l.inner.Error(msg, append([]interface{}{"error", err}, fields...)...)
}

// Warn logs a warning message
func (l *SlogLogger) Warn(msg string, fields ...interface{}) {
	l.inner.Warn(msg, fields...)
}

// Debug logs a debug message
func (l *SlogLogger) Debug(msg string, fields ...interface{}) {
	l.inner.Debug(msg, fields...)
}

// Fatal logs a fatal error and exits
func (l *SlogLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.Error(msg, err, fields...)
	os.Exit(1)
}

// With returns a child logger that always carries the given fields
func (l *SlogLogger) With(fields ...interface{}) Logger {
	return &SlogLogger{inner: l.inner.With(fields...)}
}
