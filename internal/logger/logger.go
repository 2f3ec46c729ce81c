// Package logger wraps log/slog behind a small interface so diagnostics can
// be routed to stderr, a rotating file, or nowhere at all in tests.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger is the slog-backed Logger.
type SlogLogger struct {
	logger  *slog.Logger
	writers []io.WriteCloser // writers owned by this logger
}

// New creates a logger from the given config.
func New(config Config) (*SlogLogger, error) {
	console := config.Writer
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console}

	var owned []io.WriteCloser
	if config.File.Path != "" {
		fileWriter, err := createFileWriter(config.File)
		if err != nil {
			return nil, fmt.Errorf("failed to create file writer: %w", err)
		}
		writers = append(writers, fileWriter)
		owned = append(owned, fileWriter)
	}

	multiWriter := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: convertLevel(config.Level)}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(multiWriter, opts)
	default:
		handler = slog.NewTextHandler(multiWriter, opts)
	}

	return &SlogLogger{logger: slog.New(handler), writers: owned}, nil
}

// createFileWriter opens a lumberjack writer so long scans can rotate their log.
func createFileWriter(config FileConfig) (io.WriteCloser, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}, nil
}

func convertLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a child logger. The child does not own any writers.
func (l *SlogLogger) With(args ...any) Logger {
	return &childLogger{logger: l.logger.With(args...)}
}

// Shutdown closes every writer this logger opened.
func (l *SlogLogger) Shutdown() error {
	var lastErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	l.writers = nil
	return lastErr
}

type childLogger struct {
	logger *slog.Logger
}

func (c *childLogger) Debug(msg string, args ...any) { c.logger.Debug(msg, args...) }
func (c *childLogger) Info(msg string, args ...any)  { c.logger.Info(msg, args...) }
func (c *childLogger) Warn(msg string, args ...any)  { c.logger.Warn(msg, args...) }
func (c *childLogger) Error(msg string, args ...any) { c.logger.Error(msg, args...) }

func (c *childLogger) With(args ...any) Logger {
	return &childLogger{logger: c.logger.With(args...)}
}

func (c *childLogger) Shutdown() error { return nil }

// NullLogger discards everything.
type NullLogger struct{}

func (n NullLogger) Debug(msg string, args ...any) {}
func (n NullLogger) Info(msg string, args ...any)  {}
func (n NullLogger) Warn(msg string, args ...any)  {}
func (n NullLogger) Error(msg string, args ...any) {}
func (n NullLogger) With(args ...any) Logger       { return n }
func (n NullLogger) Shutdown() error               { return nil }
