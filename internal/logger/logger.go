// Package logger provides the diagnostic channel: slog records for the log,
// plus short lines meant for the person at the terminal.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// Logger writes log-channel records through slog and user-facing lines to
// a plain writer. It satisfies interfaces.Reporter.
type Logger struct {
	mu     sync.Mutex
	logger *slog.Logger
	user   io.Writer
	file   *os.File
}

// Options configures New.
type Options struct {
	// LogFile receives text-formatted records when set.
	LogFile string
	// Verbose mirrors log records to Stderr with colors.
	Verbose bool
	// Stderr receives user lines and verbose records. Defaults to os.Stderr.
	Stderr io.Writer
}

// New creates a Logger. A log file that cannot be opened is reported on
// Stderr and logging continues without it.
func New(opts Options) *Logger {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var handlers []slog.Handler
	var file *os.File

	if opts.LogFile != "" {
		if dir := filepath.Dir(opts.LogFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				_, _ = fmt.Fprintf(stderr, "⚠️  Failed to create log directory: %v\n", err)
			}
		}
		f, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "⚠️  Failed to open log file: %v\n", err)
		} else {
			file = f
			handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	if opts.Verbose {
		handlers = append(handlers, tint.NewHandler(stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}

	return &Logger{
		logger: slog.New(fanout(handlers)),
		user:   stderr,
		file:   file,
	}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() *Logger {
	return &Logger{logger: slog.New(fanout(nil)), user: io.Discard}
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

func (l *Logger) log(level slog.Level, format string, args ...any) {
	l.logger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func (l *Logger) toUser(level slog.Level, prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.logger.Log(context.Background(), level, msg)
	_, _ = fmt.Fprintf(l.user, "%s %s\n", prefix, msg)
}

// Info logs an informational message (log channel only)
func (l *Logger) Info(format string, args ...any) {
	l.log(slog.LevelInfo, format, args...)
}

// Warning logs a warning message (log channel only)
func (l *Logger) Warning(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

// Error logs an error message (log channel only)
func (l *Logger) Error(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

// InfoToUser logs an informational message and shows it to the user
func (l *Logger) InfoToUser(format string, args ...any) {
	l.toUser(slog.LevelInfo, "ℹ️ ", format, args...)
}

// WarningToUser logs a warning and shows it to the user
func (l *Logger) WarningToUser(format string, args ...any) {
	l.toUser(slog.LevelWarn, "⚠️ ", format, args...)
}

// ErrorToUser logs an error and shows it to the user
func (l *Logger) ErrorToUser(format string, args ...any) {
	l.toUser(slog.LevelError, "❌", format, args...)
}

// Success logs a success message and shows it to the user
func (l *Logger) Success(format string, args ...any) {
	l.toUser(slog.LevelInfo, "✅", format, args...)
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
