// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin slog front-end shared by all packages. Packages
// derive their logger once at init:
//
//	var logger = log.WithContext("pkg", "vm")
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// Levels extend slog's with Trace below Debug.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger writes key/value records at the usual levels.
type Logger interface {
	// With returns a Logger that includes the given attrs in each record.
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// Enabled reports whether records at level would be emitted.
	Enabled(level slog.Level) bool
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a Logger backed by the given handler.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) write(level slog.Level, msg string, ctx ...any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx...) }

func (l *logger) Enabled(level slog.Level) bool {
	return l.inner.Enabled(context.Background(), level)
}

var root atomic.Value

func init() {
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	root.Store(NewLogger(NewTerminalHandlerWithLevel(os.Stderr, LevelInfo, useColor)))
}

// Root returns the process-wide default logger.
func Root() Logger {
	return root.Load().(Logger)
}

// SetDefault replaces the root logger. Loggers already derived via
// WithContext keep their old handler.
func SetDefault(l Logger) {
	root.Store(l)
}

// WithContext derives a logger from the root with the given attrs.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// Trace logs to the root logger.
func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }

// Debug logs to the root logger.
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }

// Info logs to the root logger.
func Info(msg string, ctx ...any) { Root().Info(msg, ctx...) }

// Warn logs to the root logger.
func Warn(msg string, ctx ...any) { Root().Warn(msg, ctx...) }

// Error logs to the root logger.
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }

// FromLegacyLevel maps a 0..5 verbosity flag value to a slog level,
// the scheme the CLI's --verbosity flag has always used.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelError + 4 // silent
	case 1:
		return LevelError
	case 2:
		return LevelWarn
	case 3:
		return LevelInfo
	case 4:
		return LevelDebug
	default:
		return LevelTrace
	}
}
