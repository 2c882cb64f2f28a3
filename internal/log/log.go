// internal/log/log.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// Logger wraps a *slog.Logger, adding callstack annotations and a few
// conveniences for the resolver engine's headless operation (no GUI, so
// logging is the primary visibility into what the engine is doing tick
// to tick).
type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// New creates a Logger that writes JSON-formatted, rotated log files to
// dir. server controls the rotation policy: server instances expect to
// run unattended for a long time and so get more generous retention.
func New(server bool, level string, dir string) *Logger {
	lg := &Logger{Start: time.Now()}

	var slevel slog.Level
	if err := slevel.UnmarshalText([]byte(level)); err != nil {
		slevel = slog.LevelInfo
	}

	rot := &lumberjack.Logger{
		Filename: filepath.Join(dir, "resolver.log"),
		MaxAge:   7, // days
	}
	if server {
		rot.MaxSize = 64 // MB
		rot.MaxBackups = 7
	} else {
		rot.MaxSize = 32
		rot.MaxBackups = 3
	}
	if level == "debug" {
		rot.MaxSize = 512
	}
	lg.LogFile = rot.Filename

	h := slog.NewJSONHandler(rot, &slog.HandlerOptions{Level: slevel})
	lg.Logger = slog.New(h)

	lg.Info("Hello logging", slog.Time("start", lg.Start))
	lg.Info("system", slog.String("arch", runtime.GOARCH), slog.String("os", runtime.GOOS),
		slog.Int("ncpu", runtime.NumCPU()))
	if bi, ok := debug.ReadBuildInfo(); ok {
		lg.Debug("build", slog.String("go", bi.GoVersion), slog.String("path", bi.Path))
	}

	return lg
}

// NewDiscard returns a Logger that drops everything; useful for tests
// that want the full API surface without producing log output.
func NewDiscard() *Logger {
	lg := &Logger{Start: time.Now()}
	lg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	return lg
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{Logger: l.Logger.With(args...), LogFile: l.LogFile, Start: l.Start}
}

func (l *Logger) Debug(msg string, args ...any) {
	if l == nil {
		return
	}
	args = append(append([]any{}, args...), slog.Any("callstack", Callstack(nil)))
	l.Logger.Debug(msg, args...)
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l == nil {
		return
	}
	l.Debug(sprintf(msg, args...))
}

func (l *Logger) Info(msg string, args ...any) {
	if l == nil {
		return
	}
	args = append(append([]any{}, args...), slog.Any("callstack", Callstack(nil)))
	l.Logger.Info(msg, args...)
}

func (l *Logger) Infof(msg string, args ...any) {
	if l == nil {
		return
	}
	l.Info(sprintf(msg, args...))
}

func (l *Logger) Warn(msg string, args ...any) {
	args = append(append([]any{}, args...), slog.Any("callstack", Callstack(nil)))
	if l == nil {
		slog.Warn(msg, args...)
		return
	}
	l.Logger.Warn(msg, args...)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.Warn(sprintf(msg, args...))
}

func (l *Logger) Error(msg string, args ...any) {
	args = append(append([]any{}, args...), slog.Any("callstack", Callstack(nil)))
	if l == nil {
		slog.Error(msg, args...)
		return
	}
	l.Logger.Error(msg, args...)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.Error(sprintf(msg, args...))
}
