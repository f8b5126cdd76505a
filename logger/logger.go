package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() slog.Level
}

// LogContextKey is the attribute key a *LogContext is logged under.
const LogContextKey = "log_context"

// An AppLogger implements Logger by writing to a *slog.Logger.
type AppLogger struct {
	l *slog.Logger
}

// New constructs an *AppLogger writing to l.
// A nil l writes to slog.Default.
func New(l *slog.Logger) *AppLogger {
	if l == nil {
		l = slog.Default()
	}

	return &AppLogger{l: l}
}

// Debug writes a debug log.
func (al *AppLogger) Debug(msg string, ctx *LogContext) { al.log(slog.LevelDebug, msg, ctx) }

// Error writes an error log.
func (al *AppLogger) Error(msg string, ctx *LogContext) { al.log(slog.LevelError, msg, ctx) }

// Info writes an info log.
func (al *AppLogger) Info(msg string, ctx *LogContext) { al.log(slog.LevelInfo, msg, ctx) }

// Warn writes a warning log.
func (al *AppLogger) Warn(msg string, ctx *LogContext) { al.log(slog.LevelWarn, msg, ctx) }

// LogLevel returns the lowest level the underlying handler emits.
func (al *AppLogger) LogLevel() slog.Level {
	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if al.l.Enabled(context.Background(), lvl) {
			return lvl
		}
	}

	return slog.LevelError
}

// Slogger exposes the *slog.Logger backing the AppLogger.
func (al *AppLogger) Slogger() *slog.Logger { return al.l }

func (al *AppLogger) log(level slog.Level, msg string, lc *LogContext) {
	ctx := context.Background()
	if !al.l.Enabled(ctx, level) {
		return
	}

	// NOTE: skip runtime.Callers, log and the exported method calling log.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if lc != nil {
		if lc.Caller != "" {
			r.AddAttrs(slog.String("caller", lc.Caller))
		}

		r.AddAttrs(slog.Any(LogContextKey, lc))
	}

	_ = al.l.Handler().Handle(ctx, r)
}
