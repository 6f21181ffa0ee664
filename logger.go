package benchy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with benchy-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LevelCritical sits above slog.LevelError for failures that abort a run.
const LevelCritical = slog.Level(12)

// LevelOff disables all output when used as a handler level.
const LevelOff = slog.Level(1000)

// ParseLevel maps the numeric verbosity used by the command line tools
// (0 trace, 1 debug, 2 info, 3 warn, 4 error, 5 critical, 6 off) onto slog levels.
func ParseLevel(n int) (slog.Level, error) {
	switch n {
	case 0:
		return slog.LevelDebug - 4, nil
	case 1:
		return slog.LevelDebug, nil
	case 2:
		return slog.LevelInfo, nil
	case 3:
		return slog.LevelWarn, nil
	case 4:
		return slog.LevelError, nil
	case 5:
		return LevelCritical, nil
	case 6:
		return LevelOff, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level must be in [0, 6], got %d", n)
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithExperiment adds an experiment id field to the logger.
func (l *Logger) WithExperiment(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("experiment", id),
	}
}

// Critical logs at LevelCritical.
func (l *Logger) Critical(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelCritical, msg, args...)
}

// LogSave logs an archive or problem write.
func (l *Logger) LogSave(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogLoad logs an archive or problem read.
func (l *Logger) LogLoad(ctx context.Context, path string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"path", path,
			"bytes", bytes,
		)
	}
}

// LogExtension warns about a path that does not carry the expected extension.
func (l *Logger) LogExtension(ctx context.Context, path, want string) {
	l.WarnContext(ctx, "unexpected file extension",
		"path", path,
		"expected", want,
	)
}

// LogValidation logs a single rejected problem field.
func (l *Logger) LogValidation(ctx context.Context, path string, err *ValidationError) {
	l.ErrorContext(ctx, "problem validation failed",
		"path", path,
		"field", err.Field,
		"reason", err.Reason,
	)
}

// LogRun logs a finished benchmark run.
func (l *Logger) LogRun(ctx context.Context, experiment int, solver, phase string, failures int) {
	if failures > 0 {
		l.WarnContext(ctx, "benchmark run completed with failures",
			"experiment", experiment,
			"solver", solver,
			"phase", phase,
			"failures", failures,
		)
	} else {
		l.DebugContext(ctx, "benchmark run completed",
			"experiment", experiment,
			"solver", solver,
			"phase", phase,
		)
	}
}
