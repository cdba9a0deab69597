package seqgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with seqgo-specific context.
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

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogGrow logs a capacity growth of the position index.
func (l *Logger) LogGrow(from, to int) {
	l.Debug("index table grown",
		"from", from,
		"to", to,
	)
}

// LogShrink logs a capacity reduction of the position index.
func (l *Logger) LogShrink(from, to int) {
	l.Debug("index table shrunk",
		"from", from,
		"to", to,
	)
}

// LogRebuild logs a full rebuild of the position index.
func (l *Logger) LogRebuild(size int) {
	l.Debug("index table rebuilt",
		"size", size,
	)
}

// LogSnapshot logs a snapshot write.
func (l *Logger) LogSnapshot(count int, codec string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"count", count,
			"codec", codec,
			"error", err,
		)
	} else {
		l.Info("snapshot written",
			"count", count,
			"codec", codec,
		)
	}
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(count int, codec string, err error) {
	if err != nil {
		l.Error("restore failed",
			"error", err,
		)
	} else {
		l.Info("snapshot restored",
			"count", count,
			"codec", codec,
		)
	}
}
