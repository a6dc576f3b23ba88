package log

import (
	"context"
	"strings"
)

type contextKey string

const loggerKey contextKey = "riffle.logger"

var defaultLevel = LevelWarn

// SetDefaultLevel sets the level used when no logger is configured.
func SetDefaultLevel(level Level) {
	defaultLevel = level
}

// GetDefaultLevel returns the level used when no logger is configured.
func GetDefaultLevel() Level {
	return defaultLevel
}

// WithLogger returns a new context carrying the given logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns the logger from the given context, or a default logger if
// none was attached.
func Ctx(ctx context.Context) Logger {
	if ctx == nil {
		return New(defaultLevel)
	}
	logger, ok := ctx.Value(loggerKey).(Logger)
	if !ok {
		return New(defaultLevel)
	}
	return logger
}

// LevelFromString converts a string to a Level, falling back to the
// default level for unrecognized values.
func LevelFromString(value string) Level {
	switch strings.ToLower(value) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return defaultLevel
	}
}
