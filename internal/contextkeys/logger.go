package contextkeys

import (
	"context"

	"github.com/David070920/estimareimob/internal/core/port"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger returns a copy of ctx carrying the logger.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from ctx. When no logger was
// attached it returns a noop implementation, so callers never need a
// nil check.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return &noopLogger{}
}

type noopLogger struct{}

func (l *noopLogger) Info(msg string, fields port.Fields)             {}
func (l *noopLogger) Warn(msg string, fields port.Fields)             {}
func (l *noopLogger) Error(msg string, err error, fields port.Fields) {}
func (l *noopLogger) Debug(msg string, fields port.Fields)            {}
func (l *noopLogger) WithFields(fields port.Fields) port.LoggerPort   { return l }
