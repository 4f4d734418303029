// Package diag provides the structured logging used by the region
// package for migration, corruption, and lock-contention diagnostics. It
// is a thin wrapper over go.uber.org/zap so region.Open can accept a
// caller-supplied *zap.Logger without making zap part of every call
// signature in the package.
package diag

import "go.uber.org/zap"

// Logger wraps a *zap.Logger, defaulting to a no-op logger so region.Open
// works without a caller ever touching the diag package.
type Logger struct {
	z *zap.Logger
}

// NewLogger wraps z. A nil z is treated as NewNop.
func NewLogger(z *zap.Logger) Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return Logger{z: z}
}

// NewNop returns a Logger that discards everything, the default when a
// region.Region is opened without region.WithLogger.
func NewNop() Logger {
	return Logger{z: zap.NewNop()}
}

func (l Logger) Debug(msg string, fields ...zap.Field) {
	l.z.Debug(msg, fields...)
}

func (l Logger) Info(msg string, fields ...zap.Field) {
	l.z.Info(msg, fields...)
}

func (l Logger) Warn(msg string, fields ...zap.Field) {
	l.z.Warn(msg, fields...)
}

func (l Logger) Error(msg string, fields ...zap.Field) {
	l.z.Error(msg, fields...)
}

// With returns a Logger with fields attached to every subsequent entry.
func (l Logger) With(fields ...zap.Field) Logger {
	return Logger{z: l.z.With(fields...)}
}
