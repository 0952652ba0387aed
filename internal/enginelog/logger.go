// Package enginelog wraps zap with the emoji-prefixed message texture
// the teacher's lib/activity-hub-common/logging uses, backed by a real
// structured logger (as noah-isme's services inject *zap.Logger)
// instead of the teacher's stdlib *log.Logger.
package enginelog

import "go.uber.org/zap"

// Logger is a thin façade over *zap.Logger so call sites read the same
// way the teacher's Info/Warn/Error/Debug/Success do, while every
// message still carries zap's structured fields.
type Logger struct {
	z *zap.Logger
}

// New builds a production zap logger named after the engine component
// calling it (e.g. "optimizer", "planner").
func New(component string) *Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{z: z.Named(component)}
}

// NewNop returns a Logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.z.Info("ℹ️  "+msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.z.Warn("⚠️  "+msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.z.Error("❌ "+msg, fields...)
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.z.Debug("🔍 "+msg, fields...)
}

func (l *Logger) Success(msg string, fields ...zap.Field) {
	l.z.Info("✅ "+msg, fields...)
}

// Sync flushes buffered log entries; callers should defer it after New.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
