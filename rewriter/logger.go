package rewriter

import (
	"go.uber.org/zap"
)

// Logger interface for logging (can be implemented by any logger)
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

// NoOpLogger is a no-operation logger
type NoOpLogger struct{}

func (n NoOpLogger) Debug(args ...interface{}) {}
func (n NoOpLogger) Info(args ...interface{})  {}
func (n NoOpLogger) Warn(args ...interface{})  {}
func (n NoOpLogger) Error(args ...interface{}) {}

// NewZapLogger adapts a zap logger. A nil logger yields NoOpLogger.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	return l.Sugar()
}
