// Package logger wraps zap construction behind a small holder so call
// sites can defer Sync and re-initialize with a level.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger carries the shared zap logger.
type Logger struct {
	// Log is the current zap logger. It starts as a no-op until Init runs.
	Log *zap.Logger
}

// New returns a holder with a no-op logger.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the logger with a production logger at the given level.
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
