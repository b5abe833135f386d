// Package zap adapts a zap logger to the registry Logger interface.
//
//	base, _ := zap.NewProduction()
//	reg, _ := keyspace.NewRegistry(cluster, table,
//	    keyspace.WithLogger(zaplog.New(base)),
//	)
package zap

import (
	"go.uber.org/zap"

	"github.com/arloliu/keyspace/types"
)

// Logger forwards structured key/value logs to a zap.SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

var _ types.Logger = (*Logger)(nil)

// New wraps base. A nil base is replaced by zap.NewNop().
func New(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}

	return &Logger{sugar: base.Sugar()}
}

// NewSugared wraps an existing sugared logger.
func NewSugared(sugar *zap.SugaredLogger) *Logger {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}

	return &Logger{sugar: sugar}
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
