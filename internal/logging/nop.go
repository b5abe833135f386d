// Package logging holds the registry's default logger.
package logging

import "github.com/arloliu/keyspace/types"

// NopLogger drops every registry event. It is installed by DefaultConfig so
// the registry can log unconditionally.
type NopLogger struct{}

var _ types.Logger = (*NopLogger)(nil)

// NewNopLogger returns a logger that drops every event.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}
