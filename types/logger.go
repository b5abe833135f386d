package types

// Logger is the structured logger used by the registry.
//
// Messages are followed by alternating key/value pairs, matching the
// zap.SugaredLogger "w" family (see contrib/logging/zap for an adapter).
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
