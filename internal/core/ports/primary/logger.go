package primary

// Logger is the structured key/value logging port used across services and
// adapters. Implemented by adapter/logging.ZapLogger.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}
