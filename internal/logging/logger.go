// Package logging provides a logging abstraction layer that decouples the
// ledger, classifier and HTTP layers from a specific logging framework.
// Production code logs through logrus; tests assert on MockLogger entries.
package logging

// Logger defines the interface for structured logging throughout the application.
// Messages are short and constant; variable data such as the ledger path, the
// provider or the category goes into fields named by the Field* constants.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields.
	// Classification fallbacks are reported at this level.
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging.
// Keys should come from the Field* constants so log queries stay stable.
type Field struct {
	Key   string
	Value interface{}
}
