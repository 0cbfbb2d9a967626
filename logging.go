package hawk

import (
	"fmt"
	"log"
	"log/slog"
	"os"
)

// StructuredLogger is the logging interface used by the SDK. It is
// compatible with log/slog style leveled logging with key-value args.
//
// Configure it with WithLogger:
//
//	guard, _ := hawk.Init(token,
//	    hawk.WithLogger(hawk.NewSlogAdapter(slog.Default())),
//	)
type StructuredLogger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

// defaultStderrLogger is used as a fallback when no logger is configured.
// Dropped events and transport failures are never silently invisible.
var defaultStderrLogger = WrapStdLogger(log.New(os.Stderr, "hawk: ", log.LstdFlags))

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) { a.logger.Info(msg, args...) }

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) { a.logger.Warn(msg, args...) }

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

var _ StructuredLogger = (*SlogAdapter)(nil)

// stdLoggerWrapper adapts a printf-style *log.Logger to StructuredLogger.
type stdLoggerWrapper struct {
	logger *log.Logger
}

// WrapStdLogger wraps a standard library *log.Logger to implement
// StructuredLogger. All messages are printed with the level prefixed and
// key-value pairs appended.
func WrapStdLogger(l *log.Logger) StructuredLogger {
	return &stdLoggerWrapper{logger: l}
}

func (w *stdLoggerWrapper) Debug(msg string, args ...any) {
	w.logger.Print("[DEBUG] " + msg + formatArgs(args))
}

func (w *stdLoggerWrapper) Info(msg string, args ...any) {
	w.logger.Print("[INFO] " + msg + formatArgs(args))
}

func (w *stdLoggerWrapper) Warn(msg string, args ...any) {
	w.logger.Print("[WARN] " + msg + formatArgs(args))
}

func (w *stdLoggerWrapper) Error(msg string, args ...any) {
	w.logger.Print("[ERROR] " + msg + formatArgs(args))
}

// formatArgs formats structured logging arguments as a string.
func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	result := " |"
	for i := 0; i+1 < len(args); i += 2 {
		result += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return result
}

// NopLogger discards all log messages. Use it to disable SDK logging
// entirely, including the stderr fallback.
type NopLogger struct{}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

var _ StructuredLogger = NopLogger{}

// MaskToken masks an integration token for safe logging, keeping only the
// last 4 characters visible.
func MaskToken(s string) string {
	const visible = 4
	if len(s) <= visible {
		return "****"
	}
	masked := make([]byte, len(s)-visible)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + s[len(s)-visible:]
}
