package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// Initialize sets up the global logger writing to stdout.
func Initialize(level, format string) {
	InitializeWithWriter(os.Stdout, level, format)
}

// InitializeWithWriter sets up the global logger writing to w. format is
// "json" or "text".
func InitializeWithWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// ParseLevel maps a config level name to a slog level; unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the global logger, initializing it with defaults on first use.
func Get() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l == nil {
		Initialize("info", "text")
		return Get()
	}
	return l
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// InfoContext logs with the request context so handlers can pick up request ids.
func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// WithComponent returns a logger tagged with a component name, e.g. "reconciler".
func WithComponent(name string) *slog.Logger {
	return Get().With("component", name)
}

// EnterMethod logs method entry at debug level.
func EnterMethod(methodName string, args ...any) {
	Get().Debug("→ Method entered", append([]any{"method", methodName, "event", "enter"}, args...)...)
}

// ExitMethod logs method exit at debug level.
func ExitMethod(methodName string, args ...any) {
	Get().Debug("← Method exited", append([]any{"method", methodName, "event", "exit"}, args...)...)
}

// ExitMethodWithError logs a failed method exit at error level.
func ExitMethodWithError(methodName string, err error, args ...any) {
	Get().Error("← Method exited with error", append([]any{"method", methodName, "event", "exit", "error", err}, args...)...)
}

// DatabaseResult logs the outcome of a write against a table.
func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	allArgs := append([]any{"operation", operation, "rows_affected", rowsAffected}, args...)
	if err != nil {
		Get().Error("← Database call failed", append(allArgs, "error", err)...)
		return
	}
	Get().Debug("← Database call succeeded", allArgs...)
}

// ExternalServiceCall logs an outbound call to a third-party service.
func ExternalServiceCall(service, operation string, args ...any) {
	Get().Debug("→ External service call", append([]any{"service", service, "operation", operation}, args...)...)
}

// ExternalServiceResult logs the outcome of an outbound call.
func ExternalServiceResult(service, operation string, err error, args ...any) {
	allArgs := append([]any{"service", service, "operation", operation}, args...)
	if err != nil {
		Get().Error("← External service call failed", append(allArgs, "error", err)...)
		return
	}
	Get().Debug("← External service call succeeded", allArgs...)
}
