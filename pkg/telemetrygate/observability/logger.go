// Package observability provides observability hooks for the telemetry gate:
// structured logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Logging helpers tolerate a nil logger so the tracker never has to branch.
package observability

import (
	"log/slog"
)

// LogEventTracked logs a dispatched event at debug level. Only the event
// name and the sanitized key count are logged, never property values.
func LogEventTracked(logger *slog.Logger, eventName string, keyCount int) {
	if logger == nil {
		return
	}
	logger.Debug("telemetry event dispatched",
		slog.String("event", eventName),
		slog.Int("keys", keyCount),
	)
}

// LogEventRejected logs a suppressed event at debug level.
func LogEventRejected(logger *slog.Logger, eventName, reason string) {
	if logger == nil {
		return
	}
	logger.Debug("telemetry event suppressed",
		slog.String("event", eventName),
		slog.String("reason", reason),
	)
}

// LogProviderFailure logs a swallowed provider failure at warn level.
// The failure never propagates to the caller; this is its only trace.
func LogProviderFailure(logger *slog.Logger, eventName string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("analytics provider failed",
		slog.String("event", eventName),
		slog.Any("error", err),
	)
}
