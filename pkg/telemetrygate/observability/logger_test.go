package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

func TestLogEventTracked(t *testing.T) {
	logger, buf := newTestLogger()

	LogEventTracked(logger, "whats_new.open_panel", 3)

	out := buf.String()
	assert.Contains(t, out, "telemetry event dispatched")
	assert.Contains(t, out, "event=whats_new.open_panel")
	assert.Contains(t, out, "keys=3")
}

func TestLogEventRejected(t *testing.T) {
	logger, buf := newTestLogger()

	LogEventRejected(logger, "whats_new.bogus", "unknown_event")

	out := buf.String()
	assert.Contains(t, out, "telemetry event suppressed")
	assert.Contains(t, out, "reason=unknown_event")
}

func TestLogProviderFailure(t *testing.T) {
	logger, buf := newTestLogger()

	LogProviderFailure(logger, "whats_new.open_panel", errors.New("connection refused"))

	out := buf.String()
	assert.Contains(t, out, "analytics provider failed")
	assert.Contains(t, out, "connection refused")
}

func TestLogHelpersTolerateNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogEventTracked(nil, "whats_new.open_panel", 1)
		LogEventRejected(nil, "whats_new.open_panel", "unknown_event")
		LogProviderFailure(nil, "whats_new.open_panel", errors.New("boom"))
	})
}
