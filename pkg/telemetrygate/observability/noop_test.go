package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_DoesNothing(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordTracked(context.Background(), "whats_new.open_panel", 10*time.Microsecond)
			m.RecordRejected(context.Background(), "whats_new.bogus", "unknown_event")
			m.RecordProviderFailure(context.Background(), "whats_new.open_panel")
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordTracked(nil, "", 0)
			m.RecordRejected(nil, "", "")
			m.RecordProviderFailure(nil, "")
		})
	})
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}

	t.Run("returns context unchanged", func(t *testing.T) {
		ctx := context.Background()
		got, span := m.StartDispatchSpan(ctx, "whats_new.open_panel")
		assert.Equal(t, ctx, got)
		assert.NotNil(t, span)
	})

	t.Run("end with error does not panic", func(t *testing.T) {
		_, span := m.StartDispatchSpan(context.Background(), "whats_new.open_panel")
		assert.NotPanics(t, func() {
			m.EndSpanWithError(span, errors.New("boom"))
			m.EndSpanWithError(span, nil)
			m.EndSpanWithError(nil, nil)
		})
	})
}
