package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	// Save the original provider
	originalProvider := otel.GetTracerProvider()

	// Set test provider
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("telemetrygate")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartDispatchSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("creates span with event name attribute", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartDispatchSpan(context.Background(), "whats_new.open_post")
		require.NotNil(t, span)
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "telemetrygate.dispatch", s.Name)

		var eventName string
		for _, attr := range s.Attributes {
			if attr.Key == "event.name" {
				eventName = attr.Value.AsString()
			}
		}
		assert.Equal(t, "whats_new.open_post", eventName)
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartDispatchSpan(context.Background(), "whats_new.open_panel")
		m.EndSpanWithError(span, errors.New("provider down"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		require.Len(t, spans[0].Events, 1, "expected a recorded error event")
	})

	t.Run("records ok status on success", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartDispatchSpan(context.Background(), "whats_new.open_panel")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.EndSpanWithError(nil, errors.New("boom"))
		})
	})
}
