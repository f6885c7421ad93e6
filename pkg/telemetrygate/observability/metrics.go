package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records telemetry-gate metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordTracked records an event that passed validation and was handed
	// to the provider, with the time spent validating it.
	RecordTracked(ctx context.Context, eventName string, validateDuration time.Duration)

	// RecordRejected records an event suppressed by validation.
	RecordRejected(ctx context.Context, eventName string, reason string)

	// RecordProviderFailure records a provider error or panic that was
	// swallowed by the tracker.
	RecordProviderFailure(ctx context.Context, eventName string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	eventsTracked    metric.Int64Counter
	eventsRejected   metric.Int64Counter
	providerFailures metric.Int64Counter
	validateLatency  metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("telemetrygate")

	eventsTracked, err := meter.Int64Counter("telemetrygate.events.tracked",
		metric.WithDescription("Number of events that passed validation and were dispatched"),
	)
	if err != nil {
		return nil, err
	}

	eventsRejected, err := meter.Int64Counter("telemetrygate.events.rejected",
		metric.WithDescription("Number of events suppressed by validation"),
	)
	if err != nil {
		return nil, err
	}

	providerFailures, err := meter.Int64Counter("telemetrygate.provider.failures",
		metric.WithDescription("Number of provider errors or panics swallowed by the tracker"),
	)
	if err != nil {
		return nil, err
	}

	validateLatency, err := meter.Float64Histogram("telemetrygate.validate.latency_ms",
		metric.WithDescription("Validation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		eventsTracked:    eventsTracked,
		eventsRejected:   eventsRejected,
		providerFailures: providerFailures,
		validateLatency:  validateLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

// RecordTracked records a dispatched event.
func (m *otelMetrics) RecordTracked(ctx context.Context, eventName string, validateDuration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("event.name", eventName))
	m.eventsTracked.Add(ctx, 1, attrs)
	m.validateLatency.Record(ctx, float64(validateDuration.Microseconds())/1000.0, attrs)
}

// RecordRejected records a suppressed event.
func (m *otelMetrics) RecordRejected(ctx context.Context, eventName string, reason string) {
	m.eventsRejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.name", eventName),
		attribute.String("reject.reason", reason),
	))
}

// RecordProviderFailure records a swallowed provider failure.
func (m *otelMetrics) RecordProviderFailure(ctx context.Context, eventName string) {
	m.providerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.name", eventName),
	))
}
