package track

import (
	"context"
	"log/slog"
	"time"

	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/observability"
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/sanitize"
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/taxonomy"
)

// Tracker is the thin outward-facing call: validate a caller-supplied event
// against the taxonomy and, if anything safe remains, hand it to the
// provider. Telemetry must never break the feature it instruments, so every
// provider failure - error or panic - is swallowed here.
type Tracker struct {
	provider  Provider
	validator *sanitize.Validator
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithProvider sets the analytics provider. Default: NoopProvider.
func WithProvider(p Provider) Option {
	return func(t *Tracker) {
		if p != nil {
			t.provider = p
		}
	}
}

// WithRegistry sets the taxonomy the tracker enforces.
// Default: taxonomy.Default().
func WithRegistry(reg *taxonomy.Registry) Option {
	return func(t *Tracker) {
		if reg != nil {
			t.validator = sanitize.NewValidator(reg)
		}
	}
}

// WithLogger sets the logger for debug visibility into drops and dispatches.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(t *Tracker) {
		if m != nil {
			t.metrics = m
		}
	}
}

// WithSpanManager sets the span manager wrapping provider dispatch.
// Default: observability.NoopSpanManager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(t *Tracker) {
		if s != nil {
			t.spans = s
		}
	}
}

// New creates a Tracker. With no options it validates against the built-in
// taxonomy and discards everything, which is safe in every environment.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		provider:  NoopProvider{},
		validator: sanitize.NewValidator(nil),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Validator returns the validator the tracker runs.
func (t *Tracker) Validator() *sanitize.Validator {
	return t.validator
}

// TrackEvent validates the raw properties for the named event and dispatches
// the sanitized result. It is fire-and-forget: unknown events, contract
// violations, and provider failures are all absorbed silently.
func (t *Tracker) TrackEvent(ctx context.Context, eventName string, raw map[string]any) {
	start := time.Now()
	sanitized, reason := t.validator.ValidateReason(eventName, raw)
	if sanitized == nil {
		t.metrics.RecordRejected(ctx, eventName, string(reason))
		observability.LogEventRejected(t.logger, eventName, string(reason))
		return
	}
	validateDuration := time.Since(start)

	if err := t.dispatch(ctx, eventName, sanitized); err != nil {
		t.metrics.RecordProviderFailure(ctx, eventName)
		observability.LogProviderFailure(t.logger, eventName, err)
		return
	}

	t.metrics.RecordTracked(ctx, eventName, validateDuration)
	observability.LogEventTracked(t.logger, eventName, len(sanitized))
}

// dispatch hands one sanitized event to the provider inside a span,
// converting panics to errors so nothing escapes to the caller.
func (t *Tracker) dispatch(ctx context.Context, eventName string, sanitized map[string]any) error {
	spanCtx, span := t.spans.StartDispatchSpan(ctx, eventName)
	err := safeTrack(spanCtx, t.provider, eventName, sanitized)
	t.spans.EndSpanWithError(span, err)
	return err
}
