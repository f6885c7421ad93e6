package track

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/taxonomy"
)

// State is the coordinator's position in its idle / in-flight / settled
// cycle. Exposed for tests and debugging surfaces.
type State string

const (
	// StateIdle means no mark-seen call has run yet, or the last one failed
	// and a retry may start immediately.
	StateIdle State = "idle"

	// StateInFlight means a call is running; concurrent calls coalesce into
	// it and do not start their own.
	StateInFlight State = "in_flight"

	// StateSettled means the last call succeeded; new calls inside the
	// debounce window are dropped.
	StateSettled State = "settled"
)

// CodedError carries a stable error code suitable for the error_code
// telemetry property alongside the underlying error.
type CodedError struct {
	Code string
	Err  error
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

// Unwrap returns the underlying error.
func (e *CodedError) Unwrap() error {
	return e.Err
}

// MarkSeenCoordinator owns the caller-side mark-seen state: debouncing and
// single-flight coalescing live here, as explicit state, not in the
// sanitization engine. Outcomes are reported through the Tracker as
// mark_seen_success / mark_seen_failure events.
type MarkSeenCoordinator struct {
	mu        sync.Mutex
	state     State
	settledAt time.Time

	tracker  *Tracker
	surface  string
	debounce time.Duration
	now      func() time.Time
}

// NewMarkSeenCoordinator creates a coordinator reporting through tracker.
// surface is the surface property stamped on emitted events ("panel" or
// "page"). debounce suppresses repeat calls after a success; zero disables
// debouncing.
func NewMarkSeenCoordinator(tracker *Tracker, surface string, debounce time.Duration) *MarkSeenCoordinator {
	return &MarkSeenCoordinator{
		state:    StateIdle,
		tracker:  tracker,
		surface:  surface,
		debounce: debounce,
		now:      time.Now,
	}
}

// State returns the current lifecycle state.
func (m *MarkSeenCoordinator) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mark runs fn unless a call is already in flight or a successful call
// settled within the debounce window. It returns true if fn ran. A failed fn
// returns the coordinator to idle so the caller may retry immediately; the
// failure is reported as a mark_seen_failure event with an error_code drawn
// from a wrapped CodedError, or "unknown" otherwise.
func (m *MarkSeenCoordinator) Mark(ctx context.Context, fn func(context.Context) error) bool {
	m.mu.Lock()
	switch m.state {
	case StateInFlight:
		m.mu.Unlock()
		return false
	case StateSettled:
		if m.debounce > 0 && m.now().Sub(m.settledAt) < m.debounce {
			m.mu.Unlock()
			return false
		}
	}
	m.state = StateInFlight
	m.mu.Unlock()

	err := fn(ctx)

	m.mu.Lock()
	if err != nil {
		m.state = StateIdle
	} else {
		m.state = StateSettled
		m.settledAt = m.now()
	}
	m.mu.Unlock()

	m.report(ctx, err)
	return true
}

// report emits the outcome event. Rejection by the taxonomy (for example an
// unconfigured surface) is as silent as any other telemetry loss.
func (m *MarkSeenCoordinator) report(ctx context.Context, err error) {
	if m.tracker == nil {
		return
	}
	if err == nil {
		m.tracker.TrackEvent(ctx, string(taxonomy.EventMarkSeenSuccess), map[string]any{
			"surface": m.surface,
			"result":  "success",
		})
		return
	}
	m.tracker.TrackEvent(ctx, string(taxonomy.EventMarkSeenFailure), map[string]any{
		"surface":    m.surface,
		"result":     "failure",
		"error_code": errorCode(err),
	})
}

// errorCode maps an error onto a stable, low-cardinality code. Free-form
// error text never becomes a property value; the taxonomy would let it
// through as a plain string, and that is exactly the leak this guards.
func errorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "unknown"
}
