package telemetrygate

import (
	"context"

	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/identity"
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/sanitize"
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/taxonomy"
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/track"
)

// Gate bundles the registry, validator, and tracker behind one handle.
// The zero-configuration form validates against the built-in taxonomy and
// discards everything, so it is safe in any environment.
type Gate struct {
	tracker *track.Tracker
}

// New creates a Gate. Options are forwarded to the underlying tracker.
func New(opts ...track.Option) *Gate {
	return &Gate{tracker: track.New(opts...)}
}

// Tracker returns the underlying tracker.
func (g *Gate) Tracker() *track.Tracker {
	return g.tracker
}

// Registry returns the taxonomy this gate enforces.
func (g *Gate) Registry() *taxonomy.Registry {
	return g.tracker.Validator().Registry()
}

// Validate returns the sanitized property bag for the event, or nil if the
// event must be suppressed, without dispatching anything.
func (g *Gate) Validate(eventName string, raw map[string]any) map[string]any {
	return g.tracker.Validator().Validate(eventName, raw)
}

// TrackEvent validates and dispatches one event, fire-and-forget.
func (g *Gate) TrackEvent(ctx context.Context, eventName string, raw map[string]any) {
	g.tracker.TrackEvent(ctx, eventName, raw)
}

// ExportTaxonomy serializes the gate's taxonomy as indented JSON, ready to
// embed in a secondary enforcement site.
func (g *Gate) ExportTaxonomy() ([]byte, error) {
	return g.Registry().ExportJSON()
}

// Validate runs the built-in taxonomy without constructing a Gate.
func Validate(eventName string, raw map[string]any) map[string]any {
	return sanitize.NewValidator(nil).Validate(eventName, raw)
}

// HashTenantID maps a raw tenant identifier onto a presentation-safe token.
// See the identity package for the token format.
func HashTenantID(tenantID string) (string, bool) {
	return identity.HashTenantID(tenantID)
}
