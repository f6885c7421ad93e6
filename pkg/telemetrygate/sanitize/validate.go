package sanitize

import (
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/taxonomy"
)

// RejectReason classifies why an event was suppressed. The empty value means
// the event was accepted. Reasons are coarse on purpose: they feed metrics
// attributes, not callers.
type RejectReason string

const (
	// RejectNone marks an accepted event.
	RejectNone RejectReason = ""

	// RejectUnknownEvent marks a name outside the closed event set.
	RejectUnknownEvent RejectReason = "unknown_event"

	// RejectMissingRequired marks an event whose required keys did not all
	// survive sanitization.
	RejectMissingRequired RejectReason = "missing_required"

	// RejectMissingPostIdentity marks a post-referencing event that carried
	// neither a post_id nor a slug.
	RejectMissingPostIdentity RejectReason = "missing_post_identity"
)

// Validator answers, for an event name and a raw property bag, what the
// maximal safe subset of the bag is and whether the event may be sent at all.
// It is a pure function over an immutable registry: no I/O, no mutation, and
// malformed input degrades to rejection rather than a panic.
type Validator struct {
	reg *taxonomy.Registry
}

// NewValidator binds a validator to a registry. A nil registry means the
// built-in default.
func NewValidator(reg *taxonomy.Registry) *Validator {
	if reg == nil {
		reg = taxonomy.Default()
	}
	return &Validator{reg: reg}
}

// Registry returns the registry this validator enforces.
func (v *Validator) Registry() *taxonomy.Registry {
	return v.reg
}

// Validate returns the sanitized property bag for the event, or nil if the
// event must be suppressed. A nil raw bag is treated as empty.
func (v *Validator) Validate(name string, raw map[string]any) map[string]any {
	out, _ := v.ValidateReason(name, raw)
	return out
}

// ValidateReason is Validate plus the classification of any rejection.
func (v *Validator) ValidateReason(name string, raw map[string]any) (map[string]any, RejectReason) {
	event, known := v.reg.Resolve(name)
	if !known {
		return nil, RejectUnknownEvent
	}
	contract, _ := v.reg.Contract(event)
	forbidden := v.reg.Forbidden()

	out := make(map[string]any, len(contract.Allowlist))
	for _, key := range contract.Allowlist {
		// Re-checked here even though registry authoring already rejects
		// forbidden allowlist entries; a reconstructed registry must fail
		// safe the same way.
		if forbidden.Blocked(string(key)) {
			continue
		}
		rv, present := raw[string(key)]
		if !present {
			continue
		}
		schema, ok := v.reg.Schema(key)
		if !ok {
			continue
		}
		value, accepted := Value(schema, rv)
		if accepted {
			out[string(key)] = value
		}
	}

	for _, key := range contract.Required {
		if _, present := out[string(key)]; !present {
			return nil, RejectMissingRequired
		}
	}

	if contract.RequiresPostIdentity && !hasPostIdentity(out) {
		return nil, RejectMissingPostIdentity
	}

	return out, RejectNone
}

// hasPostIdentity reports whether the sanitized bag carries a usable post
// reference: a non-empty post_id or a non-empty slug.
func hasPostIdentity(props map[string]any) bool {
	for _, key := range []taxonomy.PropertyKey{taxonomy.KeyPostID, taxonomy.KeySlug} {
		if s, ok := props[string(key)].(string); ok && s != "" {
			return true
		}
	}
	return false
}
