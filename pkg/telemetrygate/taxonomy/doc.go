// Package taxonomy defines the closed event and property schema for outbound
// product telemetry.
//
// # Overview
//
// The taxonomy is a static, hand-authored table: every known event name, the
// properties each event may carry, per-property type and enum constraints,
// which properties are required, and which keys are permanently forbidden.
// It has no behavior beyond lookup; the sanitize package reads it to decide
// what may leave the process.
//
//   - EventName and PropertyKey are closed sets
//   - PropType is a sealed union: String, Number, Boolean, Object
//   - Contract holds each event's allowlist and required subset
//   - ForbiddenKeys is the last line of defense against PII leakage
//
// # Single Source of Truth
//
// Registry is immutable after construction. Export flattens it into plain
// serializable data so a second enforcement site (for example a script
// embedded in a page) can rebuild an identical registry with FromExport and
// run the same validation algorithm, rather than maintaining a hand-kept
// copy that drifts:
//
//	data, _ := taxonomy.Default().ExportJSON()
//	// ship data to the other site, then:
//	exp, _ := taxonomy.ParseExportJSON(data)
//	reg, _ := taxonomy.FromExport(exp)
//
// # Forbidden Keys
//
// Keys matching the exact list or the pattern are never emitted, even if a
// future registry edit carelessly allowlists one. Both checks run on every
// key; the overlap between list and pattern is intentional.
package taxonomy
