// Package sanitize validates raw telemetry properties against the taxonomy
// and strips events down to their approved, privacy-safe shape.
//
// Two layers:
//
//   - Value checks a single raw value against one schema entry. No partial
//     results, no cross-type coercion; a rejected value is equivalent to an
//     absent key.
//   - Validator combines the registry and Value: for event E and raw bag P it
//     produces the maximal safe subset of P, or nil when E's contract cannot
//     be satisfied.
//
// Every failure mode resolves to "drop this key" or "drop this event".
// Nothing in this package panics or returns an error to the caller; telemetry
// loss is silent and never affects the feature being instrumented.
package sanitize
