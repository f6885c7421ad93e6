// Package track dispatches validated telemetry events to analytics providers.
//
// # Overview
//
//   - Tracker: the fire-and-forget entry point; validates via the sanitize
//     package and hands the result to a Provider
//   - Provider: the outbound sink contract, with NoopProvider, ProviderFunc,
//     and MultiProvider fan-out
//   - SQLiteCapture: a Provider that journals sanitized events locally
//   - MarkSeenCoordinator: caller-side debounce and single-flight state for
//     the mark-seen flow
//
// # Failure Isolation
//
// Telemetry must never break the feature it instruments. TrackEvent absorbs
// every failure: unknown events and contract violations are dropped by
// validation, and provider errors and panics are recovered, counted, and
// logged at debug level. Nothing ever propagates to the caller.
//
// # Concurrency
//
// The Tracker is stateless per call and safe for concurrent use. Each
// TrackEvent invocation is independent and order-insensitive. The only
// stateful piece is MarkSeenCoordinator, which serializes its own
// transitions under a mutex.
package track
