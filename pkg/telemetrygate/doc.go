/*
Package telemetrygate is a schema-driven gatekeeper for outbound product
telemetry: it decides, for every event, whether it may be sent at all and
strips it down to an approved, privacy-safe shape before it reaches an
external analytics provider.

# Overview

The engine is pure validation and redaction. It performs no network I/O,
no storage, and no rendering; event transmission is fire-and-forget and
owned by whatever provider it is handed.

  - taxonomy: the closed, immutable table of events, properties, contracts,
    and forbidden keys
  - sanitize: per-value sanitization and whole-event validation
  - identity: one-way tenant identifier hashing for client-visible surfaces
  - track: the Tracker entry point, provider implementations, and the
    mark-seen coordinator
  - observability: slog helpers plus OpenTelemetry metrics and tracing
  - config: YAML/JSON settings loading

# Basic Usage

	gate := telemetrygate.New(
	    track.WithProvider(myProvider),
	)
	gate.TrackEvent(ctx, "whats_new.open_post", map[string]any{
	    "surface": "panel",
	    "slug":    "v2-release",
	})

Events outside the taxonomy, properties outside an event's allowlist, and
values that fail their schema are dropped silently. A provider that errors
or panics never disturbs the caller.

# Dual Enforcement

The same validation runs in a second, untrusted context by shipping the
taxonomy as data rather than duplicating code:

	data, _ := gate.ExportTaxonomy()
	// embed data; the other site rebuilds via taxonomy.FromExport.
*/
package telemetrygate
