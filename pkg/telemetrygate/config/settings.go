package config

import (
	"time"
)

// Defaults for Settings fields.
const (
	DefaultSurface          = "panel"
	DefaultMarkSeenDebounce = 30 * time.Second
)

// Settings is the typed telemetry configuration extracted from a Config.
type Settings struct {
	// Enabled gates telemetry entirely. When false, wire a no-op provider.
	Enabled bool

	// Surface is the surface property stamped on UI-driven events:
	// "panel" or "page".
	Surface string

	// CapturePath, when non-empty, enables the local SQLite capture journal
	// at this path.
	CapturePath string

	// MarkSeenDebounce suppresses repeat mark-seen calls after a success.
	MarkSeenDebounce time.Duration
}

// SettingsFrom extracts telemetry settings, falling back to defaults for
// missing or mistyped keys. Recognized keys: enabled, surface, capture_path,
// mark_seen_debounce.
func SettingsFrom(c Config) Settings {
	return Settings{
		Enabled:          c.Bool("enabled", true),
		Surface:          c.String("surface", DefaultSurface),
		CapturePath:      c.String("capture_path", ""),
		MarkSeenDebounce: c.Duration("mark_seen_debounce", DefaultMarkSeenDebounce),
	}
}
