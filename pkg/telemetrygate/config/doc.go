// Package config provides configuration loading for the telemetry gate.
//
// Configuration can be loaded from YAML or JSON files:
//
//	cfg, err := config.FromFile("telemetry.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings := config.SettingsFrom(cfg)
//
// Config is a thin accessor over map[string]any: missing or mistyped keys
// fall back to the caller's default rather than erroring, so a partial file
// still yields a usable configuration. SettingsFrom extracts the typed
// telemetry settings the track package consumes.
package config
