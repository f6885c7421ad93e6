package sanitize_test

import (
	"reflect"
	"testing"

	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/sanitize"
	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/taxonomy"
)

func newValidator() *sanitize.Validator {
	return sanitize.NewValidator(taxonomy.Default())
}

func TestValidateUnknownEvent(t *testing.T) {
	v := newValidator()

	if got := v.Validate("whats_new.reticulate", map[string]any{"surface": "panel"}); got != nil {
		t.Errorf("expected nil for unknown event, got %v", got)
	}
	_, reason := v.ValidateReason("whats_new.reticulate", nil)
	if reason != sanitize.RejectUnknownEvent {
		t.Errorf("expected unknown_event, got %s", reason)
	}
}

func TestValidateOpenPostIdentity(t *testing.T) {
	v := newValidator()

	t.Run("slug satisfies identity when post_id is empty", func(t *testing.T) {
		got := v.Validate("whats_new.open_post", map[string]any{
			"surface": "panel",
			"post_id": "",
			"slug":    "v2-release",
		})
		if got == nil {
			t.Fatal("expected event to pass")
		}
		if got["slug"] != "v2-release" {
			t.Errorf("expected slug to survive, got %v", got["slug"])
		}
		if _, present := got["post_id"]; present {
			t.Error("empty post_id must not appear in output")
		}
	})

	t.Run("post_id alone satisfies identity", func(t *testing.T) {
		got := v.Validate("whats_new.open_post", map[string]any{
			"surface": "page",
			"post_id": "post-81",
		})
		if got == nil || got["post_id"] != "post-81" {
			t.Fatalf("expected post_id to survive, got %v", got)
		}
	})

	t.Run("neither rejects the event", func(t *testing.T) {
		got, reason := v.ValidateReason("whats_new.open_post", map[string]any{
			"surface": "panel",
		})
		if got != nil {
			t.Fatal("expected rejection without post identity")
		}
		if reason != sanitize.RejectMissingPostIdentity {
			t.Errorf("expected missing_post_identity, got %s", reason)
		}
	})
}

func TestValidateMissingRequired(t *testing.T) {
	v := newValidator()

	got, reason := v.ValidateReason("whats_new.mark_seen_failure", map[string]any{
		"surface": "page",
		"result":  "failure",
	})
	if got != nil {
		t.Fatal("expected rejection without error_code")
	}
	if reason != sanitize.RejectMissingRequired {
		t.Errorf("expected missing_required, got %s", reason)
	}

	// With error_code present the same bag passes.
	got = v.Validate("whats_new.mark_seen_failure", map[string]any{
		"surface":    "page",
		"result":     "failure",
		"error_code": "network",
	})
	if got == nil || got["error_code"] != "network" {
		t.Fatalf("expected event to pass with error_code, got %v", got)
	}
}

func TestValidateLoadMorePagination(t *testing.T) {
	v := newValidator()

	got := v.Validate("whats_new.load_more", map[string]any{
		"surface": "page",
		"pagination": map[string]any{
			"limit":          12,
			"cursor_present": true,
			"page_index":     2,
		},
	})
	if got == nil {
		t.Fatal("expected event to pass")
	}
	pagination, ok := got["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination object, got %T", got["pagination"])
	}
	want := map[string]any{"limit": 12.0, "cursor_present": true, "page_index": 2.0}
	if !reflect.DeepEqual(pagination, want) {
		t.Errorf("pagination = %v, want %v", pagination, want)
	}
}

func TestValidateDropsNonAllowlistedAndForbidden(t *testing.T) {
	v := newValidator()

	got := v.Validate("whats_new.open_panel", map[string]any{
		"surface": "panel",
		"title":   "Secret internal title",
	})
	if got == nil {
		t.Fatal("expected event to pass")
	}
	if !reflect.DeepEqual(got, map[string]any{"surface": "panel"}) {
		t.Errorf("expected only surface to survive, got %v", got)
	}
}

func TestValidateMalformedInput(t *testing.T) {
	v := newValidator()

	// A nil bag degrades to empty, which fails the surface requirement.
	if got := v.Validate("whats_new.open_panel", nil); got != nil {
		t.Errorf("expected nil bag to reject open_panel, got %v", got)
	}

	// Garbage values never panic; they are just dropped.
	got := v.Validate("whats_new.open_panel", map[string]any{
		"surface":   "panel",
		"tenant_id": 42,
		"user_id":   []string{"nope"},
	})
	if got == nil {
		t.Fatal("expected event to pass on surface alone")
	}
	if len(got) != 1 {
		t.Errorf("expected mistyped values to be dropped, got %v", got)
	}
}

func TestValidateOutputSubsetOfAllowlist(t *testing.T) {
	v := newValidator()
	reg := taxonomy.Default()

	raw := map[string]any{
		"surface":    "panel",
		"tenant_id":  "acme",
		"user_id":    "u-9",
		"post_id":    "p-1",
		"slug":       "hello",
		"result":     "success",
		"error_code": "none",
		"pagination": map[string]any{"limit": 1, "cursor_present": false},
		"body":       "full post body",
		"rando":      "junk",
	}

	for _, name := range reg.EventNames() {
		got := v.Validate(string(name), raw)
		if got == nil {
			continue
		}
		contract, _ := reg.Contract(name)
		allowed := make(map[string]bool, len(contract.Allowlist))
		for _, key := range contract.Allowlist {
			allowed[string(key)] = true
		}
		for key := range got {
			if !allowed[key] {
				t.Errorf("%s: output key %q outside allowlist", name, key)
			}
			if reg.Forbidden().Blocked(key) {
				t.Errorf("%s: output key %q is forbidden", name, key)
			}
		}
	}
}

func TestValidateIdempotent(t *testing.T) {
	v := newValidator()

	raw := map[string]any{
		"surface": "page",
		"slug":    "release-notes",
		"post_id": "p-7",
	}
	first := v.Validate("whats_new.open_post", raw)
	if first == nil {
		t.Fatal("expected first pass to succeed")
	}
	second := v.Validate("whats_new.open_post", first)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("sanitization not idempotent: %v then %v", first, second)
	}
}

func TestValidatorDefaultsToBuiltinRegistry(t *testing.T) {
	v := sanitize.NewValidator(nil)
	if v.Registry() != taxonomy.Default() {
		t.Error("nil registry should fall back to the default")
	}
	if got := v.Validate("whats_new.open_panel", map[string]any{"surface": "panel"}); got == nil {
		t.Error("expected default validator to accept open_panel")
	}
}
