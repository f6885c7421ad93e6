package identity_test

import (
	"strings"
	"testing"

	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/identity"
)

func TestHashTenantIDDeterministic(t *testing.T) {
	first, ok := identity.HashTenantID("tenant-42")
	if !ok {
		t.Fatal("expected tenant-42 to hash")
	}
	second, ok := identity.HashTenantID("tenant-42")
	if !ok {
		t.Fatal("expected tenant-42 to hash")
	}
	if first != second {
		t.Errorf("hash not deterministic: %s vs %s", first, second)
	}
}

func TestHashTenantIDFormat(t *testing.T) {
	token, ok := identity.HashTenantID("acme")
	if !ok {
		t.Fatal("expected acme to hash")
	}
	if !strings.HasPrefix(token, identity.TokenPrefix) {
		t.Errorf("token missing prefix: %s", token)
	}
	hexPart := strings.TrimPrefix(token, identity.TokenPrefix)
	if len(hexPart) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(hexPart))
	}
	if hexPart != strings.ToLower(hexPart) {
		t.Error("hex must be lowercase")
	}
	for _, r := range hexPart {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("non-hex rune %q in token", r)
		}
	}
}

func TestHashTenantIDRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if token, ok := identity.HashTenantID(input); ok || token != "" {
			t.Errorf("expected %q to be rejected, got %q", input, token)
		}
	}
}

func TestHashTenantIDTrims(t *testing.T) {
	plain, _ := identity.HashTenantID("tenant-42")
	padded, _ := identity.HashTenantID("  tenant-42  ")
	if plain != padded {
		t.Error("padded identifier should hash identically to trimmed")
	}
}

func TestHashTenantIDDistinguishesTenants(t *testing.T) {
	a, _ := identity.HashTenantID("tenant-a")
	b, _ := identity.HashTenantID("tenant-b")
	if a == b {
		t.Error("different tenants must not collide trivially")
	}
}
