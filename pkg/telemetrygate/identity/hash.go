// Package identity provides presentation-safe tokens for tenant identifiers.
//
// Client-visible markup may need a tenant-scoped identifier for correlation
// and debugging, but the raw tenant identifier must never be exposed.
// HashTenantID derives a deterministic, one-way token instead.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// tenantNamespace is the fixed domain-separation prefix for tenant tokens.
// Changing it changes every issued token; treat it as part of the format.
const tenantNamespace = "whatsnew.tenant"

// TokenPrefix identifies the digest algorithm in issued tokens.
const TokenPrefix = "sha256:"

// HashTenantID maps a raw tenant identifier onto a stable token of the form
// "sha256:<lowercase hex>". It returns false for empty or whitespace-only
// input. The same tenant always yields the same token, and the token is not
// reversible.
func HashTenantID(tenantID string) (string, bool) {
	trimmed := strings.TrimSpace(tenantID)
	if trimmed == "" {
		return "", false
	}
	sum := sha256.Sum256([]byte(tenantNamespace + ":" + trimmed))
	return TokenPrefix + hex.EncodeToString(sum[:]), true
}
