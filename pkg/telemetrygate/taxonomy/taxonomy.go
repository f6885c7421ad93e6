package taxonomy

import (
	"fmt"
	"sort"
)

// EventName identifies one known telemetry event. The set of names is closed:
// anything outside it is categorically invalid and never reaches a provider.
type EventName string

// The full event set. Validation entry points accept arbitrary strings and
// map them into this set or reject them.
const (
	EventOpenPanel       EventName = "whats_new.open_panel"
	EventOpenPage        EventName = "whats_new.open_page"
	EventOpenPost        EventName = "whats_new.open_post"
	EventMarkSeenSuccess EventName = "whats_new.mark_seen_success"
	EventMarkSeenFailure EventName = "whats_new.mark_seen_failure"
	EventLoadMore        EventName = "whats_new.load_more"
)

// PropertyKey identifies one known property. Each key has exactly one schema
// entry in the registry.
type PropertyKey string

// The full property set.
const (
	KeySurface    PropertyKey = "surface"
	KeyTenantID   PropertyKey = "tenant_id"
	KeyUserID     PropertyKey = "user_id"
	KeyPostID     PropertyKey = "post_id"
	KeySlug       PropertyKey = "slug"
	KeyResult     PropertyKey = "result"
	KeyErrorCode  PropertyKey = "error_code"
	KeyPagination PropertyKey = "pagination"
)

// Contract describes what one event may and must carry.
type Contract struct {
	// Allowlist is the ordered set of keys this event may ever carry.
	// Keys outside it are dropped even when present and well-formed.
	Allowlist []PropertyKey

	// Required is the subset of Allowlist that must survive sanitization,
	// or the whole event is rejected.
	Required []PropertyKey

	// RequiresPostIdentity layers an or-constraint on top of Required:
	// after sanitization at least one of post_id or slug must be a
	// non-empty string.
	RequiresPostIdentity bool
}

// Registry is the single source of truth for the event taxonomy. It is
// immutable after construction; every enforcement site reads the same table.
type Registry struct {
	schemas   map[PropertyKey]PropType
	contracts map[EventName]Contract
	forbidden *ForbiddenKeys
}

// NewRegistry builds a Registry from a schema table, per-event contracts, and
// a forbidden-key set, checking the authoring invariants: every allowlisted
// key has a schema, required is a subset of the allowlist, and no allowlisted
// key matches the forbidden set.
func NewRegistry(schemas map[PropertyKey]PropType, contracts map[EventName]Contract, forbidden *ForbiddenKeys) (*Registry, error) {
	if forbidden == nil {
		return nil, fmt.Errorf("taxonomy: forbidden key set is required")
	}
	for name, c := range contracts {
		allowed := make(map[PropertyKey]struct{}, len(c.Allowlist))
		for _, k := range c.Allowlist {
			if _, ok := schemas[k]; !ok {
				return nil, fmt.Errorf("taxonomy: event %s allows %s which has no schema", name, k)
			}
			if forbidden.Blocked(string(k)) {
				return nil, fmt.Errorf("taxonomy: event %s allows forbidden key %s", name, k)
			}
			allowed[k] = struct{}{}
		}
		for _, k := range c.Required {
			if _, ok := allowed[k]; !ok {
				return nil, fmt.Errorf("taxonomy: event %s requires %s outside its allowlist", name, k)
			}
		}
	}
	// Copy the tables so callers cannot mutate the registry afterwards.
	sc := make(map[PropertyKey]PropType, len(schemas))
	for k, v := range schemas {
		sc[k] = v
	}
	ct := make(map[EventName]Contract, len(contracts))
	for k, v := range contracts {
		ct[k] = Contract{
			Allowlist:            append([]PropertyKey(nil), v.Allowlist...),
			Required:             append([]PropertyKey(nil), v.Required...),
			RequiresPostIdentity: v.RequiresPostIdentity,
		}
	}
	return &Registry{schemas: sc, contracts: ct, forbidden: forbidden}, nil
}

// defaultRegistry is built once at load time.
var defaultRegistry = mustDefault()

func mustDefault() *Registry {
	schemas := map[PropertyKey]PropType{
		KeySurface:    StringType{Enum: []string{"panel", "page"}},
		KeyTenantID:   StringType{},
		KeyUserID:     StringType{},
		KeyPostID:     StringType{},
		KeySlug:       StringType{},
		KeyResult:     StringType{Enum: []string{"success", "failure"}},
		KeyErrorCode:  StringType{},
		KeyPagination: ObjectType{Fields: []Field{
			{Key: "limit", Type: NumberType{}, Required: true},
			{Key: "cursor_present", Type: BoolType{}, Required: true},
			{Key: "page_index", Type: NumberType{}},
		}},
	}

	identity := []PropertyKey{KeySurface, KeyTenantID, KeyUserID}

	contracts := map[EventName]Contract{
		EventOpenPanel: {
			Allowlist: identity,
			Required:  []PropertyKey{KeySurface},
		},
		EventOpenPage: {
			Allowlist: identity,
			Required:  []PropertyKey{KeySurface},
		},
		EventOpenPost: {
			Allowlist:            append(append([]PropertyKey(nil), identity...), KeyPostID, KeySlug),
			Required:             []PropertyKey{KeySurface},
			RequiresPostIdentity: true,
		},
		EventMarkSeenSuccess: {
			Allowlist: append(append([]PropertyKey(nil), identity...), KeyResult),
			Required:  []PropertyKey{KeySurface, KeyResult},
		},
		EventMarkSeenFailure: {
			Allowlist: append(append([]PropertyKey(nil), identity...), KeyResult, KeyErrorCode),
			Required:  []PropertyKey{KeySurface, KeyResult, KeyErrorCode},
		},
		EventLoadMore: {
			Allowlist: append(append([]PropertyKey(nil), identity...), KeyPagination),
			Required:  []PropertyKey{KeySurface},
		},
	}

	reg, err := NewRegistry(schemas, contracts, DefaultForbiddenKeys())
	if err != nil {
		panic("taxonomy: default registry is invalid: " + err.Error())
	}
	return reg
}

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

// Resolve maps a runtime string onto the closed event set.
func (r *Registry) Resolve(name string) (EventName, bool) {
	e := EventName(name)
	_, ok := r.contracts[e]
	return e, ok
}

// Contract returns the contract for a known event.
func (r *Registry) Contract(name EventName) (Contract, bool) {
	c, ok := r.contracts[name]
	return c, ok
}

// Schema returns the schema entry for a property key.
func (r *Registry) Schema(key PropertyKey) (PropType, bool) {
	t, ok := r.schemas[key]
	return t, ok
}

// Forbidden returns the deny list shared by every enforcement site.
func (r *Registry) Forbidden() *ForbiddenKeys {
	return r.forbidden
}

// EventNames returns all known event names in sorted order.
func (r *Registry) EventNames() []EventName {
	out := make([]EventName, 0, len(r.contracts))
	for name := range r.contracts {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PropertyKeys returns all known property keys in sorted order.
func (r *Registry) PropertyKeys() []PropertyKey {
	out := make([]PropertyKey, 0, len(r.schemas))
	for key := range r.schemas {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
