package taxonomy

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Export is the registry flattened into plain serializable data. A secondary
// enforcement site (for example a browser-embedded copy) reconstructs an
// identical registry from this structure via FromExport, so both sites run
// the same algorithm over the same table instead of hand-duplicated code.
//
// Slices are sorted so serialization is deterministic.
type Export struct {
	Events           []EventExport    `json:"events" yaml:"events"`
	Properties       []PropertyExport `json:"properties" yaml:"properties"`
	ForbiddenExact   []string         `json:"forbidden_exact" yaml:"forbidden_exact"`
	ForbiddenPattern string           `json:"forbidden_pattern" yaml:"forbidden_pattern"`
}

// EventExport carries one event contract.
type EventExport struct {
	Name                 string   `json:"name" yaml:"name"`
	Allowlist            []string `json:"allowlist" yaml:"allowlist"`
	Required             []string `json:"required,omitempty" yaml:"required,omitempty"`
	RequiresPostIdentity bool     `json:"requires_post_identity,omitempty" yaml:"requires_post_identity,omitempty"`
}

// PropertyExport carries one property schema entry.
type PropertyExport struct {
	Key    string        `json:"key" yaml:"key"`
	Type   string        `json:"type" yaml:"type"`
	Enum   []string      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Fields []FieldExport `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldExport carries one declared sub-key of an object-typed property.
type FieldExport struct {
	Key      string `json:"key" yaml:"key"`
	Type     string `json:"type" yaml:"type"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Export flattens the registry into plain data.
func (r *Registry) Export() Export {
	out := Export{
		ForbiddenExact:   r.forbidden.Exact(),
		ForbiddenPattern: r.forbidden.PatternSource(),
	}
	for _, name := range r.EventNames() {
		c := r.contracts[name]
		ev := EventExport{
			Name:                 string(name),
			Allowlist:            keysToStrings(c.Allowlist),
			Required:             keysToStrings(c.Required),
			RequiresPostIdentity: c.RequiresPostIdentity,
		}
		out.Events = append(out.Events, ev)
	}
	for _, key := range r.PropertyKeys() {
		out.Properties = append(out.Properties, exportProp(key, r.schemas[key]))
	}
	return out
}

// ExportJSON serializes the export with stable two-space indentation,
// suitable for embedding into a page or checking into golden fixtures.
func (r *Registry) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r.Export(), "", "  ")
}

// ExportYAML serializes the export as YAML.
func (r *Registry) ExportYAML() ([]byte, error) {
	return yaml.Marshal(r.Export())
}

// FromExport reconstructs a registry from exported data. The result enforces
// exactly the same taxonomy as the registry that produced the export.
func FromExport(e Export) (*Registry, error) {
	forbidden, err := NewForbiddenKeys(e.ForbiddenExact, e.ForbiddenPattern)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: forbidden pattern: %w", err)
	}
	schemas := make(map[PropertyKey]PropType, len(e.Properties))
	for _, p := range e.Properties {
		t, err := importType(p.Type, p.Enum, p.Fields)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: property %s: %w", p.Key, err)
		}
		schemas[PropertyKey(p.Key)] = t
	}
	contracts := make(map[EventName]Contract, len(e.Events))
	for _, ev := range e.Events {
		contracts[EventName(ev.Name)] = Contract{
			Allowlist:            stringsToKeys(ev.Allowlist),
			Required:             stringsToKeys(ev.Required),
			RequiresPostIdentity: ev.RequiresPostIdentity,
		}
	}
	return NewRegistry(schemas, contracts, forbidden)
}

// ParseExportJSON decodes an Export from JSON bytes.
func ParseExportJSON(data []byte) (Export, error) {
	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return Export{}, fmt.Errorf("taxonomy: parse export: %w", err)
	}
	return e, nil
}

func exportProp(key PropertyKey, t PropType) PropertyExport {
	p := PropertyExport{Key: string(key), Type: t.TypeName()}
	switch v := t.(type) {
	case StringType:
		p.Enum = append([]string(nil), v.Enum...)
	case ObjectType:
		for _, f := range v.Fields {
			p.Fields = append(p.Fields, FieldExport{
				Key:      f.Key,
				Type:     f.Type.TypeName(),
				Required: f.Required,
			})
		}
	}
	return p
}

func importType(name string, enum []string, fields []FieldExport) (PropType, error) {
	switch name {
	case "string":
		return StringType{Enum: append([]string(nil), enum...)}, nil
	case "number":
		return NumberType{}, nil
	case "boolean":
		return BoolType{}, nil
	case "object":
		t := ObjectType{}
		for _, f := range fields {
			sub, err := importType(f.Type, nil, nil)
			if err != nil {
				return nil, err
			}
			if _, nested := sub.(ObjectType); nested {
				return nil, fmt.Errorf("object fields cannot nest objects")
			}
			t.Fields = append(t.Fields, Field{Key: f.Key, Type: sub, Required: f.Required})
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown type %q", name)
	}
}

func keysToStrings(keys []PropertyKey) []string {
	if len(keys) == 0 {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

func stringsToKeys(ss []string) []PropertyKey {
	if len(ss) == 0 {
		return nil
	}
	out := make([]PropertyKey, len(ss))
	for i, s := range ss {
		out[i] = PropertyKey(s)
	}
	return out
}
