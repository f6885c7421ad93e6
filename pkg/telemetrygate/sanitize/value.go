package sanitize

import (
	"math"
	"strings"

	"github.com/whatsnewkit/telemetrygate/pkg/telemetrygate/taxonomy"
)

// Value coerces a single raw value against a schema entry. It returns the
// accepted value and true, or nil and false. There are no partial results and
// no cross-type coercion: the string "42" is never turned into the number 42,
// and a rejected value is indistinguishable downstream from an absent key.
//
// Accepted numbers are normalized to float64 so repeated sanitization is
// idempotent regardless of the caller's original numeric type.
func Value(t taxonomy.PropType, raw any) (any, bool) {
	switch schema := t.(type) {
	case taxonomy.StringType:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" || !schema.AllowsValue(s) {
			return nil, false
		}
		return s, true

	case taxonomy.NumberType:
		n, ok := asFiniteNumber(raw)
		if !ok {
			return nil, false
		}
		return n, true

	case taxonomy.BoolType:
		b, ok := raw.(bool)
		if !ok {
			return nil, false
		}
		return b, true

	case taxonomy.ObjectType:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(schema.Fields))
		for _, f := range schema.Fields {
			rv, present := m[f.Key]
			if !present {
				continue
			}
			v, accepted := Value(f.Type, rv)
			if accepted {
				out[f.Key] = v
			}
		}
		// Unknown sub-keys were never copied; now enforce required ones.
		for _, f := range schema.Fields {
			if !f.Required {
				continue
			}
			if _, present := out[f.Key]; !present {
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// asFiniteNumber accepts Go's numeric kinds and rejects NaN and infinities.
// JSON decoding hands us float64; in-process callers commonly pass int.
func asFiniteNumber(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
