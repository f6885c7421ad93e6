package taxonomy

// PropType is a sealed interface over the value shapes a property may carry.
// Only StringType, NumberType, BoolType, and ObjectType implement it.
// Adding a new shape means adding a new implementation here, not a new
// special-case branch in the sanitizer.
type PropType interface {
	propType() // Sealed - only these types implement it
	TypeName() string
}

// StringType describes a string-valued property.
// If Enum is non-empty, only those exact values (after trimming) are accepted.
type StringType struct {
	Enum []string
}

func (StringType) propType() {}

// TypeName returns the wire name for this shape.
func (StringType) TypeName() string { return "string" }

// AllowsValue reports whether v is acceptable under the enum constraint.
// An empty enum accepts any non-empty string. Matching is case-sensitive.
func (t StringType) AllowsValue(v string) bool {
	if len(t.Enum) == 0 {
		return true
	}
	for _, e := range t.Enum {
		if v == e {
			return true
		}
	}
	return false
}

// NumberType describes a numeric property. Only finite values are accepted;
// numeric strings are never coerced.
type NumberType struct{}

func (NumberType) propType() {}

// TypeName returns the wire name for this shape.
func (NumberType) TypeName() string { return "number" }

// BoolType describes a boolean property.
type BoolType struct{}

func (BoolType) propType() {}

// TypeName returns the wire name for this shape.
func (BoolType) TypeName() string { return "boolean" }

// ObjectType describes a nested property with a fixed set of sub-keys.
// Unknown sub-keys are dropped during sanitization; missing required
// sub-keys reject the whole object.
type ObjectType struct {
	Fields []Field
}

func (ObjectType) propType() {}

// TypeName returns the wire name for this shape.
func (ObjectType) TypeName() string { return "object" }

// Field is one declared sub-key of an ObjectType.
type Field struct {
	Key      string
	Type     PropType
	Required bool
}

// FieldByKey returns the declared field for key, if any.
func (t ObjectType) FieldByKey(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
