package schema

import "fmt"

// Kind identifies which variant a Type holds.
type Kind int

const (
	// KindString expects a JSON string.
	KindString Kind = iota

	// KindInt expects a 64-bit signed integer.
	KindInt

	// KindFloat expects a 64-bit floating point number.
	KindFloat

	// KindBool expects a boolean.
	KindBool

	// KindNull expects the null value.
	KindNull

	// KindArray expects an ordered sequence; Elem describes the items.
	KindArray

	// KindMap expects a string-keyed object with uniform values;
	// Key and Val describe them.
	KindMap

	// KindObject expects an object with named properties.
	KindObject

	// KindEnum expects one of a fixed, ordered list of string values.
	KindEnum

	// KindOptional accepts null or the element type.
	KindOptional

	// KindAnyOf accepts the first matching variant, in declared order.
	KindAnyOf

	// KindRef names a class or enum resolved against a registry.
	KindRef

	// KindReference is an unvalidated pass-through to a named type
	// owned elsewhere. Values are accepted as-is.
	KindReference

	// KindLiteralString expects exactly one string value.
	KindLiteralString

	// KindLiteralInt expects exactly one integer value.
	KindLiteralInt

	// KindLiteralBool expects exactly one boolean value.
	KindLiteralBool
)

// String returns a readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindObject:
		return "object"
	case KindEnum:
		return "enum"
	case KindOptional:
		return "optional"
	case KindAnyOf:
		return "anyOf"
	case KindRef:
		return "ref"
	case KindReference:
		return "reference"
	case KindLiteralString:
		return "literal string"
	case KindLiteralInt:
		return "literal int"
	case KindLiteralBool:
		return "literal bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Property is one named member of an object schema. Order is
// significant: renders of the same schema list properties in
// declaration order.
type Property struct {
	Name        string
	Type        Type
	Description string
}

// Type describes an expected shape. Only the fields relevant to Kind
// are populated; use the constructor functions rather than building
// literals by hand.
type Type struct {
	Kind Kind

	// Elem is the item type of an array or the wrapped type of an
	// optional.
	Elem *Type

	// Key and Val describe map schemas. Keys are always strings in
	// JSON, Key is carried for completeness.
	Key *Type
	Val *Type

	// Props and Required describe object schemas. Additional, when
	// non-nil, is the schema for properties not listed in Props;
	// when nil additional properties are rejected.
	Props      []Property
	Required   []string
	Additional *Type

	// Values holds the ordered values of an enum schema.
	Values []string

	// Name is the target of a ref or reference schema.
	Name string

	// Variants holds the members of an anyOf schema, in declared order.
	Variants []Type

	// StrVal, IntVal and BoolVal carry literal payloads.
	StrVal  string
	IntVal  int64
	BoolVal bool
}

// String creates a string schema.
func String() Type { return Type{Kind: KindString} }

// Int creates an integer schema.
func Int() Type { return Type{Kind: KindInt} }

// Float creates a float schema.
func Float() Type { return Type{Kind: KindFloat} }

// Bool creates a boolean schema.
func Bool() Type { return Type{Kind: KindBool} }

// Null creates a null schema.
func Null() Type { return Type{Kind: KindNull} }

// Array creates an array schema with the given item type.
func Array(item Type) Type {
	return Type{Kind: KindArray, Elem: &item}
}

// Map creates a map schema with the given key and value types.
func Map(key, val Type) Type {
	return Type{Kind: KindMap, Key: &key, Val: &val}
}

// Object creates an object schema from ordered properties. Names listed
// in required must appear in props.
func Object(props []Property, required ...string) Type {
	cp := make([]Property, len(props))
	copy(cp, props)
	req := make([]string, len(required))
	copy(req, required)
	return Type{Kind: KindObject, Props: cp, Required: req}
}

// Enum creates an enum schema over the given values, order preserved.
func Enum(values ...string) Type {
	cp := make([]string, len(values))
	copy(cp, values)
	return Type{Kind: KindEnum, Values: cp}
}

// Optional wraps a type so that null is also accepted.
func Optional(t Type) Type {
	return Type{Kind: KindOptional, Elem: &t}
}

// AnyOf creates a union schema. Coercion tries variants in the given
// order and the first success wins.
func AnyOf(variants ...Type) Type {
	cp := make([]Type, len(variants))
	copy(cp, variants)
	return Type{Kind: KindAnyOf, Variants: cp}
}

// Ref creates a schema naming a class or enum registered in a registry.
func Ref(name string) Type { return Type{Kind: KindRef, Name: name} }

// Reference creates an unvalidated pass-through schema for a named type
// owned by an external runtime.
func Reference(name string) Type { return Type{Kind: KindReference, Name: name} }

// LiteralString creates a schema matching exactly one string value.
func LiteralString(v string) Type { return Type{Kind: KindLiteralString, StrVal: v} }

// LiteralInt creates a schema matching exactly one integer value.
func LiteralInt(v int64) Type { return Type{Kind: KindLiteralInt, IntVal: v} }

// LiteralBool creates a schema matching exactly one boolean value.
func LiteralBool(v bool) Type { return Type{Kind: KindLiteralBool, BoolVal: v} }

// IsRequired reports whether an object schema lists name as required.
func (t Type) IsRequired(name string) bool {
	for _, r := range t.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Property returns the named object property and whether it exists.
func (t Type) Property(name string) (Property, bool) {
	for _, p := range t.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
