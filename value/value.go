package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNull represents the JSON null value.
	KindNull Kind = iota

	// KindBool represents a JSON boolean.
	KindBool

	// KindInt represents a whole number stored as a 64-bit signed integer.
	KindInt

	// KindFloat represents a 64-bit floating point number.
	KindFloat

	// KindString represents a JSON string.
	KindString

	// KindArray represents an ordered sequence of values.
	KindArray

	// KindMap represents a string-keyed object. Key order is not significant.
	KindMap
)

// String returns the lowercase name of the kind, matching the wording
// used in error messages ("expected bool, got string").
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable JSON-like datum. The zero Value is null.
//
// Values are strictly tree-shaped: constructors copy the collections
// they are given, and accessors return copies, so no two Values ever
// share mutable state.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	m    map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value holding a copy of items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: cp}
}

// Map returns a map Value holding a copy of entries.
func Map(entries map[string]Value) Value {
	cp := make(map[string]Value, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload. It is only meaningful when
// Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. It is only meaningful when
// Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. It is only meaningful when
// Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload. It is only meaningful when
// Kind() == KindString.
func (v Value) Str() string { return v.s }

// Len returns the number of elements in an array or entries in a map,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Index returns the i-th element of an array value.
// It panics if the value is not an array or the index is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		panic(fmt.Sprintf("value: Index on %s value", v.kind))
	}
	return v.arr[i]
}

// Items returns a copy of the array elements, or nil for non-arrays.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp
}

// Field returns the named map entry and whether it was present.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	e, ok := v.m[name]
	return e, ok
}

// Keys returns the map keys in sorted order for deterministic iteration,
// or nil for non-maps.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns a copy of the map entries, or nil for non-maps.
func (v Value) Fields() map[string]Value {
	if v.kind != KindMap {
		return nil
	}
	cp := make(map[string]Value, len(v.m))
	for k, e := range v.m {
		cp[k] = e
	}
	return cp
}

// Equal reports deep semantic equality. Int and float values compare
// equal only to their own kind; 1 and 1.0 are distinct.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, e := range v.m {
			o, ok := other.m[k]
			if !ok || !e.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ToNative converts the Value into plain Go data: nil, bool, int64,
// float64, string, []any or map[string]any. The result shares no state
// with the receiver.
func (v Value) ToNative() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToNative()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.ToNative()
		}
		return out
	default:
		return nil
	}
}

// FromNative converts plain Go data into a Value. Whole-valued float64
// inputs remain floats; use Int explicitly for integer values. Supported
// inputs are nil, bool, every signed/unsigned integer width, float32/64,
// string, []any and map[string]any.
func FromNative(data any) (Value, error) {
	switch d := data.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(d), nil
	case int:
		return Int(int64(d)), nil
	case int8:
		return Int(int64(d)), nil
	case int16:
		return Int(int64(d)), nil
	case int32:
		return Int(int64(d)), nil
	case int64:
		return Int(d), nil
	case uint:
		return Int(int64(d)), nil
	case uint8:
		return Int(int64(d)), nil
	case uint16:
		return Int(int64(d)), nil
	case uint32:
		return Int(int64(d)), nil
	case uint64:
		if d > math.MaxInt64 {
			return Value{}, fmt.Errorf("value: uint64 %d overflows int64", d)
		}
		return Int(int64(d)), nil
	case float32:
		return Float(float64(d)), nil
	case float64:
		return Float(d), nil
	case string:
		return String(d), nil
	case []any:
		items := make([]Value, len(d))
		for i, e := range d {
			v, err := FromNative(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		m := make(map[string]Value, len(d))
		for k, e := range d {
			v, err := FromNative(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Value{kind: KindMap, m: m}, nil
	default:
		return Value{}, fmt.Errorf("value: unsupported native type %T", data)
	}
}

// String renders a compact diagnostic form. It is not guaranteed to be
// valid JSON; use Encode for serialization.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindArray:
		return fmt.Sprintf("array(len=%d)", len(v.arr))
	case KindMap:
		return fmt.Sprintf("map(len=%d)", len(v.m))
	default:
		return v.kind.String()
	}
}
