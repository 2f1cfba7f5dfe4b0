package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zero-day-ai/structured/registry"
	"github.com/zero-day-ai/structured/schema"
	"github.com/zero-day-ai/structured/value"
)

// CoercionError reports that a value could not be converted to the
// expected schema kind. Both sides of the mismatch are carried so the
// caller can surface them.
type CoercionError struct {
	// Expected describes the schema kind the value was coerced toward.
	Expected string

	// Actual describes the observed kind of the offending value.
	Actual string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coerce: expected %s, got %s", e.Expected, e.Actual)
}

func mismatch(t schema.Type, v value.Value) error {
	return &CoercionError{Expected: describe(t), Actual: v.Kind().String()}
}

// describe renders a schema type for error messages.
func describe(t schema.Type) string {
	switch t.Kind {
	case schema.KindArray:
		return describe(*t.Elem) + "[]"
	case schema.KindMap:
		return "map<string, " + describe(*t.Val) + ">"
	case schema.KindOptional:
		return describe(*t.Elem) + " | null"
	case schema.KindAnyOf:
		parts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			parts[i] = describe(v)
		}
		return "anyOf(" + strings.Join(parts, " | ") + ")"
	case schema.KindRef, schema.KindReference:
		return t.Kind.String() + "(" + t.Name + ")"
	case schema.KindEnum:
		return "enum(" + strings.Join(t.Values, " | ") + ")"
	case schema.KindLiteralString:
		return strconv.Quote(t.StrVal)
	case schema.KindLiteralInt:
		return "literal " + strconv.FormatInt(t.IntVal, 10)
	case schema.KindLiteralBool:
		return "literal " + strconv.FormatBool(t.BoolVal)
	default:
		return t.Kind.String()
	}
}

// Coerce converts v into a value satisfying t, without a registry for
// ref resolution. It is pure: no inputs are modified and no state is
// kept between calls.
func Coerce(v value.Value, t schema.Type) (value.Value, error) {
	return CoerceWithRegistry(v, t, nil)
}

// CoerceWithRegistry converts v into a value satisfying t, resolving
// ref schemas against reg. A ref that cannot be resolved fails with a
// CoercionError.
func CoerceWithRegistry(v value.Value, t schema.Type, reg *registry.Registry) (value.Value, error) {
	switch t.Kind {
	case schema.KindString:
		return coerceString(v, t)
	case schema.KindInt:
		return coerceInt(v, t)
	case schema.KindFloat:
		return coerceFloat(v, t)
	case schema.KindBool:
		return coerceBool(v, t)
	case schema.KindNull:
		if v.IsNull() {
			return v, nil
		}
		return value.Value{}, mismatch(t, v)
	case schema.KindOptional:
		if v.IsNull() {
			return v, nil
		}
		return CoerceWithRegistry(v, *t.Elem, reg)
	case schema.KindArray:
		return coerceArray(v, t, reg)
	case schema.KindMap:
		return coerceMap(v, t, reg)
	case schema.KindObject:
		return coerceObject(v, t, reg)
	case schema.KindEnum:
		return coerceEnum(v, t)
	case schema.KindAnyOf:
		return coerceUnion(v, t, reg)
	case schema.KindRef:
		if reg != nil {
			// Enums resolved by name carry alias spellings that the bare
			// schema type does not; match against the full entry set.
			if eb, ok := reg.LookupEnum(t.Name); ok {
				return coerceEnumEntries(v, eb)
			}
			if resolved, ok := reg.Resolve(t.Name); ok {
				return CoerceWithRegistry(v, resolved, reg)
			}
		}
		return value.Value{}, mismatch(t, v)
	case schema.KindReference:
		// Unvalidated escape hatch: the named type is owned elsewhere.
		return v, nil
	case schema.KindLiteralString, schema.KindLiteralInt, schema.KindLiteralBool:
		return coerceLiteral(v, t)
	default:
		return value.Value{}, mismatch(t, v)
	}
}

// coerceString renders scalars in their canonical text form. Composite
// values and null never become strings.
func coerceString(v value.Value, t schema.Type) (value.Value, error) {
	switch v.Kind() {
	case value.KindString:
		return v, nil
	case value.KindInt:
		return value.String(strconv.FormatInt(v.Int(), 10)), nil
	case value.KindFloat:
		return value.String(strconv.FormatFloat(v.Float(), 'g', -1, 64)), nil
	case value.KindBool:
		return value.String(strconv.FormatBool(v.Bool())), nil
	default:
		return value.Value{}, mismatch(t, v)
	}
}

func coerceInt(v value.Value, t schema.Type) (value.Value, error) {
	switch v.Kind() {
	case value.KindInt:
		return v, nil
	case value.KindFloat:
		return floatToInt(v.Float(), t, v)
	case value.KindString:
		s := strings.TrimSpace(v.Str())
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.Int(i), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f, t, v)
		}
		return value.Value{}, mismatch(t, v)
	case value.KindBool:
		if v.Bool() {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	default:
		return value.Value{}, mismatch(t, v)
	}
}

// floatToInt narrows a float only when it has no fractional part.
func floatToInt(f float64, t schema.Type, orig value.Value) (value.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return value.Value{}, mismatch(t, orig)
	}
	if f < math.MinInt64 || f > math.MaxInt64 {
		return value.Value{}, mismatch(t, orig)
	}
	return value.Int(int64(f)), nil
}

func coerceFloat(v value.Value, t schema.Type) (value.Value, error) {
	switch v.Kind() {
	case value.KindFloat:
		return v, nil
	case value.KindInt:
		return value.Float(float64(v.Int())), nil
	case value.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return value.Value{}, mismatch(t, v)
		}
		return value.Float(f), nil
	default:
		// Bool is deliberately rejected here while int accepts it;
		// the asymmetry matches the coercion table.
		return value.Value{}, mismatch(t, v)
	}
}

func coerceBool(v value.Value, t schema.Type) (value.Value, error) {
	switch v.Kind() {
	case value.KindBool:
		return v, nil
	case value.KindInt:
		return value.Bool(v.Int() != 0), nil
	case value.KindString:
		switch strings.ToLower(strings.TrimSpace(v.Str())) {
		case "true", "1", "yes":
			return value.Bool(true), nil
		case "false", "0", "no":
			return value.Bool(false), nil
		}
		return value.Value{}, mismatch(t, v)
	default:
		return value.Value{}, mismatch(t, v)
	}
}

func coerceArray(v value.Value, t schema.Type, reg *registry.Registry) (value.Value, error) {
	if v.Kind() != value.KindArray {
		return value.Value{}, mismatch(t, v)
	}
	items := make([]value.Value, v.Len())
	for i := 0; i < v.Len(); i++ {
		coerced, err := CoerceWithRegistry(v.Index(i), *t.Elem, reg)
		if err != nil {
			return value.Value{}, err
		}
		items[i] = coerced
	}
	return value.Array(items...), nil
}

func coerceMap(v value.Value, t schema.Type, reg *registry.Registry) (value.Value, error) {
	if v.Kind() != value.KindMap {
		return value.Value{}, mismatch(t, v)
	}
	out := make(map[string]value.Value, v.Len())
	for _, k := range v.Keys() {
		e, _ := v.Field(k)
		coerced, err := CoerceWithRegistry(e, *t.Val, reg)
		if err != nil {
			return value.Value{}, err
		}
		out[k] = coerced
	}
	return value.Map(out), nil
}

// coerceObject coerces declared properties and keeps undeclared keys
// only when the schema allows additional properties. Missing required
// keys are reported by the validation pass, not here.
func coerceObject(v value.Value, t schema.Type, reg *registry.Registry) (value.Value, error) {
	if v.Kind() != value.KindMap {
		return value.Value{}, mismatch(t, v)
	}

	out := make(map[string]value.Value, v.Len())
	declared := make(map[string]bool, len(t.Props))
	for _, p := range t.Props {
		declared[p.Name] = true
		e, ok := v.Field(p.Name)
		if !ok {
			continue
		}
		coerced, err := CoerceWithRegistry(e, p.Type, reg)
		if err != nil {
			return value.Value{}, err
		}
		out[p.Name] = coerced
	}

	if t.Additional != nil {
		for _, k := range v.Keys() {
			if declared[k] {
				continue
			}
			e, _ := v.Field(k)
			coerced, err := CoerceWithRegistry(e, *t.Additional, reg)
			if err != nil {
				return value.Value{}, err
			}
			out[k] = coerced
		}
	}

	return value.Map(out), nil
}

// coerceEnum accepts an exact member, or a unique case-insensitive
// match normalized to its canonical spelling.
func coerceEnum(v value.Value, t schema.Type) (value.Value, error) {
	if v.Kind() != value.KindString {
		return value.Value{}, mismatch(t, v)
	}
	s := v.Str()
	for _, allowed := range t.Values {
		if s == allowed {
			return v, nil
		}
	}
	var match string
	var matches int
	for _, allowed := range t.Values {
		if strings.EqualFold(s, allowed) {
			match = allowed
			matches++
		}
	}
	if matches == 1 {
		return value.String(match), nil
	}
	return value.Value{}, mismatch(t, v)
}

// coerceEnumEntries matches against a registered enum's values and
// aliases. An exact value passes through, an exact alias normalizes to
// its canonical value, and otherwise a unique case-insensitive match
// over both spellings is accepted.
func coerceEnumEntries(v value.Value, b *registry.EnumBuilder) (value.Value, error) {
	t := b.Type()
	if v.Kind() != value.KindString {
		return value.Value{}, mismatch(t, v)
	}
	s := v.Str()
	entries := b.Entries()

	for _, e := range entries {
		if s == e.Value {
			return v, nil
		}
	}
	for _, e := range entries {
		if e.Alias != "" && s == e.Alias {
			return value.String(e.Value), nil
		}
	}

	var match string
	var matches int
	for _, e := range entries {
		if strings.EqualFold(s, e.Value) || (e.Alias != "" && strings.EqualFold(s, e.Alias)) {
			match = e.Value
			matches++
		}
	}
	if matches == 1 {
		return value.String(match), nil
	}
	return value.Value{}, mismatch(t, v)
}

// coerceUnion tries the variants in declared order; the first success
// wins even when a later variant would also match.
func coerceUnion(v value.Value, t schema.Type, reg *registry.Registry) (value.Value, error) {
	for _, variant := range t.Variants {
		if coerced, err := CoerceWithRegistry(v, variant, reg); err == nil {
			return coerced, nil
		}
	}
	return value.Value{}, mismatch(t, v)
}

// coerceLiteral applies the same-kind coercion rules, then requires
// exact equality with the literal payload.
func coerceLiteral(v value.Value, t schema.Type) (value.Value, error) {
	switch t.Kind {
	case schema.KindLiteralString:
		coerced, err := coerceString(v, t)
		if err != nil {
			return value.Value{}, err
		}
		if coerced.Str() != t.StrVal {
			return value.Value{}, mismatch(t, v)
		}
		return coerced, nil
	case schema.KindLiteralInt:
		coerced, err := coerceInt(v, t)
		if err != nil {
			return value.Value{}, err
		}
		if coerced.Int() != t.IntVal {
			return value.Value{}, mismatch(t, v)
		}
		return coerced, nil
	case schema.KindLiteralBool:
		coerced, err := coerceBool(v, t)
		if err != nil {
			return value.Value{}, err
		}
		if coerced.Bool() != t.BoolVal {
			return value.Value{}, mismatch(t, v)
		}
		return coerced, nil
	default:
		return value.Value{}, mismatch(t, v)
	}
}
