package structured

import (
	"fmt"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/zero-day-ai/structured/value"
)

// decodeValue decodes a validated Value into dest, a non-nil pointer.
//
// Models flip between snake_case and the destination's own field naming
// freely, so decoding runs two attempts: first the map keys are mapped
// from snake_case onto camelCase and decoded strictly (unknown fields
// rejected, which detects a bad mapping); on failure the exact keys are
// decoded leniently. Key mapping only applies to struct-shaped
// destinations, where field names exist to map onto.
func decodeValue(v value.Value, dest any) error {
	if dest == nil {
		return fmt.Errorf("decode destination is nil")
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode destination must be a non-nil pointer, got %T", dest)
	}

	if mapped, ok := transformKeys(v, snakeToCamel); ok && structShaped(rv.Type().Elem()) {
		data, err := json.Marshal(mapped.ToNative())
		if err != nil {
			return fmt.Errorf("encode value: %w", err)
		}
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if dec.Decode(dest) == nil {
			return nil
		}
		// Reset any partial writes from the failed strict attempt.
		rv.Elem().Set(reflect.Zero(rv.Type().Elem()))
	}

	data, err := json.Marshal(v.ToNative())
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode into %T: %w", dest, err)
	}
	return nil
}

// structShaped reports whether t is a struct, or a composite bottoming
// out in structs, after stripping pointers.
func structShaped(t reflect.Type) bool {
	for {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Struct:
			return true
		default:
			return false
		}
	}
}

// transformKeys rewrites every map key in the tree with fn. It reports
// false when two source keys map to the same name, since decoding the
// collapsed map would silently drop one of the entries.
func transformKeys(v value.Value, fn func(string) string) (value.Value, bool) {
	switch v.Kind() {
	case value.KindMap:
		out := make(map[string]value.Value, v.Len())
		for _, k := range v.Keys() {
			mk := fn(k)
			if _, dup := out[mk]; dup {
				return value.Value{}, false
			}
			e, _ := v.Field(k)
			me, ok := transformKeys(e, fn)
			if !ok {
				return value.Value{}, false
			}
			out[mk] = me
		}
		return value.Map(out), true
	case value.KindArray:
		items := make([]value.Value, v.Len())
		for i := 0; i < v.Len(); i++ {
			me, ok := transformKeys(v.Index(i), fn)
			if !ok {
				return value.Value{}, false
			}
			items[i] = me
		}
		return value.Array(items...), true
	default:
		return v, true
	}
}

// snakeToCamel converts snake_case to lowerCamelCase. Keys without
// underscores pass through unchanged, so already-camel keys are stable.
func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	wrote := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		if !wrote {
			b.WriteString(part)
			wrote = true
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if !wrote {
		return s
	}
	return b.String()
}
