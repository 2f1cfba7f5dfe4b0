package schema

import (
	"reflect"
	"strings"
	"time"
)

// FromType generates a schema Type from a Go type using reflection.
// This is the builder-free path for callers whose output shape already
// exists as a Go struct: the generated schema drives coercion and
// prompt rendering exactly like a hand-built one.
//
// Supported types:
//   - struct: object schema with properties from exported fields
//   - slice/array: array schema
//   - map: map schema with string keys
//   - pointer: optional of the element type
//   - string, int*, uint*, float*, bool: primitive schemas
//   - time.Time: string schema
//
// Struct tags:
//   - `json:"name"`: uses the JSON tag name for the property
//   - `json:"-"`: skips the field
//   - `json:"name,omitempty"`: field is optional (not in required list)
//   - `description:"..."`: property description for prompt rendering
func FromType(t any) Type {
	if t == nil {
		return Reference("any")
	}
	return fromReflectType(reflect.TypeOf(t))
}

func fromReflectType(t reflect.Type) Type {
	if t.Kind() == reflect.Ptr {
		return Optional(fromReflectType(t.Elem()))
	}

	if t == reflect.TypeOf(time.Time{}) {
		return String()
	}

	switch t.Kind() {
	case reflect.Struct:
		return fromStruct(t)
	case reflect.Slice, reflect.Array:
		return Array(fromReflectType(t.Elem()))
	case reflect.Map:
		return Map(String(), fromReflectType(t.Elem()))
	case reflect.String:
		return String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int()
	case reflect.Float32, reflect.Float64:
		return Float()
	case reflect.Bool:
		return Bool()
	default:
		// interface{}, channels, funcs: nothing to coerce against.
		return Reference(t.String())
	}
}

func fromStruct(t reflect.Type) Type {
	b := NewObject()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		isOmitempty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
			for _, part := range parts[1:] {
				if part == "omitempty" {
					isOmitempty = true
					break
				}
			}
		}

		fieldSchema := fromReflectType(field.Type)
		desc := field.Tag.Get("description")

		if isOmitempty {
			b.AddOptional(fieldName, fieldSchema, desc)
		} else {
			b.Add(fieldName, fieldSchema, desc)
		}
	}

	return b.Build()
}
