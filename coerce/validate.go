package coerce

import (
	"fmt"
	"strconv"

	"github.com/zero-day-ai/structured/registry"
	"github.com/zero-day-ai/structured/schema"
	"github.com/zero-day-ai/structured/value"
)

// ValidationError reports a structural violation found after coercion:
// a missing required field, an enum value outside the allowed set, or a
// kind mismatch. Path is a JSON-Pointer-like location of the offending
// value.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("validate: %s: %s", path, e.Message)
}

// Validate checks that v structurally satisfies t: required object keys
// are present, enum values are members of the allowed set, and kinds
// agree recursively. It assumes coercion already ran; no conversions
// are attempted.
func Validate(v value.Value, t schema.Type, reg *registry.Registry) error {
	return validateAt(v, t, reg, "")
}

func validateAt(v value.Value, t schema.Type, reg *registry.Registry, path string) error {
	switch t.Kind {
	case schema.KindString:
		return expectKind(v, value.KindString, path)
	case schema.KindInt:
		return expectKind(v, value.KindInt, path)
	case schema.KindFloat:
		return expectKind(v, value.KindFloat, path)
	case schema.KindBool:
		return expectKind(v, value.KindBool, path)
	case schema.KindNull:
		return expectKind(v, value.KindNull, path)

	case schema.KindOptional:
		if v.IsNull() {
			return nil
		}
		return validateAt(v, *t.Elem, reg, path)

	case schema.KindArray:
		if v.Kind() != value.KindArray {
			return &ValidationError{Path: path, Message: "expected array, got " + v.Kind().String()}
		}
		for i := 0; i < v.Len(); i++ {
			if err := validateAt(v.Index(i), *t.Elem, reg, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return nil

	case schema.KindMap:
		if v.Kind() != value.KindMap {
			return &ValidationError{Path: path, Message: "expected map, got " + v.Kind().String()}
		}
		for _, k := range v.Keys() {
			e, _ := v.Field(k)
			if err := validateAt(e, *t.Val, reg, path+"/"+k); err != nil {
				return err
			}
		}
		return nil

	case schema.KindObject:
		if v.Kind() != value.KindMap {
			return &ValidationError{Path: path, Message: "expected object, got " + v.Kind().String()}
		}
		for _, name := range t.Required {
			if _, ok := v.Field(name); !ok {
				return &ValidationError{Path: path + "/" + name, Message: "missing required field"}
			}
		}
		for _, p := range t.Props {
			e, ok := v.Field(p.Name)
			if !ok {
				continue
			}
			if err := validateAt(e, p.Type, reg, path+"/"+p.Name); err != nil {
				return err
			}
		}
		return nil

	case schema.KindEnum:
		if v.Kind() != value.KindString {
			return &ValidationError{Path: path, Message: "expected enum string, got " + v.Kind().String()}
		}
		for _, allowed := range t.Values {
			if v.Str() == allowed {
				return nil
			}
		}
		return &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("value %q is not in the allowed set %v", v.Str(), t.Values),
		}

	case schema.KindAnyOf:
		for _, variant := range t.Variants {
			if validateAt(v, variant, reg, path) == nil {
				return nil
			}
		}
		return &ValidationError{Path: path, Message: "no union variant matched " + v.Kind().String()}

	case schema.KindRef:
		if reg != nil {
			if resolved, ok := reg.Resolve(t.Name); ok {
				return validateAt(v, resolved, reg, path)
			}
		}
		return &ValidationError{Path: path, Message: fmt.Sprintf("unresolved type reference %q", t.Name)}

	case schema.KindReference:
		return nil

	case schema.KindLiteralString:
		if v.Kind() != value.KindString || v.Str() != t.StrVal {
			return &ValidationError{Path: path, Message: fmt.Sprintf("expected literal %q", t.StrVal)}
		}
		return nil
	case schema.KindLiteralInt:
		if v.Kind() != value.KindInt || v.Int() != t.IntVal {
			return &ValidationError{Path: path, Message: fmt.Sprintf("expected literal %d", t.IntVal)}
		}
		return nil
	case schema.KindLiteralBool:
		if v.Kind() != value.KindBool || v.Bool() != t.BoolVal {
			return &ValidationError{Path: path, Message: fmt.Sprintf("expected literal %t", t.BoolVal)}
		}
		return nil

	default:
		return &ValidationError{Path: path, Message: "unknown schema kind " + t.Kind.String()}
	}
}

func expectKind(v value.Value, want value.Kind, path string) error {
	if v.Kind() != want {
		return &ValidationError{
			Path:    path,
			Message: fmt.Sprintf("expected %s, got %s", want, v.Kind()),
		}
	}
	return nil
}
