package prompt

import (
	"strconv"
	"strings"

	"github.com/zero-day-ai/structured/registry"
	"github.com/zero-day-ai/structured/schema"
)

// Render produces the model-facing instruction for a schema, resolving
// named references against reg (which may be nil). Top-level shapes get
// a framing sentence; the schema body below it uses a compact
// TypeScript-like notation models follow reliably.
func Render(t schema.Type, reg *registry.Registry) string {
	resolved := resolveTop(t, reg)

	switch resolved.Kind {
	case schema.KindInt:
		return "Answer as an int"
	case schema.KindFloat:
		return "Answer as a float"
	case schema.KindBool:
		return "Answer as a bool"
	case schema.KindNull:
		return "Answer with null"
	case schema.KindString:
		// A bare string needs no instruction.
		return ""
	case schema.KindEnum:
		var b strings.Builder
		b.WriteString("Answer with any of the categories:\n----")
		for _, v := range resolved.Values {
			b.WriteString("\n- ")
			b.WriteString(v)
		}
		return b.String()
	case schema.KindArray:
		if elemIsObject(*resolved.Elem, reg) {
			return "Answer with a JSON Array using this schema:\n" + renderType(*resolved.Elem, reg)
		}
		return "Answer in JSON using this schema:\n" + renderType(resolved, reg)
	default:
		return "Answer in JSON using this schema:\n" + renderType(resolved, reg)
	}
}

// RenderClass renders the instruction for a registered class by name.
// Unknown names fall back to the bare instruction "Answer in JSON.".
func RenderClass(name string, reg *registry.Registry) string {
	if reg != nil {
		if c, ok := reg.LookupClass(name); ok {
			return "Answer in JSON using this schema:\n" + renderType(c.Type(), reg)
		}
	}
	return "Answer in JSON."
}

// resolveTop follows a top-level ref so that, e.g., a ref to an enum
// renders with the enum framing.
func resolveTop(t schema.Type, reg *registry.Registry) schema.Type {
	if t.Kind == schema.KindRef && reg != nil {
		if resolved, ok := reg.Resolve(t.Name); ok {
			return resolved
		}
	}
	return t
}

func elemIsObject(t schema.Type, reg *registry.Registry) bool {
	switch t.Kind {
	case schema.KindObject:
		return true
	case schema.KindRef:
		if reg != nil {
			if resolved, ok := reg.Resolve(t.Name); ok {
				return resolved.Kind == schema.KindObject
			}
		}
	}
	return false
}

// renderType renders the nested notation: objects as brace bodies with
// one field per line, arrays as suffixed element types, enums as quoted
// alternatives, unions joined by " | ".
func renderType(t schema.Type, reg *registry.Registry) string {
	switch t.Kind {
	case schema.KindString:
		return "string"
	case schema.KindInt:
		return "int"
	case schema.KindFloat:
		return "float"
	case schema.KindBool:
		return "bool"
	case schema.KindNull:
		return "null"
	case schema.KindArray:
		return renderType(*t.Elem, reg) + "[]"
	case schema.KindMap:
		return "map<string, " + renderType(*t.Val, reg) + ">"
	case schema.KindObject:
		return renderObjectBody(t, reg)
	case schema.KindEnum:
		parts := make([]string, len(t.Values))
		for i, v := range t.Values {
			parts[i] = strconv.Quote(v)
		}
		return strings.Join(parts, " | ")
	case schema.KindOptional:
		return renderType(*t.Elem, reg) + " | null"
	case schema.KindAnyOf:
		parts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			parts[i] = renderType(v, reg)
		}
		return strings.Join(parts, " | ")
	case schema.KindRef:
		if reg != nil {
			if resolved, ok := reg.Resolve(t.Name); ok {
				return renderType(resolved, reg)
			}
		}
		return t.Name
	case schema.KindReference:
		return t.Name
	case schema.KindLiteralString:
		return strconv.Quote(t.StrVal)
	case schema.KindLiteralInt:
		return strconv.FormatInt(t.IntVal, 10)
	case schema.KindLiteralBool:
		return strconv.FormatBool(t.BoolVal)
	default:
		return t.Kind.String()
	}
}

// renderObjectBody emits the brace body. Field order follows the
// schema's property order, so renders of the same schema are stable.
func renderObjectBody(t schema.Type, reg *registry.Registry) string {
	var b strings.Builder
	b.WriteString("{")
	for _, p := range t.Props {
		if p.Description != "" {
			b.WriteString("\n// ")
			b.WriteString(p.Description)
		}
		b.WriteString("\n")
		b.WriteString(p.Name)
		if !t.IsRequired(p.Name) {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(renderType(p.Type, reg))
	}
	b.WriteString("\n}")
	return b.String()
}
