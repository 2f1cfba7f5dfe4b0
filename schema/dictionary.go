package schema

// ToDictionary serializes the Type into the JSON-Schema-shaped
// structure of nested maps, arrays, strings and bools that LLM
// providers accept as a response format. Object schemas reject
// additional properties unless one was supplied.
func (t Type) ToDictionary() map[string]any {
	switch t.Kind {
	case KindString:
		return map[string]any{"type": "string"}
	case KindInt:
		return map[string]any{"type": "integer"}
	case KindFloat:
		return map[string]any{"type": "number"}
	case KindBool:
		return map[string]any{"type": "boolean"}
	case KindNull:
		return map[string]any{"type": "null"}
	case KindArray:
		return map[string]any{
			"type":  "array",
			"items": t.Elem.ToDictionary(),
		}
	case KindMap:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": t.Val.ToDictionary(),
		}
	case KindObject:
		props := make(map[string]any, len(t.Props))
		for _, p := range t.Props {
			d := p.Type.ToDictionary()
			if p.Description != "" {
				d["description"] = p.Description
			}
			props[p.Name] = d
		}
		var additional any = false
		if t.Additional != nil {
			additional = t.Additional.ToDictionary()
		}
		out := map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": additional,
		}
		if len(t.Required) > 0 {
			req := make([]any, len(t.Required))
			for i, r := range t.Required {
				req[i] = r
			}
			out["required"] = req
		}
		return out
	case KindEnum:
		vals := make([]any, len(t.Values))
		for i, v := range t.Values {
			vals[i] = v
		}
		return map[string]any{"type": "string", "enum": vals}
	case KindOptional:
		return map[string]any{
			"anyOf": []any{
				t.Elem.ToDictionary(),
				map[string]any{"type": "null"},
			},
		}
	case KindAnyOf:
		members := make([]any, len(t.Variants))
		for i, v := range t.Variants {
			members[i] = v.ToDictionary()
		}
		return map[string]any{"anyOf": members}
	case KindRef, KindReference:
		return map[string]any{"$ref": "#/$defs/" + t.Name}
	case KindLiteralString:
		return map[string]any{"type": "string", "const": t.StrVal}
	case KindLiteralInt:
		return map[string]any{"type": "integer", "const": t.IntVal}
	case KindLiteralBool:
		return map[string]any{"type": "boolean", "const": t.BoolVal}
	default:
		return map[string]any{}
	}
}

// Document wraps a root schema dictionary with a top-level $defs map
// built from the supplied definitions. Use it when the root contains
// ref nodes that providers need to resolve locally.
func Document(root Type, definitions map[string]Type) map[string]any {
	out := root.ToDictionary()
	if len(definitions) == 0 {
		return out
	}
	defs := make(map[string]any, len(definitions))
	for name, def := range definitions {
		defs[name] = def.ToDictionary()
	}
	out["$defs"] = defs
	return out
}
