package registry

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/structured/schema"
)

// yamlDocument is the on-disk shape of externally supplied definitions,
// e.g. those produced by a native runtime bridge:
//
//	enums:
//	  Category:
//	    dynamic: true
//	    values:
//	      - value: refund
//	        alias: money back
//	      - value: cancel
//	classes:
//	  Person:
//	    properties:
//	      - name: name
//	        type: string
//	        description: full name
//	      - name: age
//	        type: int?
type yamlDocument struct {
	Enums   map[string]yamlEnum  `yaml:"enums"`
	Classes map[string]yamlClass `yaml:"classes"`
}

type yamlEnum struct {
	Dynamic bool            `yaml:"dynamic"`
	Values  []yamlEnumValue `yaml:"values"`
}

type yamlEnumValue struct {
	Value string `yaml:"value"`
	Alias string `yaml:"alias"`
}

type yamlClass struct {
	Dynamic    bool           `yaml:"dynamic"`
	Properties []yamlProperty `yaml:"properties"`
}

type yamlProperty struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// LoadYAML ingests enum and class definitions from YAML into the
// registry. Existing definitions are extended, not replaced; the
// dynamic flag is honored per definition.
func (r *Registry) LoadYAML(data []byte) error {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("registry: parse yaml: %w", err)
	}

	for name, def := range doc.Enums {
		if def.Dynamic {
			r.RegisterDynamicType(name)
		}
		b := r.EnumBuilder(name)
		for _, v := range def.Values {
			if v.Value == "" {
				return fmt.Errorf("registry: enum %q has an entry without a value", name)
			}
			if v.Alias != "" {
				b.AddValue(v.Value, v.Alias)
			} else {
				b.AddValue(v.Value)
			}
		}
	}

	for name, def := range doc.Classes {
		if def.Dynamic {
			r.RegisterDynamicType(name)
		}
		b := r.ClassBuilder(name)
		for _, p := range def.Properties {
			if p.Name == "" {
				return fmt.Errorf("registry: class %q has a property without a name", name)
			}
			t, err := parseTypeExpr(p.Type)
			if err != nil {
				return fmt.Errorf("registry: class %q property %q: %w", name, p.Name, err)
			}
			b.AddProperty(p.Name, t, p.Description)
		}
	}

	return nil
}

// parseTypeExpr converts a compact textual type into a schema Type.
// Grammar: a base name (string, int, float, bool, null, or a registered
// type name treated as a ref), with any number of [] array suffixes and
// an optional trailing ? marker.
func parseTypeExpr(expr string) (schema.Type, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return schema.Type{}, fmt.Errorf("empty type expression")
	}

	optional := false
	if strings.HasSuffix(s, "?") {
		optional = true
		s = strings.TrimSuffix(s, "?")
	}

	arrayDepth := 0
	for strings.HasSuffix(s, "[]") {
		arrayDepth++
		s = strings.TrimSuffix(s, "[]")
	}
	if s == "" {
		return schema.Type{}, fmt.Errorf("invalid type expression %q", expr)
	}

	var t schema.Type
	switch s {
	case "string":
		t = schema.String()
	case "int":
		t = schema.Int()
	case "float":
		t = schema.Float()
	case "bool":
		t = schema.Bool()
	case "null":
		t = schema.Null()
	default:
		t = schema.Ref(s)
	}

	for i := 0; i < arrayDepth; i++ {
		t = schema.Array(t)
	}
	if optional {
		t = schema.Optional(t)
	}
	return t, nil
}
