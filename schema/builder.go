package schema

// ObjectBuilder accumulates (name, type, required) triples and yields
// an object Type. Properties render in the order they were added.
type ObjectBuilder struct {
	props      []Property
	required   []string
	additional *Type
}

// NewObject creates an empty object builder.
func NewObject() *ObjectBuilder {
	return &ObjectBuilder{}
}

// Add appends a required property. An optional description becomes a
// comment line when the schema is rendered into a prompt.
func (b *ObjectBuilder) Add(name string, t Type, description ...string) *ObjectBuilder {
	b.props = append(b.props, Property{
		Name:        name,
		Type:        t,
		Description: first(description),
	})
	b.required = append(b.required, name)
	return b
}

// AddOptional appends a property that callers may omit.
func (b *ObjectBuilder) AddOptional(name string, t Type, description ...string) *ObjectBuilder {
	b.props = append(b.props, Property{
		Name:        name,
		Type:        t,
		Description: first(description),
	})
	return b
}

// AdditionalProperties sets the schema for properties not declared on
// the builder. Without it, undeclared properties are rejected.
func (b *ObjectBuilder) AdditionalProperties(t Type) *ObjectBuilder {
	// Build copies the pointer, so keep our own.
	cp := t
	b.additional = &cp
	return b
}

// Build yields the accumulated object Type.
func (b *ObjectBuilder) Build() Type {
	t := Object(b.props, b.required...)
	t.Additional = b.additional
	return t
}

func first(ss []string) string {
	if len(ss) > 0 {
		return ss[0]
	}
	return ""
}
