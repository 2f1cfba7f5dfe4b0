package registry

import (
	"sync"

	"github.com/zero-day-ai/structured/schema"
)

// EnumValue is one entry of an enum definition. Alias, when set, is an
// alternative spelling accepted during coercion and normalized to the
// canonical Value.
type EnumValue struct {
	Value string
	Alias string
}

// EnumBuilder is the mutable handle for a named enum definition. All
// methods are safe for concurrent use; values keep first-seen order and
// duplicates are ignored.
type EnumBuilder struct {
	mu     sync.Mutex
	name   string
	values []EnumValue
	seen   map[string]bool
}

func newEnumBuilder(name string) *EnumBuilder {
	return &EnumBuilder{
		name: name,
		seen: make(map[string]bool),
	}
}

// Name returns the enum's registered name.
func (b *EnumBuilder) Name() string { return b.name }

// AddValue appends a value unless it is already present. An optional
// alias may be supplied. Returns the builder for chaining.
func (b *EnumBuilder) AddValue(value string, alias ...string) *EnumBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.seen[value] {
		return b
	}
	b.seen[value] = true

	entry := EnumValue{Value: value}
	if len(alias) > 0 {
		entry.Alias = alias[0]
	}
	b.values = append(b.values, entry)
	return b
}

// Contains reports whether value has been added.
func (b *EnumBuilder) Contains(value string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seen[value]
}

// Values returns a snapshot of the values in first-seen order.
func (b *EnumBuilder) Values() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.values))
	for i, v := range b.values {
		out[i] = v.Value
	}
	return out
}

// Entries returns a snapshot of the values with their aliases.
func (b *EnumBuilder) Entries() []EnumValue {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]EnumValue, len(b.values))
	copy(out, b.values)
	return out
}

// Type returns the enum as a schema Type reflecting the current values.
func (b *EnumBuilder) Type() schema.Type {
	return schema.Enum(b.Values()...)
}

// ClassBuilder is the mutable handle for a named class definition.
// Properties keep declaration order; re-adding an existing property
// name is a no-op.
type ClassBuilder struct {
	mu    sync.Mutex
	name  string
	props []schema.Property
	seen  map[string]bool
}

func newClassBuilder(name string) *ClassBuilder {
	return &ClassBuilder{
		name: name,
		seen: make(map[string]bool),
	}
}

// Name returns the class's registered name.
func (b *ClassBuilder) Name() string { return b.name }

// AddProperty appends a property record with an optional description.
// Returns the builder for chaining.
func (b *ClassBuilder) AddProperty(name string, t schema.Type, description ...string) *ClassBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.seen[name] {
		return b
	}
	b.seen[name] = true

	p := schema.Property{Name: name, Type: t}
	if len(description) > 0 {
		p.Description = description[0]
	}
	b.props = append(b.props, p)
	return b
}

// HasProperty reports whether a property with the given name exists.
func (b *ClassBuilder) HasProperty(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seen[name]
}

// Properties returns a snapshot of the properties in declaration order.
func (b *ClassBuilder) Properties() []schema.Property {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]schema.Property, len(b.props))
	copy(out, b.props)
	return out
}

// Type returns the class as an object schema Type. Properties whose
// type is optional are left out of the required list.
func (b *ClassBuilder) Type() schema.Type {
	props := b.Properties()

	var required []string
	for _, p := range props {
		if p.Type.Kind != schema.KindOptional {
			required = append(required, p.Name)
		}
	}
	return schema.Object(props, required...)
}
