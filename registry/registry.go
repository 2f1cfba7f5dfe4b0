package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/zero-day-ai/structured/schema"
)

// TypeNotDynamicError reports a strict extension attempt against a name
// that was never flagged dynamic. It signals a programming error and is
// never retried.
type TypeNotDynamicError struct {
	Name string
}

func (e *TypeNotDynamicError) Error() string {
	return fmt.Sprintf("registry: type %q is not dynamic", e.Name)
}

// Registry stores named enum and class definitions for one logical
// session. It is safe for concurrent use: the registry lock guards the
// name tables and each builder serializes its own mutations.
type Registry struct {
	mu      sync.RWMutex
	id      string
	logger  *slog.Logger
	enums   map[string]*EnumBuilder
	classes map[string]*ClassBuilder
	dynamic map[string]bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry lifecycle events.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry with a unique instance ID.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.NewString(),
		enums:   make(map[string]*EnumBuilder),
		classes: make(map[string]*ClassBuilder),
		dynamic: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// ID returns the registry's unique instance identifier, carried in logs
// and error context.
func (r *Registry) ID() string { return r.id }

// EnumBuilder returns the mutable handle for the named enum, creating
// it on first use. Calls with the same name return the same handle.
func (r *Registry) EnumBuilder(name string) *EnumBuilder {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.enums[name]
	if !ok {
		b = newEnumBuilder(name)
		r.enums[name] = b
		r.logger.Debug("enum registered", "registry", r.id, "name", name)
	}
	return b
}

// ClassBuilder returns the mutable handle for the named class, creating
// it on first use. Calls with the same name return the same handle.
func (r *Registry) ClassBuilder(name string) *ClassBuilder {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.classes[name]
	if !ok {
		b = newClassBuilder(name)
		r.classes[name] = b
		r.logger.Debug("class registered", "registry", r.id, "name", name)
	}
	return b
}

// RegisterDynamicType flags a name as extensible at runtime. Only
// flagged names may be mutated through ExtendEnum and ExtendClass.
func (r *Registry) RegisterDynamicType(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic[name] = true
}

// IsDynamic reports whether a name was flagged dynamic.
func (r *Registry) IsDynamic(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dynamic[name]
}

// ExtendEnum returns the handle for a dynamic enum. Unlike EnumBuilder
// it enforces the dynamic flag and fails with TypeNotDynamicError when
// the name was never registered as dynamic.
func (r *Registry) ExtendEnum(name string) (*EnumBuilder, error) {
	if !r.IsDynamic(name) {
		return nil, &TypeNotDynamicError{Name: name}
	}
	return r.EnumBuilder(name), nil
}

// ExtendClass returns the handle for a dynamic class, enforcing the
// dynamic flag the same way ExtendEnum does.
func (r *Registry) ExtendClass(name string) (*ClassBuilder, error) {
	if !r.IsDynamic(name) {
		return nil, &TypeNotDynamicError{Name: name}
	}
	return r.ClassBuilder(name), nil
}

// LookupEnum returns the named enum handle without creating it.
func (r *Registry) LookupEnum(name string) (*EnumBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.enums[name]
	return b, ok
}

// LookupClass returns the named class handle without creating it.
func (r *Registry) LookupClass(name string) (*ClassBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.classes[name]
	return b, ok
}

// Resolve returns the schema Type behind a registered name, trying
// enums first, then classes.
func (r *Registry) Resolve(name string) (schema.Type, bool) {
	if e, ok := r.LookupEnum(name); ok {
		return e.Type(), true
	}
	if c, ok := r.LookupClass(name); ok {
		return c.Type(), true
	}
	return schema.Type{}, false
}

// BuildSchema resolves root's transitive ref closure against the
// registry into a JSON-Schema document whose $defs map contains every
// reachable class and enum. Refs to unregistered names are left
// unresolved so the prompt renderer can fall back to the bare name.
func (r *Registry) BuildSchema(root schema.Type) map[string]any {
	defs := make(map[string]schema.Type)
	r.collectRefs(root, defs)
	return schema.Document(root, defs)
}

func (r *Registry) collectRefs(t schema.Type, defs map[string]schema.Type) {
	switch t.Kind {
	case schema.KindRef:
		if _, done := defs[t.Name]; done {
			return
		}
		resolved, ok := r.Resolve(t.Name)
		if !ok {
			return
		}
		defs[t.Name] = resolved
		r.collectRefs(resolved, defs)
	case schema.KindArray, schema.KindOptional:
		r.collectRefs(*t.Elem, defs)
	case schema.KindMap:
		r.collectRefs(*t.Val, defs)
	case schema.KindObject:
		for _, p := range t.Props {
			r.collectRefs(p.Type, defs)
		}
		if t.Additional != nil {
			r.collectRefs(*t.Additional, defs)
		}
	case schema.KindAnyOf:
		for _, v := range t.Variants {
			r.collectRefs(v, defs)
		}
	}
}

// DynamicEnumValues returns a snapshot of every enum's current values,
// keyed by enum name. Each enum is snapshotted atomically so concurrent
// writers never tear an entry.
func (r *Registry) DynamicEnumValues() map[string][]string {
	r.mu.RLock()
	builders := make(map[string]*EnumBuilder, len(r.enums))
	for name, b := range r.enums {
		builders[name] = b
	}
	r.mu.RUnlock()

	out := make(map[string][]string, len(builders))
	for name, b := range builders {
		out[name] = b.Values()
	}
	return out
}

// Clear resets every definition and dynamic flag. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enums = make(map[string]*EnumBuilder)
	r.classes = make(map[string]*ClassBuilder)
	r.dynamic = make(map[string]bool)
}
