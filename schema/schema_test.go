package schema

import (
	"reflect"
	"testing"
)

func TestPrimitiveConstructors(t *testing.T) {
	cases := []struct {
		got  Type
		kind Kind
	}{
		{String(), KindString},
		{Int(), KindInt},
		{Float(), KindFloat},
		{Bool(), KindBool},
		{Null(), KindNull},
	}
	for _, c := range cases {
		if c.got.Kind != c.kind {
			t.Errorf("expected kind %v, got %v", c.kind, c.got.Kind)
		}
	}
}

func TestArrayAndMap(t *testing.T) {
	arr := Array(Int())
	if arr.Kind != KindArray || arr.Elem.Kind != KindInt {
		t.Errorf("Array(Int()) = %+v", arr)
	}

	m := Map(String(), Float())
	if m.Kind != KindMap || m.Key.Kind != KindString || m.Val.Kind != KindFloat {
		t.Errorf("Map(String(), Float()) = %+v", m)
	}
}

func TestObjectBuilder(t *testing.T) {
	obj := NewObject().
		Add("name", String()).
		Add("age", Int(), "years since birth").
		AddOptional("email", String()).
		Build()

	if obj.Kind != KindObject {
		t.Fatalf("expected object, got %v", obj.Kind)
	}
	if len(obj.Props) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(obj.Props))
	}

	// Declaration order must be preserved.
	wantOrder := []string{"name", "age", "email"}
	for i, p := range obj.Props {
		if p.Name != wantOrder[i] {
			t.Errorf("property %d = %q, want %q", i, p.Name, wantOrder[i])
		}
	}

	if !obj.IsRequired("name") || !obj.IsRequired("age") {
		t.Error("name and age should be required")
	}
	if obj.IsRequired("email") {
		t.Error("email should be optional")
	}

	age, ok := obj.Property("age")
	if !ok || age.Description != "years since birth" {
		t.Errorf("age property = %+v, present=%v", age, ok)
	}
}

func TestToDictionaryPrimitives(t *testing.T) {
	cases := []struct {
		in   Type
		want map[string]any
	}{
		{String(), map[string]any{"type": "string"}},
		{Int(), map[string]any{"type": "integer"}},
		{Float(), map[string]any{"type": "number"}},
		{Bool(), map[string]any{"type": "boolean"}},
		{Null(), map[string]any{"type": "null"}},
		{Enum("a", "b"), map[string]any{"type": "string", "enum": []any{"a", "b"}}},
		{Ref("Person"), map[string]any{"$ref": "#/$defs/Person"}},
		{LiteralString("ok"), map[string]any{"type": "string", "const": "ok"}},
		{LiteralInt(3), map[string]any{"type": "integer", "const": int64(3)}},
		{LiteralBool(true), map[string]any{"type": "boolean", "const": true}},
	}
	for _, c := range cases {
		got := c.in.ToDictionary()
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("ToDictionary(%v) = %v, want %v", c.in.Kind, got, c.want)
		}
	}
}

func TestToDictionaryObjectDefaultsAdditionalFalse(t *testing.T) {
	obj := NewObject().Add("name", String()).Build()
	d := obj.ToDictionary()

	if d["additionalProperties"] != false {
		t.Errorf("additionalProperties = %v, want false", d["additionalProperties"])
	}
	props, ok := d["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties missing: %v", d)
	}
	if !reflect.DeepEqual(props["name"], map[string]any{"type": "string"}) {
		t.Errorf("name property = %v", props["name"])
	}
	if !reflect.DeepEqual(d["required"], []any{"name"}) {
		t.Errorf("required = %v", d["required"])
	}
}

func TestToDictionaryObjectWithAdditional(t *testing.T) {
	obj := NewObject().
		Add("name", String()).
		AdditionalProperties(Int()).
		Build()
	d := obj.ToDictionary()

	if !reflect.DeepEqual(d["additionalProperties"], map[string]any{"type": "integer"}) {
		t.Errorf("additionalProperties = %v", d["additionalProperties"])
	}
}

func TestToDictionaryOptionalAndAnyOf(t *testing.T) {
	opt := Optional(String()).ToDictionary()
	want := map[string]any{
		"anyOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "null"},
		},
	}
	if !reflect.DeepEqual(opt, want) {
		t.Errorf("Optional(String()) = %v, want %v", opt, want)
	}

	union := AnyOf(Int(), String()).ToDictionary()
	members, ok := union["anyOf"].([]any)
	if !ok || len(members) != 2 {
		t.Fatalf("anyOf = %v", union)
	}
}

func TestDocument(t *testing.T) {
	root := NewObject().Add("person", Ref("Person")).Build()
	person := NewObject().Add("name", String()).Build()

	doc := Document(root, map[string]Type{"Person": person})

	defs, ok := doc["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("$defs missing: %v", doc)
	}
	if _, ok := defs["Person"]; !ok {
		t.Errorf("Person definition missing: %v", defs)
	}

	// No definitions: no $defs key.
	plain := Document(root, nil)
	if _, ok := plain["$defs"]; ok {
		t.Error("$defs should be absent without definitions")
	}
}

func TestFromType(t *testing.T) {
	type Address struct {
		City string `json:"city"`
	}
	type Person struct {
		Name    string   `json:"name"`
		Age     int      `json:"age" description:"years since birth"`
		Email   string   `json:"email,omitempty"`
		Tags    []string `json:"tags"`
		Address *Address `json:"address"`
		skipped string
		Ignored string `json:"-"`
	}
	_ = Person{skipped: ""}

	got := FromType(Person{})
	if got.Kind != KindObject {
		t.Fatalf("expected object, got %v", got.Kind)
	}
	if len(got.Props) != 5 {
		t.Fatalf("expected 5 properties, got %d: %+v", len(got.Props), got.Props)
	}

	if got.IsRequired("email") {
		t.Error("omitempty field should not be required")
	}
	if !got.IsRequired("name") {
		t.Error("name should be required")
	}

	age, _ := got.Property("age")
	if age.Type.Kind != KindInt || age.Description != "years since birth" {
		t.Errorf("age = %+v", age)
	}

	tags, _ := got.Property("tags")
	if tags.Type.Kind != KindArray || tags.Type.Elem.Kind != KindString {
		t.Errorf("tags = %+v", tags)
	}

	addr, _ := got.Property("address")
	if addr.Type.Kind != KindOptional || addr.Type.Elem.Kind != KindObject {
		t.Errorf("address = %+v", addr)
	}
}

func TestKindStringNames(t *testing.T) {
	if KindAnyOf.String() != "anyOf" {
		t.Errorf("KindAnyOf.String() = %q", KindAnyOf.String())
	}
	if KindLiteralString.String() != "literal string" {
		t.Errorf("KindLiteralString.String() = %q", KindLiteralString.String())
	}
}
