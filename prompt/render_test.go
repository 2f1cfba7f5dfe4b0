package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zero-day-ai/structured/registry"
	"github.com/zero-day-ai/structured/schema"
)

func TestRenderPrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   schema.Type
		want string
	}{
		{"int", schema.Int(), "Answer as an int"},
		{"float", schema.Float(), "Answer as a float"},
		{"bool", schema.Bool(), "Answer as a bool"},
		{"null", schema.Null(), "Answer with null"},
		{"string", schema.String(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in, nil))
		})
	}
}

func TestRenderTopLevelEnum(t *testing.T) {
	got := Render(schema.Enum("refund", "cancel", "question"), nil)
	want := "Answer with any of the categories:\n----\n- refund\n- cancel\n- question"
	assert.Equal(t, want, got)
}

func TestRenderObject(t *testing.T) {
	person := schema.NewObject().
		Add("name", schema.String()).
		Add("age", schema.Int(), "years since birth").
		AddOptional("email", schema.String()).
		Build()

	got := Render(person, nil)
	want := "Answer in JSON using this schema:\n" +
		"{\n" +
		"name: string\n" +
		"// years since birth\n" +
		"age: int\n" +
		"email?: string\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestRenderStableFieldOrder(t *testing.T) {
	person := schema.NewObject().
		Add("b", schema.Int()).
		Add("a", schema.Int()).
		Build()

	first := Render(person, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(person, nil))
	}
	assert.Contains(t, first, "{\nb: int\na: int\n}")
}

func TestRenderArrayOfObjects(t *testing.T) {
	item := schema.NewObject().Add("id", schema.Int()).Build()
	got := Render(schema.Array(item), nil)
	want := "Answer with a JSON Array using this schema:\n{\nid: int\n}"
	assert.Equal(t, want, got)

	// Arrays of primitives get the generic JSON framing.
	got = Render(schema.Array(schema.Int()), nil)
	assert.Equal(t, "Answer in JSON using this schema:\nint[]", got)
}

func TestRenderNestedArraySuffixes(t *testing.T) {
	matrix := schema.Array(schema.Array(schema.Int()))
	obj := schema.NewObject().Add("grid", matrix).Build()
	got := Render(obj, nil)
	assert.Contains(t, got, "grid: int[][]")
}

func TestRenderNestedEnumAndUnion(t *testing.T) {
	obj := schema.NewObject().
		Add("status", schema.Enum("open", "closed")).
		Add("id", schema.AnyOf(schema.Int(), schema.String())).
		AddOptional("note", schema.Optional(schema.String())).
		Build()

	got := Render(obj, nil)
	assert.Contains(t, got, "status: \"open\" | \"closed\"")
	assert.Contains(t, got, "id: int | string")
	assert.Contains(t, got, "note?: string | null")
}

func TestRenderRefResolution(t *testing.T) {
	reg := registry.New()
	reg.EnumBuilder("Category").AddValue("a").AddValue("b")
	reg.ClassBuilder("Address").AddProperty("city", schema.String())

	obj := schema.NewObject().
		Add("category", schema.Ref("Category")).
		Add("address", schema.Ref("Address")).
		Add("mystery", schema.Ref("Unregistered")).
		Build()

	got := Render(obj, reg)
	assert.Contains(t, got, "category: \"a\" | \"b\"")
	assert.Contains(t, got, "address: {\ncity: string\n}")
	// Unresolved names render as the bare name.
	assert.Contains(t, got, "mystery: Unregistered")
}

func TestRenderTopLevelRefToEnum(t *testing.T) {
	reg := registry.New()
	reg.EnumBuilder("Category").AddValue("x").AddValue("y")

	got := Render(schema.Ref("Category"), reg)
	assert.Equal(t, "Answer with any of the categories:\n----\n- x\n- y", got)
}

func TestRenderMap(t *testing.T) {
	got := Render(schema.Map(schema.String(), schema.Int()), nil)
	assert.Equal(t, "Answer in JSON using this schema:\nmap<string, int>", got)
}

func TestRenderLiterals(t *testing.T) {
	obj := schema.NewObject().
		Add("kind", schema.LiteralString("person")).
		Add("version", schema.LiteralInt(2)).
		Add("active", schema.LiteralBool(true)).
		Build()

	got := Render(obj, nil)
	assert.Contains(t, got, "kind: \"person\"")
	assert.Contains(t, got, "version: 2")
	assert.Contains(t, got, "active: true")
}

func TestRenderClassByName(t *testing.T) {
	reg := registry.New()
	reg.ClassBuilder("Person").
		AddProperty("name", schema.String()).
		AddProperty("age", schema.Int())

	got := RenderClass("Person", reg)
	assert.Equal(t, "Answer in JSON using this schema:\n{\nname: string\nage: int\n}", got)

	// Unknown class name: literal fallback.
	assert.Equal(t, "Answer in JSON.", RenderClass("Nope", reg))
	assert.Equal(t, "Answer in JSON.", RenderClass("Person", nil))
}
