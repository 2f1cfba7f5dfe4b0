package structured

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zero-day-ai/structured/coerce"
	"github.com/zero-day-ai/structured/registry"
	"github.com/zero-day-ai/structured/schema"
	"github.com/zero-day-ai/structured/value"
)

func personSchema() schema.Type {
	return schema.NewObject().
		Add("name", schema.String()).
		Add("age", schema.Int()).
		Build()
}

func TestParseFencedWithRepairs(t *testing.T) {
	p := New()

	raw := "Here is the result:\n```json\n{name: 'Alice', age: 30,}\n```\nLet me know if you need anything else."
	target := personSchema()

	var out struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	err := p.Parse(context.Background(), raw, &target, &out)
	require.NoError(t, err)
	assert.Equal(t, "Alice", out.Name)
	assert.Equal(t, 30, out.Age)
}

func TestParseValueWithoutTarget(t *testing.T) {
	p := New()

	v, err := p.ParseValue(context.Background(), `{"items": [1, 2.5, "x"]}`, nil)
	require.NoError(t, err)
	assert.Equal(t, value.KindMap, v.Kind())

	items, ok := v.Field("items")
	require.True(t, ok)
	assert.Equal(t, 3, items.Len())
}

func TestParseCoercionFailure(t *testing.T) {
	p := New()

	target := schema.Bool()
	_, err := p.ParseValue(context.Background(), `"maybe"`, &target)
	require.Error(t, err)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindCoercion, se.Kind)

	var ce *coerce.CoercionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bool", ce.Expected)
	assert.Equal(t, "string", ce.Actual)
}

func TestParseExtractionFailure(t *testing.T) {
	p := New()

	_, err := p.ParseValue(context.Background(), "no json in sight", nil)
	require.Error(t, err)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindExtraction, se.Kind)
	assert.Equal(t, p.ID(), se.Context["parser"])
}

func TestParseValidationFailure(t *testing.T) {
	p := New()

	target := personSchema()
	_, err := p.ParseValue(context.Background(), `{"name": "Bob"}`, &target)
	require.Error(t, err)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)

	var ve *coerce.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "/age", ve.Path)
}

func TestParseDecodeSnakeCaseKeys(t *testing.T) {
	p := New()

	// Model emitted snake_case; the destination tags camelCase.
	var out struct {
		FirstName string `json:"firstName"`
		AgeYears  int    `json:"ageYears"`
	}
	err := p.Parse(context.Background(), `{"first_name": "Ada", "age_years": 36}`, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.FirstName)
	assert.Equal(t, 36, out.AgeYears)
}

func TestParseDecodeExactKeysFallback(t *testing.T) {
	p := New()

	// Keys that already match exactly still decode even though the
	// snake_case mapping attempt does not fit.
	var out struct {
		SnakeCase string `json:"snake_case"`
	}
	err := p.Parse(context.Background(), `{"snake_case": "kept"}`, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "kept", out.SnakeCase)
}

func TestParseDecodeCollidingKeysKeepExactNames(t *testing.T) {
	p := New()

	// "a_b" and "aB" would collapse to one camelCase key; the exact-name
	// decode must be used so neither entry is silently dropped.
	var out struct {
		AB    int `json:"aB"`
		Snake int `json:"a_b"`
	}
	err := p.Parse(context.Background(), `{"a_b": 1, "aB": 2}`, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, out.AB)
	assert.Equal(t, 1, out.Snake)
}

func TestParseWithRegistryRef(t *testing.T) {
	reg := registry.New()
	reg.ClassBuilder("Person").
		AddProperty("name", schema.String()).
		AddProperty("age", schema.Int())

	p := New(WithRegistry(reg))
	target := schema.Ref("Person")

	var out struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	err := p.Parse(context.Background(), `{"name": "Eve", "age": "41"}`, &target, &out)
	require.NoError(t, err)
	assert.Equal(t, "Eve", out.Name)
	assert.Equal(t, 41, out.Age)
}

func TestParseWithRepairRetry(t *testing.T) {
	p := New()

	target := personSchema()

	var out struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	err := p.ParseWithRepair(context.Background(), `{name: 'Zed', age: 7}`, &target, &out)
	require.NoError(t, err)
	assert.Equal(t, "Zed", out.Name)
	assert.Equal(t, 7, out.Age)
}

func TestParseWithRepairSurfacesOriginalError(t *testing.T) {
	p := New()

	target := schema.Bool()
	var out bool
	err := p.ParseWithRepair(context.Background(), `"maybe"`, &target, &out)
	require.Error(t, err)

	// The retry cannot help a coercion failure; the original error comes
	// back, not a second-pass one.
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindCoercion, se.Kind)
	assert.Equal(t, "Parser.ParseValue", se.Op)
}

func TestParseGeneric(t *testing.T) {
	p := New()

	target := schema.Array(schema.Int())
	got, err := Parse[[]int](context.Background(), p, `["1", 2, 3.0]`, &target)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestParserTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	p := New(WithTracer(tp.Tracer("test")))

	target := personSchema()
	_, err := p.ParseValue(context.Background(), `{"name": "Ada", "age": 36}`, &target)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "Parser.ParseValue", spans[0].Name)

	var events []string
	for _, ev := range spans[0].Events {
		events = append(events, ev.Name)
	}
	assert.Equal(t, []string{"extracted", "coerced", "validated"}, events)
}

func TestParserIDsUnique(t *testing.T) {
	a := New()
	b := New()
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestParseDestinationErrors(t *testing.T) {
	p := New()

	err := p.Parse(context.Background(), `{"a": 1}`, nil, nil)
	require.Error(t, err)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindDecode, se.Kind)

	var out struct{}
	err = p.Parse(context.Background(), `{"a": 1}`, nil, out)
	require.Error(t, err)
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, KindDecode, se.Kind)
}
