// Package structured normalizes the free-form text language models
// produce into strongly-typed values that conform to a schema, and
// renders schemas into instruction text models can follow.
//
// # Pipeline
//
// A Parser composes the stages end to end: lenient JSON extraction
// (jsonish), parsing into a runtime Value (value), schema-driven type
// coercion and validation (coerce), and decoding into a caller-supplied
// Go destination. Schemas are described with the schema package, stored
// and extended at runtime through the registry package, and rendered
// into prompts with the prompt package.
//
//	p := structured.New(structured.WithLogger(logger))
//
//	target := schema.NewObject().
//		Add("name", schema.String()).
//		Add("age", schema.Int()).
//		Build()
//
//	var out struct {
//		Name string `json:"name"`
//		Age  int    `json:"age"`
//	}
//	err := p.Parse(ctx, modelOutput, &target, &out)
//
// Every stage is a synchronous, CPU-bound computation; the only shared
// mutable state is the schema registry, which serializes its own
// mutations. Callers needing timeouts impose them around the whole
// call.
package structured
