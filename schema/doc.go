// Package schema defines the algebraic description of an expected output
// shape. A Type is a tagged variant over primitives, arrays, maps,
// objects, enums, literals, unions and named references; it drives both
// type coercion and prompt rendering.
//
// Types are built with the constructor functions:
//
//	person := schema.NewObject().
//		Add("name", schema.String()).
//		Add("age", schema.Int()).
//		AddOptional("email", schema.String(), "contact address").
//		Build()
//
// or generated from a Go type with FromType. ToDictionary serializes a
// Type into the JSON-Schema-shaped structure providers expect.
package schema
