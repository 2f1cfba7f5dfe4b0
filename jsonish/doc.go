// Package jsonish recovers valid JSON from the free-form text language
// models actually produce. Extract runs a staged pipeline: strict parse,
// markdown fence contents, first balanced object/array span, and finally
// a textual repair pass that strips comments, drops trailing commas,
// quotes bare keys and rewrites single-quoted strings. ExtractPartial
// completes a truncated streaming prefix into syntactically valid JSON.
package jsonish
