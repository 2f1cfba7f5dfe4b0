// Package registry provides a mutable, thread-safe store of named enum
// and class schema definitions that can be extended while a program
// runs. Builders are idempotent-create: asking for the same name always
// returns the same handle, and mutation is append-only, so concurrent
// writers never lose or duplicate entries.
//
// Names flagged dynamic may be extended through the strict ExtendEnum
// and ExtendClass entry points; extending any other name fails with
// TypeNotDynamicError. Definitions supplied by an external runtime can
// be ingested from YAML with LoadYAML.
package registry
