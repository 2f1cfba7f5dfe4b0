package structured

import (
	"errors"
	"fmt"
)

// Error kinds categorize pipeline failures by the stage that produced
// them.
const (
	// KindExtraction represents failures to recover JSON from raw text.
	KindExtraction = "extraction"

	// KindCoercion represents values that could not be converted to the
	// target schema.
	KindCoercion = "coercion"

	// KindValidation represents structural violations found after
	// coercion: missing required fields, enum membership, kind
	// mismatches.
	KindValidation = "validation"

	// KindDecode represents failures to decode a validated value into
	// the caller's destination type.
	KindDecode = "decode"

	// KindRegistry represents schema registry misuse, such as extending
	// a non-dynamic type. Registry errors are programmer errors and are
	// never retried.
	KindRegistry = "registry"
)

// Error is a structured error that wraps an underlying stage error with
// the operation that failed and the category of failure.
//
// Error implements the error interface and supports unwrapping, so it
// composes with errors.Is and errors.As.
type Error struct {
	// Op is the operation that failed (e.g., "Parser.Parse").
	Op string

	// Kind categorizes the error (e.g., KindExtraction, KindCoercion).
	Kind string

	// Err is the underlying error.
	Err error

	// Context carries additional debugging detail (optional), such as
	// the parser instance ID or input length.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("structured: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("structured: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("structured: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op when the target sets one),
// and otherwise delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context
// merged in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any, len(ctx))
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewExtractionError creates an Error with KindExtraction.
func NewExtractionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindExtraction, Err: err}
}

// NewCoercionError creates an Error with KindCoercion.
func NewCoercionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindCoercion, Err: err}
}

// NewValidationError creates an Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewDecodeError creates an Error with KindDecode.
func NewDecodeError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindDecode, Err: err}
}

// NewRegistryError creates an Error with KindRegistry.
func NewRegistryError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindRegistry, Err: err}
}
