// Package coerce converts loosely-typed JSON values into values that
// satisfy a target schema. Coercion is a pure function over a fixed
// rule table: numbers widen, integral floats narrow, strings parse into
// numbers and booleans, unions resolve to the first matching variant in
// declared order. Validate performs the separate structural pass that
// checks required keys, enum membership and recursive type agreement.
package coerce
