// Package prompt renders a schema into the instruction text sent to a
// model alongside the user's request. The output formats are exact
// contracts: downstream prompts and tests depend on them byte for byte.
package prompt
