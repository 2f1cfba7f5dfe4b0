package jsonish

import "strings"

// Accumulator collects incremental deltas from a streaming completion
// and exposes a best-effort view of the JSON document so far. It is the
// structured-output counterpart of accumulating chat deltas: push each
// chunk as it arrives, read Current for a partial parse, and call Final
// once the stream ends.
//
// Accumulator is not safe for concurrent use; a stream has a single
// consumer.
type Accumulator struct {
	buf strings.Builder
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Push appends one streamed delta.
func (a *Accumulator) Push(delta string) {
	a.buf.WriteString(delta)
}

// Raw returns everything pushed so far, unmodified.
func (a *Accumulator) Raw() string {
	return a.buf.String()
}

// Current returns a syntactically valid prefix interpretation of the
// text streamed so far. Callers can parse the result to show partial
// values while the stream is still running.
func (a *Accumulator) Current() (string, error) {
	return ExtractPartial(a.buf.String())
}

// Final runs the full extraction pipeline over the accumulated text.
// Call it when the stream has finished.
func (a *Accumulator) Final() (string, error) {
	return Extract(a.buf.String())
}

// Reset clears the accumulator for reuse.
func (a *Accumulator) Reset() {
	a.buf.Reset()
}
