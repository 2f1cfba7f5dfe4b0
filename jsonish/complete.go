package jsonish

import (
	"regexp"
	"strings"
)

// fenceOpenRe matches a fence opener even when the closing fence has
// not streamed in yet.
var fenceOpenRe = regexp.MustCompile("```(?:json)?[ \t]*\n?")

// ExtractPartial extracts JSON from text that may be truncated
// mid-stream, producing a syntactically valid prefix interpretation
// instead of failing. An unterminated string is closed, then every
// structural opener left unmatched at end of input is closed in order.
// Input that is already complete is returned unchanged, so the call is
// idempotent on finished documents.
func ExtractPartial(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if isValid(trimmed) {
		return trimmed, nil
	}

	candidate := trimmed
	if m := fenceOpenRe.FindStringSubmatchIndex(raw); m != nil {
		// A fence that opened but may not have closed yet: take what
		// follows the opener and drop a trailing partial fence marker.
		body := raw[m[1]:]
		if closing := strings.Index(body, "```"); closing >= 0 {
			body = body[:closing]
		}
		candidate = strings.TrimSpace(body)
	}

	start := strings.IndexAny(candidate, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	completed := completeSpan(candidate[start:])
	if !isValid(completed) {
		return "", ErrNoJSON
	}
	return completed, nil
}

// completeSpan closes whatever the scan leaves open at end of input:
// the string literal first, then the opener stack from innermost to
// outermost. Dangling separators are dropped so the synthesized closers
// attach to a complete value.
func completeSpan(text string) string {
	var sc spanScanner
	for i := 0; i < len(text); i++ {
		sc.step(text[i])
	}

	var b strings.Builder
	b.WriteString(text)

	if sc.escaped {
		// A lone trailing backslash inside a string cannot be completed
		// meaningfully; drop it before closing the string.
		s := b.String()
		b.Reset()
		b.WriteString(s[:len(s)-1])
	}
	if sc.inString || sc.escaped {
		b.WriteByte('"')
	}

	// A value separator with nothing after it would make the synthesized
	// closers invalid: `{"a": ` becomes `{"a": null`, `[1,` becomes `[1`.
	out := strings.TrimRight(b.String(), " \t\n\r")
	switch {
	case strings.HasSuffix(out, ":"):
		out += " null"
	case strings.HasSuffix(out, ","):
		out = out[:len(out)-1]
	}

	for i := len(sc.stack) - 1; i >= 0; i-- {
		out += string(sc.stack[i])
	}
	return out
}
