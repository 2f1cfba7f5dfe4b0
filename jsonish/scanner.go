package jsonish

import "strings"

// spanScanner walks text tracking double-quoted string state, backslash
// escapes and brace/bracket nesting. Structural characters inside
// strings never affect depth.
type spanScanner struct {
	inString bool
	escaped  bool
	stack    []byte
}

// step feeds one byte to the scanner.
func (s *spanScanner) step(c byte) {
	if s.escaped {
		s.escaped = false
		return
	}
	if s.inString {
		switch c {
		case '\\':
			s.escaped = true
		case '"':
			s.inString = false
		}
		return
	}
	switch c {
	case '"':
		s.inString = true
	case '{':
		s.stack = append(s.stack, '}')
	case '[':
		s.stack = append(s.stack, ']')
	case '}', ']':
		// Mismatched closers are tolerated; strict validation happens
		// after extraction.
		if n := len(s.stack); n > 0 && s.stack[n-1] == c {
			s.stack = s.stack[:n-1]
		}
	}
}

func (s *spanScanner) depth() int { return len(s.stack) }

// balancedSpan returns the first top-level balanced {...} or [...] span
// in text. Quote state is tracked from the start of the text so that an
// opener quoted in surrounding prose does not start the span; when that
// scan yields nothing strictly valid (prose quotes are not reliably
// balanced), the span anchored at the first opener is used instead.
func balancedSpan(text string) (string, bool) {
	if span, ok := scanSpan(text, true); ok && isValid(span) {
		return span, true
	}
	return scanSpan(text, false)
}

// scanSpan finds the first balanced span. With fromStart set, string
// state accumulates from the beginning of text and the span starts at
// the first opener seen outside a string; otherwise scanning begins at
// the first opener regardless of context.
func scanSpan(text string, fromStart bool) (string, bool) {
	i := 0
	if !fromStart {
		i = strings.IndexAny(text, "{[")
		if i < 0 {
			return "", false
		}
	}

	var sc spanScanner
	start := -1
	for ; i < len(text); i++ {
		c := text[i]
		if start < 0 && !sc.inString && (c == '{' || c == '[') {
			start = i
		}
		sc.step(c)
		if start >= 0 && sc.depth() == 0 && !sc.inString {
			return text[start : i+1], true
		}
	}
	return "", false
}
