package jsonish

import "strings"

// Repair applies the textual repair pipeline to text and reports
// whether the result parses as strict JSON. Stages run in a fixed
// order, each independent of a full parse:
//
//	(a) strip // line and /* */ block comments outside strings
//	(b) drop commas followed only by whitespace and a closing } or ]
//	(c) double-quote identifier-shaped object keys
//	(d) rewrite single-quoted strings to double-quoted
//
// Repair is idempotent: repairing an already repaired text returns it
// unchanged.
func Repair(text string) (string, bool) {
	out := stripComments(text)
	out = removeTrailingCommas(out)
	out = quoteBareKeys(out)
	out = singleToDoubleQuotes(out)

	if !isValid(out) {
		return "", false
	}
	return out, true
}

// stripComments removes // line comments and /* */ block comments that
// occur outside double-quoted string literals.
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(text) {
			switch text[i+1] {
			case '/':
				// Skip to end of line, keep the newline itself.
				j := strings.IndexByte(text[i:], '\n')
				if j < 0 {
					return b.String()
				}
				i += j - 1
				continue
			case '*':
				j := strings.Index(text[i+2:], "*/")
				if j < 0 {
					return b.String()
				}
				i += 2 + j + 1
				continue
			}
		}

		b.WriteByte(c)
	}
	return b.String()
}

// removeTrailingCommas drops commas whose next non-whitespace character
// is a closing brace or bracket.
func removeTrailingCommas(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case ',':
			if next, ok := nextNonSpace(text, i+1); ok && (next == '}' || next == ']') {
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// quoteBareKeys wraps identifier-shaped object keys in double quotes.
// A token qualifies when it matches [A-Za-z_][A-Za-z0-9_]*, the last
// significant character before it is { or , and the next significant
// character after it is a colon.
func quoteBareKeys(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	inString, escaped := false, false
	var lastSignificant byte
	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			lastSignificant = c
			b.WriteByte(c)
			continue
		}

		if isIdentStart(c) && (lastSignificant == '{' || lastSignificant == ',') {
			end := i + 1
			for end < len(text) && isIdentPart(text[end]) {
				end++
			}
			if next, ok := nextNonSpace(text, end); ok && next == ':' {
				b.WriteByte('"')
				b.WriteString(text[i:end])
				b.WriteByte('"')
				lastSignificant = '"'
				i = end - 1
				continue
			}
			b.WriteString(text[i:end])
			lastSignificant = text[end-1]
			i = end - 1
			continue
		}

		if !isSpace(c) {
			lastSignificant = c
		}
		b.WriteByte(c)
	}
	return b.String()
}

// singleToDoubleQuotes rewrites single-quoted string literals as
// double-quoted ones. Double-quote string state is tracked so that
// apostrophes inside double-quoted strings are untouched; backslash
// escapes are respected in both quoting styles.
func singleToDoubleQuotes(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inDouble, inSingle, escaped := false, false, false
	for i := 0; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			if inSingle {
				switch c {
				case '\'':
					// \' needs no escape once the string is double-quoted.
					b.WriteByte('\'')
				default:
					b.WriteByte('\\')
					b.WriteByte(c)
				}
			} else {
				b.WriteByte('\\')
				b.WriteByte(c)
			}
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '"':
			if inSingle {
				// A literal double quote inside a single-quoted string
				// must be escaped in the rewritten form.
				b.WriteString(`\"`)
			} else {
				inDouble = !inDouble
				b.WriteByte(c)
			}
		case '\'':
			if inDouble {
				b.WriteByte(c)
			} else {
				inSingle = !inSingle
				b.WriteByte('"')
			}
		default:
			b.WriteByte(c)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

func nextNonSpace(text string, from int) (byte, bool) {
	for i := from; i < len(text); i++ {
		if !isSpace(text[i]) {
			return text[i], true
		}
	}
	return 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
