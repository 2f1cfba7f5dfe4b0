package jsonish

import (
	"errors"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrNoJSON indicates that no stage of the extraction pipeline could
// recover valid JSON from the input text.
var ErrNoJSON = errors.New("no JSON found")

// fenceRe matches the first markdown code fence, with or without a
// language tag, non-greedy so only the first block is taken.
var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Extract turns raw model output into strict JSON text. Stages run in
// order and the first success wins:
//
//  1. the trimmed input already parses as strict JSON
//  2. the contents of the first fenced code block parse
//  3. the first balanced {...} or [...] span parses
//  4. the repair pipeline applied to each candidate above parses
//
// If every stage fails, ErrNoJSON is returned.
func Extract(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if isValid(trimmed) {
		return trimmed, nil
	}

	candidates := []string{trimmed}

	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		fenced := strings.TrimSpace(m[1])
		if isValid(fenced) {
			return fenced, nil
		}
		candidates = append(candidates, fenced)
	}

	if span, ok := balancedSpan(raw); ok {
		if isValid(span) {
			return span, nil
		}
		candidates = append(candidates, span)
	}

	// Repair the most specific candidates first: a fence or span is a
	// better repair target than the surrounding prose.
	for i := len(candidates) - 1; i >= 0; i-- {
		if repaired, ok := Repair(candidates[i]); ok {
			return repaired, nil
		}
	}

	return "", ErrNoJSON
}

// isValid reports whether text parses as strict JSON. Empty input is
// not valid JSON.
func isValid(text string) bool {
	return len(text) > 0 && json.Valid([]byte(text))
}
