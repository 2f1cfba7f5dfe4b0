package value

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Parse converts strict JSON text into a Value. Numbers without a
// fraction or exponent become KindInt when they fit in an int64, and
// KindFloat otherwise, so "42" and "42.0" parse to distinct kinds.
func Parse(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("value: parse: %w", err)
	}
	return fromDecoded(raw)
}

// fromDecoded converts decoder output, resolving json.Number tokens
// that FromNative does not know about.
func fromDecoded(data any) (Value, error) {
	switch d := data.(type) {
	case json.Number:
		return fromNumber(d)
	case []any:
		items := make([]Value, len(d))
		for i, e := range d {
			v, err := fromDecoded(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		m := make(map[string]Value, len(d))
		for k, e := range d {
			v, err := fromDecoded(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Value{kind: KindMap, m: m}, nil
	default:
		return FromNative(data)
	}
}

func fromNumber(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("value: invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

// Encode serializes the Value as compact JSON.
func (v Value) Encode() (string, error) {
	data, err := json.Marshal(v.ToNative())
	if err != nil {
		return "", fmt.Errorf("value: encode: %w", err)
	}
	return string(data), nil
}
