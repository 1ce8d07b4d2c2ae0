package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Payload is a decoded JSON object. Numbers are kept as json.Number.
type Payload map[string]any

// DecodePayload parses data into a Payload. A top-level array is wrapped
// under the "items" key.
func DecodePayload(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	switch t := v.(type) {
	case map[string]any:
		return Payload(t), nil
	case []any:
		return Payload{"items": t}, nil
	default:
		return nil, fmt.Errorf("%w: top-level %T", ErrInvalidJSON, v)
	}
}

// Get walks keys through nested objects and returns nil on any miss.
func (p Payload) Get(keys ...string) any {
	return Lookup(map[string]any(p), keys...)
}

// Lookup walks keys through nested objects starting at v.
func Lookup(v any, keys ...string) any {
	cur := v
	for _, k := range keys {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur, ok = m[k]
		if !ok {
			return nil
		}
	}
	return cur
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Payload:
		return map[string]any(m), true
	}
	return nil, false
}

// Float converts a JSON number or numeric string.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Int converts a JSON number or numeric string, truncating fractions.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := Float(v)
	if !ok || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// String returns v when it is a non-empty string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Bool returns v when it is a JSON boolean.
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// List returns v when it is a JSON array.
func List(v any) []any {
	l, _ := v.([]any)
	return l
}
