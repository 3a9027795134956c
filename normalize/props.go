package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// properties wraps a raw property map with typed accessors. Store values
// arrive untyped: numbers as int64 or float64, flags as bool or the strings
// "true"/"false", lists as []any.
type properties map[string]any

// first returns the value of the first present key.
func (p properties) first(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (p properties) str(keys ...string) string {
	v, ok := p.first(keys...)
	if !ok {
		return ""
	}
	return toString(v)
}

// float reads a numeric property. An absent property reads as 0; a present
// value that is not a finite number is an error naming the property.
func (p properties) float(key string) (float64, error) {
	v, ok := p.first(key)
	if !ok {
		return 0, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("property %q: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("property %q: non-finite value %v", key, f)
	}
	return f, nil
}

func (p properties) boolean(keys ...string) bool {
	v, ok := p.first(keys...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

func (p properties) list(keys ...string) []string {
	v, ok := p.first(keys...)
	if !ok {
		return nil
	}
	switch l := v.(type) {
	case []string:
		return append([]string(nil), l...)
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if item != nil {
				out = append(out, toString(item))
			}
		}
		return out
	case string:
		if l == "" {
			return nil
		}
		return []string{l}
	}
	return []string{toString(v)}
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return fmt.Sprint(v)
}

// toFloat64 converts various numeric types to float64.
// Numeric strings are accepted since some sources load measurements as text.
func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}
