package parse

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coercion helpers for values pulled out of recovered JSON. Models drift
// between types ("8" vs 8, a string where a list was asked for), so every
// field read goes through one of these instead of a bare type assertion.

// Number coerces v to a float64, falling back to def.
func Number(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

// Int coerces v to an int, truncating fractional values.
func Int(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// String coerces v to a trimmed string. Numbers are formatted; anything
// else falls back to def.
func String(v any, def string) string {
	switch s := v.(type) {
	case string:
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	return def
}

// Bool coerces v to a bool, accepting string forms.
func Bool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	}
	return def
}

// StringList coerces v to a slice of non-empty strings. A scalar string
// becomes a one-element slice; non-string list elements are formatted
// through String and dropped when empty.
func StringList(v any) []string {
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := String(item, ""); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case string:
		if trimmed := strings.TrimSpace(list); trimmed != "" {
			return []string{trimmed}
		}
	}
	return nil
}

// Map returns the object stored under key, or nil when absent or mistyped.
func Map(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	return nil
}

// List returns the array stored under key, or nil when absent or mistyped.
func List(m map[string]any, key string) []any {
	if child, ok := m[key].([]any); ok {
		return child
	}
	return nil
}
