// Package parse recovers structured JSON from free-form model output.
//
// Model responses rarely arrive as clean JSON: they come fenced in markdown
// code blocks, wrapped in prose, or occasionally not as JSON at all. Object
// and Array walk a fixed ladder of recovery strategies and always return a
// usable value, never an error. Callers inspect the returned Strategy when
// they need to know how degraded the extraction was.
package parse

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Strategy identifies which rung of the recovery ladder produced a value.
type Strategy string

const (
	// StrategyRegex extracted a fenced ```json code block.
	StrategyRegex Strategy = "regex"
	// StrategyBraceMatch located a balanced object or array by depth scanning.
	StrategyBraceMatch Strategy = "brace_match"
	// StrategyWholeText parsed the entire trimmed response as JSON.
	StrategyWholeText Strategy = "whole_text"
	// StrategyManual used a caller-supplied keyword extractor.
	StrategyManual Strategy = "manual"
	// StrategyDefault fell through to the caller's default value.
	StrategyDefault Strategy = "default"
)

// ManualExtractor is a last-resort extractor run when no JSON can be
// recovered. It scans the raw text for domain keywords and reports whether
// it assembled a usable value.
type ManualExtractor func(raw string) (map[string]any, bool)

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Object recovers a JSON object from raw model output. The ladder is tried
// in order: fenced code block, balanced-brace scan, whole text, the manual
// extractor (if non-nil), and finally def. The returned map is never nil
// when def is non-nil.
func Object(raw string, manual ManualExtractor, def map[string]any) (map[string]any, Strategy) {
	if m, ok := objectFromCodeBlock(raw); ok {
		return m, StrategyRegex
	}
	if m, ok := objectFromBraceScan(raw); ok {
		return m, StrategyBraceMatch
	}
	if m, ok := decodeObject(strings.TrimSpace(raw)); ok {
		return m, StrategyWholeText
	}
	if manual != nil {
		if m, ok := manual(raw); ok {
			return m, StrategyManual
		}
	}
	return def, StrategyDefault
}

// Array recovers a JSON array from raw model output using the same ladder
// as Object, minus the manual rung.
func Array(raw string, def []any) ([]any, Strategy) {
	if a, ok := arrayFromCodeBlock(raw); ok {
		return a, StrategyRegex
	}
	if a, ok := arrayFromBracketScan(raw); ok {
		return a, StrategyBraceMatch
	}
	if a, ok := decodeArray(strings.TrimSpace(raw)); ok {
		return a, StrategyWholeText
	}
	return def, StrategyDefault
}

func objectFromCodeBlock(raw string) (map[string]any, bool) {
	for _, match := range codeBlockRe.FindAllStringSubmatch(raw, -1) {
		if m, ok := decodeObject(match[1]); ok {
			return m, true
		}
	}
	return nil, false
}

func arrayFromCodeBlock(raw string) ([]any, bool) {
	for _, match := range codeBlockRe.FindAllStringSubmatch(raw, -1) {
		if a, ok := decodeArray(match[1]); ok {
			return a, true
		}
	}
	return nil, false
}

// objectFromBraceScan finds each top-level '{' and tries to decode the
// balanced span starting there. Braces inside JSON strings are skipped.
func objectFromBraceScan(raw string) (map[string]any, bool) {
	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}
		span, ok := balancedSpan(raw[start:], '{', '}')
		if !ok {
			continue
		}
		if m, decoded := decodeObject(span); decoded {
			return m, true
		}
		// A balanced but undecodable span often encloses the real object;
		// keep scanning inside it.
	}
	return nil, false
}

func arrayFromBracketScan(raw string) ([]any, bool) {
	for start := 0; start < len(raw); start++ {
		if raw[start] != '[' {
			continue
		}
		span, ok := balancedSpan(raw[start:], '[', ']')
		if !ok {
			continue
		}
		if a, decoded := decodeArray(span); decoded {
			return a, true
		}
	}
	return nil, false
}

// balancedSpan returns the prefix of s spanning from the opening delimiter
// at s[0] to its matching close, honoring string literals and escapes.
func balancedSpan(s string, open, close byte) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

func decodeObject(s string) (map[string]any, bool) {
	if s == "" {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

func decodeArray(s string) ([]any, bool) {
	if s == "" {
		return nil, false
	}
	var a []any
	if err := json.Unmarshal([]byte(s), &a); err != nil || a == nil {
		return nil, false
	}
	return a, true
}
