// Package dedupe provides key-based deduplication for stage outputs.
//
// Stages collect candidates from several sources (deck text, per-founder
// lookups, repeated search terms) and need at-most-once retention by a
// caller-chosen key: competitors by lowercased name, repositories by URL,
// founders by name plus code-hosting username.
package dedupe

import (
	"strings"
	"sync"
)

// Set records seen keys. Keys are normalized to lowercase with surrounding
// whitespace trimmed; empty keys are never recorded.
type Set interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(key string) bool

	// Size returns the number of recorded keys.
	Size() int
}

// inMemorySet implements Set with a plain map. Bounded mode evicts nothing;
// stage outputs are small (tens of entries), so maxSize only guards against
// pathological inputs.
type inMemorySet struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	maxSize int
}

// NewSet creates a deduplication set with configuration options.
func NewSet(opts ...Option) Set {
	s := &inMemorySet{
		maxSize: 1024, // default bound
	}

	for _, opt := range opts {
		opt(s)
	}

	s.seen = make(map[string]struct{})
	return s
}

// SeenAndRecord atomically checks if key was seen and records it if not.
func (s *inMemorySet) SeenAndRecord(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return true // nothing to record; treat as duplicate so callers drop it
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[normalized]; exists {
		return true
	}
	if s.maxSize > 0 && len(s.seen) >= s.maxSize {
		return true // full; refuse new keys rather than grow unbounded
	}
	s.seen[normalized] = struct{}{}
	return false
}

// Size returns the number of recorded keys.
func (s *inMemorySet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// CompositeKey joins key parts with a separator that cannot appear in
// normalized parts, for multi-field identity (e.g. name + username).
func CompositeKey(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(normalized, "\x1f")
}
