package dedupe

// Option applies a configuration option to the in-memory set.
type Option func(*inMemorySet)

// WithMaxSize bounds the number of keys retained. Zero or negative means
// unbounded.
func WithMaxSize(size int) Option {
	return func(s *inMemorySet) {
		s.maxSize = size
	}
}
