// Package dedupe tracks already-seen upload content.
package dedupe

// Option applies a configuration option to the InMemoryRecall.
type Option func(*inMemoryRecall)

// WithMaxSize sets the maximum number of entries to keep in memory.
// If maxSize <= 0 the cache is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRecall) {
		r.maxSize = maxSize
	}
}
