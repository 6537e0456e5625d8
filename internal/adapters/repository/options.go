// Package repository defines the session dataset store interface and errors.
package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxDatasets bounds the number of datasets held at once.
// When full the oldest dataset by upload time is evicted first.
func WithMaxDatasets(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.maxDatasets = n
		}
	}
}

// WithTTL sets the per-dataset time to live. Expiry is evaluated lazily
// on access; there is no janitor goroutine. A zero TTL disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemStore) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithEvictionFunc sets a callback invoked for every dataset that leaves
// the store without an explicit Delete (capacity eviction or TTL expiry).
func WithEvictionFunc(fn func(*Dataset)) Option {
	return func(s *MemStore) {
		if fn != nil {
			s.onEvict = fn
		}
	}
}
