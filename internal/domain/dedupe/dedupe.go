// Package dedupe tracks already-seen upload content so byte-identical files
// are answered from the session instead of being recomputed.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Recall maps content hashes to dataset ids for the current session.
type Recall interface {
	// Remember records that hash resolved to datasetID.
	Remember(ctx context.Context, hash, datasetID string)

	// Lookup returns the dataset id previously recorded for hash.
	Lookup(ctx context.Context, hash string) (string, bool)

	// Forget drops the entry for hash. Used when the dataset it points to
	// leaves the store.
	Forget(ctx context.Context, hash string)

	Size() int64
}

// inMemoryRecall implements Recall with a bounded map. When the cache is
// full the oldest entry by insertion order is evicted first.
type inMemoryRecall struct {
	mu      sync.RWMutex
	entries map[string]string
	order   []string
	maxSize int
	size    atomic.Int64
}

// defaultMaxSize bounds the cache when no option overrides it.
const defaultMaxSize = 256

// NewInMemoryRecall creates a bounded in-memory recall cache.
func NewInMemoryRecall(opts ...Option) Recall {
	r := &inMemoryRecall{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.entries = make(map[string]string)
	return r
}

func (r *inMemoryRecall) Remember(_ context.Context, hash, datasetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[hash]; exists {
		r.entries[hash] = datasetID
		return
	}

	if r.maxSize > 0 && len(r.entries) >= r.maxSize {
		r.evictOldest()
	}

	r.entries[hash] = datasetID
	r.order = append(r.order, hash)
	r.size.Add(1)
}

func (r *inMemoryRecall) Lookup(_ context.Context, hash string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.entries[hash]
	return id, ok
}

func (r *inMemoryRecall) Forget(_ context.Context, hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[hash]; !exists {
		return
	}
	delete(r.entries, hash)
	for i, h := range r.order {
		if h == hash {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.size.Add(-1)
}

// evictOldest removes the least recently inserted entry.
// Must be called with r.mu held.
func (r *inMemoryRecall) evictOldest() {
	if len(r.order) == 0 {
		return
	}
	oldest := r.order[0]
	r.order = r.order[1:]
	delete(r.entries, oldest)
	r.size.Add(-1)
}

// Size returns the current number of entries in the cache.
func (r *inMemoryRecall) Size() int64 {
	return r.size.Load()
}
