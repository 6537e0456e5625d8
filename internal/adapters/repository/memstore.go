package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Adelson021/rfv/pkg/metrics"
)

// Default store bounds.
const (
	defaultMaxDatasets = 16
)

// MemStore is an in-memory Store. Datasets live only for the session:
// bounded count with oldest-first eviction, optional TTL checked lazily
// on every access.
type MemStore struct {
	mu          sync.Mutex
	datasets    map[string]*Dataset
	maxDatasets int
	ttl         time.Duration
	onEvict     func(*Dataset)
	now         func() time.Time
}

// NewMemStore creates an in-memory dataset store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		maxDatasets: defaultMaxDatasets,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.datasets = make(map[string]*Dataset)
	return s
}

func (s *MemStore) Put(ctx context.Context, ds *Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ds == nil {
		return ErrNilDataset
	}
	if ds.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	if _, exists := s.datasets[ds.ID]; !exists && len(s.datasets) >= s.maxDatasets {
		s.evictOldestLocked()
	}
	s.datasets[ds.ID] = ds
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ds, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	if _, ok := s.datasets[id]; !ok {
		return ErrNotFound
	}
	delete(s.datasets, id)
	return nil
}

func (s *MemStore) List(ctx context.Context) []*Dataset {
	if err := ctx.Err(); err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	out := make([]*Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out
}

func (s *MemStore) Count(ctx context.Context) int {
	if err := ctx.Err(); err != nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	return len(s.datasets)
}

// purgeExpiredLocked drops every dataset past its TTL.
// Must be called with s.mu held.
func (s *MemStore) purgeExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, ds := range s.datasets {
		if ds.UploadedAt.Before(cutoff) {
			delete(s.datasets, id)
			metrics.RecordStoreExpiration()
			if s.onEvict != nil {
				s.onEvict(ds)
			}
		}
	}
}

// evictOldestLocked removes the dataset with the earliest upload time.
// Must be called with s.mu held.
func (s *MemStore) evictOldestLocked() {
	var oldest *Dataset
	for _, ds := range s.datasets {
		if oldest == nil || ds.UploadedAt.Before(oldest.UploadedAt) {
			oldest = ds
		}
	}
	if oldest == nil {
		return
	}
	delete(s.datasets, oldest.ID)
	metrics.RecordStoreEviction()
	if s.onEvict != nil {
		s.onEvict(oldest)
	}
}
