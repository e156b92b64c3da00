package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

type memoryRow struct {
	total  atomic.Int64
	counts []atomic.Int64
}

// MemoryStore is an in-process CounterStore for zero-infrastructure use and
// tests. Increments are lock-free atomic adds against a fixed-size row; the
// row map itself is guarded by an RWMutex only for create/reset.
//
// A bucket add lands before its total bump, and Snapshot reads the total
// before the buckets, so a snapshot's total never exceeds the observations
// its counters contain. Traversals bound themselves by the captured total.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*memoryRow
}

var _ CounterStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]*memoryRow)}
}

func newMemoryRow(countsLen int) *memoryRow {
	return &memoryRow{counts: make([]atomic.Int64, countsLen)}
}

// Create allocates a zeroed row, failing with ErrMetricExists when present.
func (s *MemoryStore) Create(_ context.Context, name string, countsLen int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[name]; ok {
		return fmt.Errorf("%w: %s", ErrMetricExists, name)
	}
	s.rows[name] = newMemoryRow(countsLen)
	return nil
}

// Ensure allocates a zeroed row if absent.
func (s *MemoryStore) Ensure(_ context.Context, name string, countsLen int) error {
	s.mu.RLock()
	_, ok := s.rows[name]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[name]; !ok {
		s.rows[name] = newMemoryRow(countsLen)
	}
	return nil
}

// Increment atomically bumps one bucket counter and the row total.
func (s *MemoryStore) Increment(_ context.Context, name string, index int, amount int64) error {
	s.mu.RLock()
	row := s.rows[name]
	s.mu.RUnlock()
	if row == nil {
		return fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	if index < 0 || index >= len(row.counts) {
		return fmt.Errorf("%w: index %d outside row %s of length %d", ErrUnknownMetric, index, name, len(row.counts))
	}
	row.counts[index].Add(amount)
	row.total.Add(amount)
	return nil
}

// Snapshot copies the row under atomic loads, total first.
func (s *MemoryStore) Snapshot(_ context.Context, name string) (int64, []int64, bool, error) {
	s.mu.RLock()
	row := s.rows[name]
	s.mu.RUnlock()
	if row == nil {
		return 0, nil, false, nil
	}

	total := row.total.Load()
	counts := make([]int64, len(row.counts))
	for i := range row.counts {
		counts[i] = row.counts[i].Load()
	}
	return total, counts, true, nil
}

// Reset replaces the row with a zeroed one, creating it if absent.
func (s *MemoryStore) Reset(_ context.Context, name string, countsLen int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[name] = newMemoryRow(countsLen)
	return nil
}
