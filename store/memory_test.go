package store

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryCreateRejectsDuplicates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 64); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Create(ctx, "latency", 64); !errors.Is(err, ErrMetricExists) {
		t.Fatalf("expected ErrMetricExists, got %v", err)
	}
}

func TestMemoryIncrementUnknownRow(t *testing.T) {
	s := NewMemoryStore()

	err := s.Increment(context.Background(), "never-created", 0, 1)
	if !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestMemoryEnsureKeepsExistingRow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Ensure(ctx, "latency", 32); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if err := s.Increment(ctx, "latency", 2, 4); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := s.Ensure(ctx, "latency", 32); err != nil {
		t.Fatalf("second Ensure failed: %v", err)
	}

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil || !ok {
		t.Fatalf("Snapshot failed: ok=%v err=%v", ok, err)
	}
	if total != 4 || counts[2] != 4 {
		t.Fatalf("Ensure clobbered the row: total=%d counts[2]=%d", total, counts[2])
	}
}

func TestMemorySnapshotIsACopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 8); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Increment(ctx, "latency", 1, 1); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}

	_, counts, _, err := s.Snapshot(ctx, "latency")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	// later writes must not leak into an already taken snapshot
	if err := s.Increment(ctx, "latency", 1, 1); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if counts[1] != 1 {
		t.Fatalf("snapshot mutated by a later write: counts[1] = %d", counts[1])
	}
}

func TestMemoryResetZeroesRow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 16); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Increment(ctx, "latency", 0, 7); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := s.Reset(ctx, "latency", 16); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil || !ok {
		t.Fatalf("Snapshot after reset failed: ok=%v err=%v", ok, err)
	}
	if total != 0 || counts[0] != 0 {
		t.Fatalf("reset row not zeroed: total=%d counts[0]=%d", total, counts[0])
	}
}

func TestMemoryConcurrentIncrementsAreAdditive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 16); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const writers = 16
	const perWriter = 1000

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(bucket int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if err := s.Increment(ctx, "latency", bucket%16, 1); err != nil {
					t.Errorf("Increment failed: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil || !ok {
		t.Fatalf("Snapshot failed: ok=%v err=%v", ok, err)
	}
	if want := int64(writers * perWriter); total != want {
		t.Fatalf("total = %d, want %d", total, want)
	}
	var sum int64
	for _, c := range counts {
		sum += c
	}
	if sum != int64(writers*perWriter) {
		t.Fatalf("bucket sum = %d, want %d", sum, writers*perWriter)
	}
}
