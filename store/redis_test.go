package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, "gm-test")
}

func TestRedisCreateRejectsDuplicates(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 64); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Create(ctx, "latency", 64); !errors.Is(err, ErrMetricExists) {
		t.Fatalf("expected ErrMetricExists, got %v", err)
	}
}

func TestRedisEnsureIsIdempotent(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Ensure(ctx, "latency", 64); err != nil {
		t.Fatalf("first Ensure failed: %v", err)
	}
	if err := s.Increment(ctx, "latency", 3, 5); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := s.Ensure(ctx, "latency", 64); err != nil {
		t.Fatalf("second Ensure failed: %v", err)
	}

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil || !ok {
		t.Fatalf("Snapshot failed: ok=%v err=%v", ok, err)
	}
	if total != 5 || counts[3] != 5 {
		t.Fatalf("Ensure clobbered the row: total=%d counts[3]=%d", total, counts[3])
	}
}

func TestRedisIncrementUnknownRow(t *testing.T) {
	s := newTestRedisStore(t)

	err := s.Increment(context.Background(), "never-created", 0, 1)
	if !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestRedisIncrementAndSnapshot(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 128); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := s.Increment(ctx, "latency", 7, 1); err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
	}
	if err := s.Increment(ctx, "latency", 42, 3); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !ok {
		t.Fatal("Snapshot reported the row absent")
	}
	if len(counts) != 128 {
		t.Fatalf("snapshot length = %d, want 128", len(counts))
	}
	if total != 13 {
		t.Fatalf("total = %d, want 13", total)
	}
	if counts[7] != 10 || counts[42] != 3 {
		t.Fatalf("counts[7]=%d counts[42]=%d, want 10 and 3", counts[7], counts[42])
	}
	if counts[0] != 0 {
		t.Fatalf("untouched bucket counts[0] = %d, want 0", counts[0])
	}
}

func TestRedisSnapshotAbsentRow(t *testing.T) {
	s := newTestRedisStore(t)

	_, _, ok, err := s.Snapshot(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if ok {
		t.Fatal("Snapshot reported an absent row present")
	}
}

func TestRedisResetZeroesRow(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 64); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Increment(ctx, "latency", 1, 9); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if err := s.Reset(ctx, "latency", 64); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil || !ok {
		t.Fatalf("Snapshot after reset failed: ok=%v err=%v", ok, err)
	}
	if total != 0 {
		t.Fatalf("total after reset = %d, want 0", total)
	}
	for i, c := range counts {
		if c != 0 {
			t.Fatalf("counts[%d] = %d after reset, want 0", i, c)
		}
	}

	// resetting an absent row creates it zeroed
	if err := s.Reset(ctx, "fresh", 32); err != nil {
		t.Fatalf("Reset of absent row failed: %v", err)
	}
	if _, _, ok, _ := s.Snapshot(ctx, "fresh"); !ok {
		t.Fatal("Reset did not create the row")
	}
}

func TestRedisConcurrentIncrementsAreAdditive(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Create(ctx, "latency", 16); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if err := s.Increment(ctx, "latency", 5, 1); err != nil {
					t.Errorf("Increment failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	total, counts, ok, err := s.Snapshot(ctx, "latency")
	if err != nil || !ok {
		t.Fatalf("Snapshot failed: ok=%v err=%v", ok, err)
	}
	if want := int64(writers * perWriter); total != want || counts[5] != want {
		t.Fatalf("total=%d counts[5]=%d, want both %d", total, counts[5], want)
	}
}
