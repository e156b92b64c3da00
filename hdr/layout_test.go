package hdr

import (
	"errors"
	"testing"
)

func mustLayout(t *testing.T, min, max int64, precision int) Layout {
	t.Helper()
	layout, err := NewLayout(min, max, precision)
	if err != nil {
		t.Fatalf("NewLayout(%d, %d, %d) failed: %v", min, max, precision, err)
	}
	return layout
}

func TestNewLayoutRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name      string
		min, max  int64
		precision int
	}{
		{"zero min", 0, 1000, 3},
		{"negative min", -5, 1000, 3},
		{"max equal min", 10, 10, 3},
		{"max below min", 100, 10, 3},
		{"precision too low", 1, 1000, 0},
		{"precision too high", 1, 1000, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewLayout(tc.min, tc.max, tc.precision); !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestLayoutGeometryMillionPrecision3(t *testing.T) {
	layout := mustLayout(t, 1, 1_000_000, 3)

	if layout.subBucketCount != 2048 {
		t.Fatalf("subBucketCount = %d, want 2048", layout.subBucketCount)
	}
	if layout.subBucketHalfCount != 1024 {
		t.Fatalf("subBucketHalfCount = %d, want 1024", layout.subBucketHalfCount)
	}
	if layout.unitMagnitude != 0 {
		t.Fatalf("unitMagnitude = %d, want 0", layout.unitMagnitude)
	}
	if layout.bucketCount != 10 {
		t.Fatalf("bucketCount = %d, want 10", layout.bucketCount)
	}
	if layout.CountsLen() != 11264 {
		t.Fatalf("CountsLen = %d, want 11264", layout.CountsLen())
	}
}

func TestLayoutGeometryHighMagnitudeMin(t *testing.T) {
	layout := mustLayout(t, 459876, 12_718_782, 5)

	if layout.unitMagnitude != 18 {
		t.Fatalf("unitMagnitude = %d, want 18", layout.unitMagnitude)
	}
	if layout.subBucketCount != 1<<18 {
		t.Fatalf("subBucketCount = %d, want %d", layout.subBucketCount, 1<<18)
	}
}

func TestCountsIndexInjectiveOverRange(t *testing.T) {
	// Small enough range to scan exhaustively: consecutive non-equivalent
	// values must land on consecutive indexes, equivalent values on the same
	// one, so no two distinct equivalence classes collide.
	layout := mustLayout(t, 1, 100_000, 2)

	prevIdx := -1
	for v := int64(0); v < 100_000; v++ {
		idx, err := layout.CountsIndexFor(v)
		if err != nil {
			t.Fatalf("CountsIndexFor(%d) failed: %v", v, err)
		}
		if v == 0 {
			if idx != 0 {
				t.Fatalf("CountsIndexFor(0) = %d, want 0", idx)
			}
			prevIdx = idx
			continue
		}
		if layout.ValuesAreEquivalent(v, v-1) {
			if idx != prevIdx {
				t.Fatalf("equivalent values %d and %d map to indexes %d and %d", v-1, v, prevIdx, idx)
			}
		} else if idx != prevIdx+1 {
			t.Fatalf("non-equivalent values %d and %d map to indexes %d and %d", v-1, v, prevIdx, idx)
		}
		prevIdx = idx
	}
}

func TestCountsIndexForRejectsOutOfRange(t *testing.T) {
	layout := mustLayout(t, 1, 1_000_000, 3)

	if _, err := layout.CountsIndexFor(-1); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("negative value: expected ErrValueOutOfRange, got %v", err)
	}
	if _, err := layout.CountsIndexFor(3_000_000); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("oversized value: expected ErrValueOutOfRange, got %v", err)
	}

	// the last bucket still covers values somewhat above max
	if _, err := layout.CountsIndexFor(1_000_000); err != nil {
		t.Fatalf("CountsIndexFor(max) failed: %v", err)
	}
}

func TestValuesBelowMinEncodeCoarsely(t *testing.T) {
	layout := mustLayout(t, 459876, 12_718_782, 5)

	// below the configured minimum, values resolve at the shifted base
	// resolution instead of raising
	idx, err := layout.CountsIndexFor(1)
	if err != nil {
		t.Fatalf("CountsIndexFor(1) failed: %v", err)
	}
	if idx != 0 {
		t.Fatalf("CountsIndexFor(1) = %d, want 0", idx)
	}
}

func TestEquivalentValueOrdering(t *testing.T) {
	layout := mustLayout(t, 1, 10_000_000, 3)

	for _, v := range []int64{0, 1, 2, 1023, 1024, 2047, 2048, 4096, 500_000, 999_999, 5_000_000} {
		lowest := layout.LowestEquivalentValue(v)
		highest := layout.HighestEquivalentValue(v)
		median := layout.MedianEquivalentValue(v)

		if lowest > v || v > highest {
			t.Fatalf("value %d outside its equivalent range [%d, %d]", v, lowest, highest)
		}
		if median < lowest || median > highest {
			t.Fatalf("median %d of value %d outside [%d, %d]", median, v, lowest, highest)
		}
		if size := layout.EquivalentRangeSize(v); highest-lowest+1 != size {
			t.Fatalf("range size of %d is %d, want %d", v, highest-lowest+1, size)
		}
	}
}

func FuzzEquivalentRoundTrip(f *testing.F) {
	layout, err := NewLayout(1, 10_000_000, 3)
	if err != nil {
		f.Fatalf("NewLayout failed: %v", err)
	}

	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(2047))
	f.Add(int64(2048))
	f.Add(int64(999_999))
	f.Add(int64(9_999_999))

	f.Fuzz(func(t *testing.T, v int64) {
		idx, err := layout.CountsIndexFor(v)
		if err != nil {
			t.Skip()
		}

		lowest := layout.LowestEquivalentValue(v)
		highest := layout.HighestEquivalentValue(v)
		if lowest > v || v > highest {
			t.Fatalf("value %d outside its equivalent range [%d, %d]", v, lowest, highest)
		}

		lowIdx, err := layout.CountsIndexFor(lowest)
		if err != nil || lowIdx != idx {
			t.Fatalf("lowest equivalent %d of %d maps to index %d (err %v), want %d", lowest, v, lowIdx, err, idx)
		}
		highIdx, err := layout.CountsIndexFor(highest)
		if err != nil || highIdx != idx {
			t.Fatalf("highest equivalent %d of %d maps to index %d (err %v), want %d", highest, v, highIdx, err, idx)
		}
	})
}
