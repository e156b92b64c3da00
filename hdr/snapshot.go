package hdr

// Snapshot is a point-in-time copy of one counter row paired with its layout.
// All statistic queries run against snapshots, never against live counters:
// writes that land after the snapshot was taken are invisible to it, and any
// number of statistics computed from one snapshot agree with each other.
type Snapshot struct {
	layout     Layout
	totalCount int64
	counts     []int64
}

// NewSnapshot wraps a captured counter row. The snapshot takes ownership of
// counts; callers must not mutate the slice afterwards. A row shorter than
// the layout's counter length is padded with zeroes, so sparse store
// representations decode safely.
func NewSnapshot(layout Layout, totalCount int64, counts []int64) *Snapshot {
	if len(counts) < layout.CountsLen() {
		full := make([]int64, layout.CountsLen())
		copy(full, counts)
		counts = full
	}
	return &Snapshot{
		layout:     layout,
		totalCount: totalCount,
		counts:     counts,
	}
}

// Layout returns the bucket geometry this snapshot was captured under.
func (s *Snapshot) Layout() Layout { return s.layout }

// TotalCount returns the number of recorded observations at capture time.
func (s *Snapshot) TotalCount() int64 { return s.totalCount }

func (s *Snapshot) countAt(bucketIdx, subBucketIdx int32) int64 {
	return s.counts[s.layout.countsIndex(bucketIdx, subBucketIdx)]
}

// Min returns the lowest equivalent value of the smallest recorded
// observation, or 0 when the snapshot is empty.
func (s *Snapshot) Min() int64 {
	var min int64
	it := NewIterator(s)
	for it.Next() {
		if it.Count() != 0 {
			min = it.HighestEquivalentValue()
			break
		}
	}
	return s.layout.LowestEquivalentValue(min)
}

// Max returns the highest equivalent value of the largest recorded
// observation, or 0 when the snapshot is empty.
func (s *Snapshot) Max() int64 {
	var max int64
	it := NewIterator(s)
	for it.Next() {
		if it.Count() != 0 {
			max = it.HighestEquivalentValue()
		}
	}
	if max == 0 {
		return 0
	}
	return s.layout.HighestEquivalentValue(max)
}

// Mean returns the arithmetic mean of the recorded observations, with each
// counter represented by the median of its equivalent value range. An empty
// snapshot has mean 0.
func (s *Snapshot) Mean() float64 {
	if s.totalCount == 0 {
		return 0
	}
	var total int64
	it := NewIterator(s)
	for it.Next() {
		if it.Count() != 0 {
			total += it.Count() * s.layout.MedianEquivalentValue(it.Value())
		}
	}
	return float64(total) / float64(s.totalCount)
}

// ValueAtQuantile returns the largest value that (100 - q) percent of the
// recorded observations exceed or are equivalent to. The target rank is
// q/100 of the total, rounded half up.
//
// q must lie in (0, 100]; q above 100 is clamped. The public engine boundary
// rejects out-of-domain quantiles before reaching this method. Returns 0 for
// an empty snapshot.
func (s *Snapshot) ValueAtQuantile(q float64) int64 {
	if q > 100 {
		q = 100
	}
	target := int64((q/100)*float64(s.totalCount) + 0.5)

	var valueFromIdx int64
	it := NewIterator(s)
	for it.step(target) {
		valueFromIdx = it.Value()
	}
	if valueFromIdx == 0 && s.totalCount == 0 {
		return 0
	}
	return s.layout.HighestEquivalentValue(valueFromIdx)
}
