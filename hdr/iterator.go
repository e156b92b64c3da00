package hdr

// Iterator walks a snapshot's counter array in bucket order. It is the single
// traversal mechanism behind every statistic query.
//
// Bucket geometry: the first half of bucket 0's sub-buckets is the linear
// region; every later bucket only uses its upper half, because the lower half
// duplicates the previous bucket's upper half at double resolution. The
// cursor therefore rolls over to subBucketHalfCount, not zero.
//
// An Iterator is not safe for concurrent use; construct one per traversal or
// reuse one via Reset. Reuse never re-reads the underlying counters, so
// successive statistics computed through one iterator are mutually
// consistent.
type Iterator struct {
	snap *Snapshot

	bucketIdx    int32
	subBucketIdx int32

	countAtIdx   int64
	countToIdx   int64
	valueFromIdx int64

	highestEquivalentValue int64
}

// NewIterator returns an iterator positioned before the first bucket of the
// snapshot.
func NewIterator(s *Snapshot) *Iterator {
	it := &Iterator{snap: s}
	it.Reset()
	return it
}

// Reset rewinds the cursor without re-capturing counters.
func (it *Iterator) Reset() {
	it.bucketIdx = 0
	it.subBucketIdx = -1
	it.countAtIdx = 0
	it.countToIdx = 0
	it.valueFromIdx = 0
	it.highestEquivalentValue = 0
}

// step advances the cursor one position without deriving the highest
// equivalent value, bounded by limit delivered counts. The limit lets
// percentile scans stop as soon as the target cumulative count is reached;
// the bucket count remains the hard bound.
func (it *Iterator) step(limit int64) bool {
	if it.countToIdx >= limit {
		return false
	}

	it.subBucketIdx++
	if it.subBucketIdx >= it.snap.layout.subBucketCount {
		it.subBucketIdx = it.snap.layout.subBucketHalfCount
		it.bucketIdx++
	}
	if it.bucketIdx >= it.snap.layout.bucketCount {
		return false
	}

	it.countAtIdx = it.snap.countAt(it.bucketIdx, it.subBucketIdx)
	it.countToIdx += it.countAtIdx
	it.valueFromIdx = it.snap.layout.valueFromIndex(it.bucketIdx, it.subBucketIdx)
	return true
}

// Next advances to the next counter position. It returns false once the
// cumulative delivered count reaches the snapshot total or the cursor runs
// past the last bucket.
func (it *Iterator) Next() bool {
	if !it.step(it.snap.totalCount) {
		return false
	}
	it.highestEquivalentValue = it.snap.layout.HighestEquivalentValue(it.valueFromIdx)
	return true
}

// Count returns the counter value at the current position.
func (it *Iterator) Count() int64 { return it.countAtIdx }

// CumulativeCount returns the counts delivered up to and including the
// current position.
func (it *Iterator) CumulativeCount() int64 { return it.countToIdx }

// Value returns the lowest raw value represented by the current position.
func (it *Iterator) Value() int64 { return it.valueFromIdx }

// HighestEquivalentValue returns the largest raw value represented by the
// current position.
func (it *Iterator) HighestEquivalentValue() int64 { return it.highestEquivalentValue }
