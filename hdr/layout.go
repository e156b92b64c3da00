package hdr

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrInvalidConfiguration is returned by NewLayout when the requested range or
// precision violates the constructor constraints.
var ErrInvalidConfiguration = errors.New("invalid histogram configuration")

// ErrValueOutOfRange is returned when a value maps outside the counter array
// configured by the layout. It indicates a configuration/data mismatch the
// caller should observe (e.g. widen max), not a defect.
var ErrValueOutOfRange = errors.New("value out of histogram range")

// Layout is the immutable bucket geometry of a histogram. It is computed once
// from (min, max, precision) and parameterizes every codec and statistic
// operation. Layout is a plain value; copies are cheap and safe to share
// across goroutines.
type Layout struct {
	lowestDiscernible  int64
	highestTrackable   int64
	significantFigures int

	unitMagnitude               int64
	subBucketHalfCountMagnitude int32
	subBucketHalfCount          int32
	subBucketMask               int64
	subBucketCount              int32
	bucketCount                 int32
	countsLen                   int32
}

// NewLayout derives the bucket geometry for values in [min, max] preserving
// precision significant decimal digits at any magnitude.
//
// Constraints: min >= 1, max > min, precision in [1,5]. Violations return
// ErrInvalidConfiguration. Values below min still encode, at coarser
// resolution; values above max are rejected at record time.
func NewLayout(min, max int64, precision int) (Layout, error) {
	if min < 1 {
		return Layout{}, fmt.Errorf("%w: min must be >= 1, got %d", ErrInvalidConfiguration, min)
	}
	if max <= min {
		return Layout{}, fmt.Errorf("%w: max must be > min, got min=%d max=%d", ErrInvalidConfiguration, min, max)
	}
	if precision < 1 || precision > 5 {
		return Layout{}, fmt.Errorf("%w: precision must be in [1,5], got %d", ErrInvalidConfiguration, precision)
	}

	// precision significant digits means single-unit resolution must hold up
	// to 2*10^precision: +/- 1 unit at 1000 implies +/- 2 units only from
	// 2000 on, so the linear region has to reach twice the decimal bound.
	largestValueWithSingleUnitResolution := 2 * math.Pow10(precision)

	subBucketCountMagnitude := int32(math.Ceil(math.Log2(largestValueWithSingleUnitResolution)))
	subBucketHalfCountMagnitude := subBucketCountMagnitude
	if subBucketHalfCountMagnitude < 1 {
		subBucketHalfCountMagnitude = 1
	}
	subBucketHalfCountMagnitude--

	unitMagnitude := int64(math.Floor(math.Log2(float64(min))))
	if unitMagnitude < 0 {
		unitMagnitude = 0
	}

	subBucketCount := int32(1) << uint(subBucketHalfCountMagnitude+1)
	subBucketHalfCount := subBucketCount / 2
	subBucketMask := int64(subBucketCount-1) << uint(unitMagnitude)

	smallestUntrackable := int64(subBucketCount) << uint(unitMagnitude)
	bucketCount := bucketsNeededToCover(smallestUntrackable, max)
	countsLen := (bucketCount + 1) * subBucketHalfCount

	return Layout{
		lowestDiscernible:           min,
		highestTrackable:            max,
		significantFigures:          precision,
		unitMagnitude:               unitMagnitude,
		subBucketHalfCountMagnitude: subBucketHalfCountMagnitude,
		subBucketHalfCount:          subBucketHalfCount,
		subBucketMask:               subBucketMask,
		subBucketCount:              subBucketCount,
		bucketCount:                 bucketCount,
		countsLen:                   countsLen,
	}, nil
}

// bucketsNeededToCover doubles the smallest untrackable value until it covers
// max, starting from one bucket.
func bucketsNeededToCover(smallestUntrackable, max int64) int32 {
	needed := int32(1)
	for smallestUntrackable < max {
		if smallestUntrackable > math.MaxInt64/2 {
			// next shift overflows; that bucket already covers everything
			return needed + 1
		}
		smallestUntrackable <<= 1
		needed++
	}
	return needed
}

// LowestDiscernible returns the configured minimum of the tracked range.
func (l Layout) LowestDiscernible() int64 { return l.lowestDiscernible }

// HighestTrackable returns the configured maximum of the tracked range.
func (l Layout) HighestTrackable() int64 { return l.highestTrackable }

// SignificantFigures returns the configured decimal precision.
func (l Layout) SignificantFigures() int { return l.significantFigures }

// CountsLen returns the fixed length of the counter array this layout
// addresses, excluding the running total.
func (l Layout) CountsLen() int { return int(l.countsLen) }

// bucketIndex returns the lowest bucket index able to represent v. OR-ing in
// the sub-bucket mask lets a single bit-length computation cover the linear
// region of bucket 0 as well.
func (l Layout) bucketIndex(v int64) int32 {
	pow2Ceiling := int64(64 - bits.LeadingZeros64(uint64(v)|uint64(l.subBucketMask)))
	return int32(pow2Ceiling - l.unitMagnitude - int64(l.subBucketHalfCountMagnitude+1))
}

// subBucketIndex returns the linear position of v within bucketIdx. For
// bucketIdx > 0 the result always lands in the upper half of subBucketCount;
// a lower-half hit would have resolved to the previous bucket.
func (l Layout) subBucketIndex(v int64, bucketIdx int32) int32 {
	return int32(v >> uint(int64(bucketIdx)+l.unitMagnitude))
}

// countsIndex flattens a (bucket, sub-bucket) pair into the counter array.
func (l Layout) countsIndex(bucketIdx, subBucketIdx int32) int32 {
	return ((bucketIdx + 1) << uint(l.subBucketHalfCountMagnitude)) + subBucketIdx - l.subBucketHalfCount
}

// CountsIndexFor maps an observed value to its flat counter index. Values
// that flatten outside [0, CountsLen) return ErrValueOutOfRange; no index is
// produced for them, so callers can reject the observation before touching
// any counter.
func (l Layout) CountsIndexFor(v int64) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: negative value %d", ErrValueOutOfRange, v)
	}
	bucketIdx := l.bucketIndex(v)
	subBucketIdx := l.subBucketIndex(v, bucketIdx)
	idx := l.countsIndex(bucketIdx, subBucketIdx)
	if idx < 0 || idx >= l.countsLen {
		return 0, fmt.Errorf("%w: value %d exceeds highest trackable value %d", ErrValueOutOfRange, v, l.highestTrackable)
	}
	return int(idx), nil
}

// valueFromIndex reconstructs the lowest raw value of a (bucket, sub-bucket)
// position.
func (l Layout) valueFromIndex(bucketIdx, subBucketIdx int32) int64 {
	return int64(subBucketIdx) << uint(int64(bucketIdx)+l.unitMagnitude)
}

// EquivalentRangeSize returns the width of the equivalent value range
// containing v: the number of raw values this layout cannot tell apart at
// that magnitude.
func (l Layout) EquivalentRangeSize(v int64) int64 {
	bucketIdx := l.bucketIndex(v)
	subBucketIdx := l.subBucketIndex(v, bucketIdx)
	adjustedBucket := bucketIdx
	if subBucketIdx >= l.subBucketCount {
		adjustedBucket++
	}
	return int64(1) << uint(l.unitMagnitude+int64(adjustedBucket))
}

// LowestEquivalentValue returns the smallest raw value mapping to the same
// counter as v.
func (l Layout) LowestEquivalentValue(v int64) int64 {
	bucketIdx := l.bucketIndex(v)
	subBucketIdx := l.subBucketIndex(v, bucketIdx)
	return l.valueFromIndex(bucketIdx, subBucketIdx)
}

// NextNonEquivalentValue returns the smallest raw value mapping to the
// counter after v's.
func (l Layout) NextNonEquivalentValue(v int64) int64 {
	return l.LowestEquivalentValue(v) + l.EquivalentRangeSize(v)
}

// HighestEquivalentValue returns the largest raw value mapping to the same
// counter as v.
func (l Layout) HighestEquivalentValue(v int64) int64 {
	return l.NextNonEquivalentValue(v) - 1
}

// MedianEquivalentValue returns the midpoint of v's equivalent value range,
// used as the representative value when computing the mean.
func (l Layout) MedianEquivalentValue(v int64) int64 {
	return l.LowestEquivalentValue(v) + (l.EquivalentRangeSize(v) >> 1)
}

// ValuesAreEquivalent reports whether two raw values land in the same
// counter at this layout's precision.
func (l Layout) ValuesAreEquivalent(a, b int64) bool {
	return l.LowestEquivalentValue(a) == l.LowestEquivalentValue(b)
}
