package store

import (
	"context"
	"errors"
)

// ErrMetricExists is returned by Create when a row with the same name is
// already present.
var ErrMetricExists = errors.New("metric row already exists")

// ErrUnknownMetric is returned by Increment when the named row was never
// created. For statically registered metrics this is a programming error;
// dynamically templated metrics must go through Ensure first.
var ErrUnknownMetric = errors.New("unknown metric row")

// ErrStoreUnavailable wraps backend failures (connection loss, script
// errors). Callers match it with errors.Is.
var ErrStoreUnavailable = errors.New("counter store unavailable")

// CounterStore is the contract between the histogram engine and the backing
// table. Every mutation is atomic: a bucket increment and its total-count
// bump are indivisible and immediately visible to concurrent readers.
type CounterStore interface {
	// Create allocates a zeroed row of countsLen counters. It fails with
	// ErrMetricExists if the row is already present.
	Create(ctx context.Context, name string, countsLen int) error

	// Ensure allocates a zeroed row if absent and is a no-op otherwise.
	// Racing callers all observe a created row; none observes an error.
	Ensure(ctx context.Context, name string, countsLen int) error

	// Increment atomically adds amount to the counter at index and to the
	// row's total. It fails with ErrUnknownMetric when the row is absent.
	Increment(ctx context.Context, name string, index int, amount int64) error

	// Snapshot returns a point-in-time copy of the row. ok is false when the
	// row is absent; that is not an error. The returned slice is owned by
	// the caller.
	Snapshot(ctx context.Context, name string) (total int64, counts []int64, ok bool, err error)

	// Reset replaces the row with a zeroed row of countsLen counters,
	// creating it if absent.
	Reset(ctx context.Context, name string, countsLen int) error
}
