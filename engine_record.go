package goMetrics

import (
	"context"
	"fmt"
)

// Record describes the record operation and its observable behavior.
//
// Record adds one observation of value to the target metric: one codec
// computation plus one atomic store increment, lock-free from this package's
// perspective and safe under arbitrary writer concurrency. A value above the
// metric's configured maximum returns ErrValueOutOfRange without touching
// any counter; values below the configured minimum record at coarser
// resolution and are not an error.
func (e *Engine) Record(ctx context.Context, target Target, value int64) error {
	return e.RecordN(ctx, target, value, 1)
}

// RecordN describes the recordn operation and its observable behavior.
//
// RecordN adds n observations of value in a single atomic increment. n must
// be positive; anything else fails with ErrInvalidCount.
func (e *Engine) RecordN(ctx context.Context, target Target, value, n int64) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if target.kind == targetSnapshot {
		return fmt.Errorf("%w: snapshots are read-only", ErrInvalidTarget)
	}
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	layout, name, err := e.resolveLayout(target)
	if err != nil {
		return err
	}

	idx, err := layout.CountsIndexFor(value)
	if err != nil {
		return err
	}

	// Template instances materialize on first record. Ensure is idempotent,
	// so racing first writers both land their increments on one zeroed row.
	if target.kind == targetTemplate {
		if _, known := e.registry.LookupMetric(name); !known {
			if err := e.store.Ensure(ctx, name, layout.CountsLen()); err != nil {
				return err
			}
			e.registry.RememberInstance(name, layout)
		}
	}

	return e.store.Increment(ctx, name, idx, n)
}

// MustRecord describes the mustrecord operation and its observable behavior.
//
// MustRecord is the fail-loud variant of [Engine.Record]: it panics instead
// of returning an error, for callers that treat out-of-range observations as
// defects.
func (e *Engine) MustRecord(ctx context.Context, target Target, value int64) {
	if err := e.Record(ctx, target, value); err != nil {
		panic(err)
	}
}
