package goMetrics

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MrEthical07/goMetrics/hdr"
	"github.com/google/uuid"
)

// snapshotFor resolves a target to a captured snapshot. A nil snapshot with
// a nil error means "absent": unregistered names, never-recorded template
// instances, and unknown or closed handles all degrade to empty-histogram
// results rather than failing, because dynamic metrics legitimately start
// absent.
func (e *Engine) snapshotFor(ctx context.Context, target Target) (*hdr.Snapshot, error) {
	if target.kind == targetSnapshot {
		e.snapMu.RLock()
		captured := e.snapshots[target.handle.id]
		e.snapMu.RUnlock()
		if captured == nil {
			return nil, nil
		}
		return captured.snap, nil
	}

	layout, name, err := e.resolveLayout(target)
	if err != nil {
		if errors.Is(err, ErrUnknownMetric) || errors.Is(err, ErrTemplateNotRegistered) {
			return nil, nil
		}
		return nil, err
	}

	total, counts, ok, err := e.store.Snapshot(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return hdr.NewSnapshot(layout, total, counts), nil
}

// TotalCount describes the totalcount operation and its observable behavior.
//
// TotalCount returns the number of recorded observations, or 0 for absent
// metrics.
func (e *Engine) TotalCount(ctx context.Context, target Target) (int64, error) {
	if e == nil {
		return 0, ErrEngineNotReady
	}
	snap, err := e.snapshotFor(ctx, target)
	if err != nil || snap == nil {
		return 0, err
	}
	return snap.TotalCount(), nil
}

// Min describes the min operation and its observable behavior.
//
// Min returns the lowest equivalent value of the smallest recorded
// observation, or 0 for empty or absent metrics.
func (e *Engine) Min(ctx context.Context, target Target) (int64, error) {
	if e == nil {
		return 0, ErrEngineNotReady
	}
	snap, err := e.snapshotFor(ctx, target)
	if err != nil || snap == nil {
		return 0, err
	}
	return snap.Min(), nil
}

// Max describes the max operation and its observable behavior.
//
// Max returns the highest equivalent value of the largest recorded
// observation, or 0 for empty or absent metrics.
func (e *Engine) Max(ctx context.Context, target Target) (int64, error) {
	if e == nil {
		return 0, ErrEngineNotReady
	}
	snap, err := e.snapshotFor(ctx, target)
	if err != nil || snap == nil {
		return 0, err
	}
	return snap.Max(), nil
}

// Mean describes the mean operation and its observable behavior.
//
// Mean returns the arithmetic mean of the recorded observations, or 0 for
// empty or absent metrics.
func (e *Engine) Mean(ctx context.Context, target Target) (float64, error) {
	if e == nil {
		return 0, ErrEngineNotReady
	}
	snap, err := e.snapshotFor(ctx, target)
	if err != nil || snap == nil {
		return 0, err
	}
	return snap.Mean(), nil
}

// ValueAtQuantile describes the valueatquantile operation and its observable behavior.
//
// ValueAtQuantile returns the largest value that (100 - q) percent of the
// recorded observations exceed or are equivalent to. q must lie in (0,100];
// anything else fails with ErrInvalidQuantile rather than being clamped.
func (e *Engine) ValueAtQuantile(ctx context.Context, target Target, q float64) (int64, error) {
	if e == nil {
		return 0, ErrEngineNotReady
	}
	if err := validateQuantile(q); err != nil {
		return 0, err
	}
	snap, err := e.snapshotFor(ctx, target)
	if err != nil || snap == nil {
		return 0, err
	}
	return snap.ValueAtQuantile(q), nil
}

// Summary describes the summary operation and its observable behavior.
//
// Summary computes every statistic from one snapshot, so the returned fields
// are mutually consistent. Without explicit quantiles it uses the configured
// export quantiles.
func (e *Engine) Summary(ctx context.Context, target Target, quantiles ...float64) (Summary, error) {
	if e == nil {
		return Summary{}, ErrEngineNotReady
	}
	if len(quantiles) == 0 {
		quantiles = e.config.Export.Quantiles
	}
	for _, q := range quantiles {
		if err := validateQuantile(q); err != nil {
			return Summary{}, err
		}
	}

	out := Summary{Quantiles: make(map[float64]int64, len(quantiles))}
	snap, err := e.snapshotFor(ctx, target)
	if err != nil {
		return Summary{}, err
	}
	if snap == nil {
		for _, q := range quantiles {
			out.Quantiles[q] = 0
		}
		return out, nil
	}

	out.TotalCount = snap.TotalCount()
	out.Min = snap.Min()
	out.Max = snap.Max()
	out.Mean = snap.Mean()
	for _, q := range quantiles {
		out.Quantiles[q] = snap.ValueAtQuantile(q)
	}
	return out, nil
}

// OpenSnapshot describes the opensnapshot operation and its observable behavior.
//
// OpenSnapshot captures the target's counter row and returns a handle.
// Queries through [BySnapshot] of that handle all see the captured state,
// regardless of concurrent writes, until [Engine.CloseSnapshot] releases it.
// Capturing an absent metric succeeds; its queries return the
// empty-histogram results.
func (e *Engine) OpenSnapshot(ctx context.Context, target Target) (SnapshotHandle, error) {
	if e == nil {
		return SnapshotHandle{}, ErrEngineNotReady
	}
	if target.kind == targetSnapshot {
		return SnapshotHandle{}, fmt.Errorf("%w: cannot snapshot a snapshot", ErrInvalidTarget)
	}

	snap, err := e.snapshotFor(ctx, target)
	if err != nil {
		return SnapshotHandle{}, err
	}

	handle := SnapshotHandle{id: uuid.New()}
	e.snapMu.Lock()
	e.snapshots[handle.id] = &capturedSnapshot{snap: snap}
	e.snapMu.Unlock()
	return handle, nil
}

// CloseSnapshot describes the closesnapshot operation and its observable behavior.
//
// CloseSnapshot releases a captured row. Closing an unknown or already
// closed handle fails with ErrSnapshotNotFound.
func (e *Engine) CloseSnapshot(handle SnapshotHandle) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.snapMu.Lock()
	defer e.snapMu.Unlock()
	if _, ok := e.snapshots[handle.id]; !ok {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, handle)
	}
	delete(e.snapshots, handle.id)
	return nil
}

func validateQuantile(q float64) error {
	if math.IsNaN(q) || q <= 0 || q > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantile, q)
	}
	return nil
}
