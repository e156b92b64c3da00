// Package goMetrics provides a concurrent, fixed-memory histogram engine for
// high-frequency instrumentation: many writers recording non-negative integer
// observations (latencies, sizes), occasional readers computing percentiles,
// mean, min, max and counts in time proportional to the bucket geometry
// rather than to the number of observations.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goMetrics is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (Target, Summary, SnapshotHandle). The bucketing math lives
// in package hdr, counter rows live behind the store.CounterStore contract,
// and name→layout coordination lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose store clients, row encodings, or bucket internals in its API.
//   - Spawn goroutines: every operation runs synchronously on the caller.
//   - Import any sub-package that re-imports goMetrics (no import cycles).
//
// # Performance contract
//
// Record is the hot path. It must cost one codec computation plus one atomic
// store increment, with no locking in this package. Queries take one row
// snapshot and fold over it locally; concurrent writes after the snapshot
// never affect an in-flight query.
package goMetrics
