// Package store defines the counter-row collaborator the histogram engine
// records into, plus the two shipped implementations: a Redis-backed store
// whose bucket+total increment is a single Lua script, and an in-process
// store built on atomic counters.
//
// # Design
//
// A row is a fixed-length array of non-negative counters plus a running
// total, keyed by metric name. Rows are created zeroed, mutated only by
// atomic increments, and read only as point-in-time snapshots. Concurrent
// increments from any number of callers are additive; the store, not the
// caller, resolves contention.
//
// # What this package must NOT do
//
//   - Interpret counter indexes (bucket geometry belongs to package hdr).
//   - Validate values or quantiles (the engine owns the error taxonomy).
//   - Spawn goroutines or cache snapshots.
package store
