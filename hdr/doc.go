// Package hdr implements the fixed-memory bucketing core: a layout (bucket
// geometry derived from a value range and significant-figure precision), the
// codec that maps observed values to flat counter indexes, and snapshot-based
// statistic queries (percentile, mean, min, max) driven by a restartable
// bucket iterator.
//
// The bucketing scheme is the standard HDR-histogram scheme: results are
// bit-for-bit compatible with any conformant HDR implementation configured
// with the same (min, max, precision), which is required so exported
// statistics stay comparable across languages.
package hdr
