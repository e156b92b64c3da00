// Package internal contains coordination helpers that are intentionally
// private to goMetrics.
//
// # Sub-packages
//
//   - registry — name→layout table for static metrics and templates
//
// # What this package must NOT do
//
//   - Export types that appear in the public goMetrics API.
//   - Be imported by any package outside the goMetrics module.
package internal
