// Package otel bridges goMetrics histogram statistics into OpenTelemetry
// observable instruments. Statistics are pulled at collection time through a
// registered callback; dynamically created template instances appear on the
// next collection via a per-series metric-name attribute.
package otel
