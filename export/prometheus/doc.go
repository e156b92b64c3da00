// Package prometheus renders goMetrics histogram statistics in the
// Prometheus text exposition format, one gauge series per statistic per
// registered metric.
package prometheus
