// Package internaldefs holds the series-naming helpers shared by the
// Prometheus and OTel exporters, so both expose identical names for the same
// statistic.
package internaldefs
