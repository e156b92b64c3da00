package internaldefs

import (
	"strconv"
	"strings"
)

// StatSuffixes are the fixed per-metric series, in export order.
var StatSuffixes = []string{"count", "min", "max", "mean"}

// SanitizeName rewrites a metric name into a valid exposition series name:
// anything outside [a-zA-Z0-9_] becomes '_', and a leading digit gets a '_'
// prefix.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// QuantileSuffix renders a quantile point as a series suffix: 50 -> "p50",
// 99.9 -> "p99_9".
func QuantileSuffix(q float64) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	return "p" + strings.ReplaceAll(s, ".", "_")
}

// SeriesName joins namespace, metric and stat into one exposition name.
func SeriesName(namespace, metric, stat string) string {
	return namespace + "_" + SanitizeName(metric) + "_" + stat
}
