package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	goMetrics "github.com/MrEthical07/goMetrics"
	"github.com/MrEthical07/goMetrics/export/internaldefs"
)

type statsSource interface {
	Names() []string
	ExportNamespace() string
	ExportQuantiles() []float64
	Summary(ctx context.Context, target goMetrics.Target, quantiles ...float64) (goMetrics.Summary, error)
}

// PrometheusExporter renders histogram statistics in Prometheus text
// exposition format. Every statistic is a gauge computed from one per-metric
// snapshot at scrape time, so the series of one metric are mutually
// consistent within a scrape.
type PrometheusExporter struct {
	source statsSource
}

// NewPrometheusExporter creates an exporter that reads from the given
// [goMetrics.Engine].
func NewPrometheusExporter(engine *goMetrics.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource creates an exporter from a custom source.
func NewPrometheusExporterFromSource(source statsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves the exposition.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render(r.Context())))
	})
}

// Render writes the current statistics of every registered metric.
func (p *PrometheusExporter) Render(ctx context.Context) string {
	if p == nil || p.source == nil {
		return ""
	}

	namespace := p.source.ExportNamespace()
	quantiles := p.source.ExportQuantiles()

	var b strings.Builder
	b.Grow(4096)

	for _, name := range p.source.Names() {
		summary, err := p.source.Summary(ctx, goMetrics.ByName(name), quantiles...)
		if err != nil {
			// one unreadable row must not poison the whole scrape
			continue
		}

		writeGauge(&b, internaldefs.SeriesName(namespace, name, "count"), "Total recorded observations.", float64(summary.TotalCount))
		writeGauge(&b, internaldefs.SeriesName(namespace, name, "min"), "Lowest equivalent recorded value.", float64(summary.Min))
		writeGauge(&b, internaldefs.SeriesName(namespace, name, "max"), "Highest equivalent recorded value.", float64(summary.Max))
		writeGauge(&b, internaldefs.SeriesName(namespace, name, "mean"), "Mean of recorded values.", summary.Mean)
		for _, q := range quantiles {
			series := internaldefs.SeriesName(namespace, name, internaldefs.QuantileSuffix(q))
			writeGauge(&b, series, "Value at quantile.", float64(summary.Quantiles[q]))
		}
	}

	return b.String()
}

func writeGauge(b *strings.Builder, name, help string, value float64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(help)
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" gauge\n")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
	b.WriteByte('\n')
}
