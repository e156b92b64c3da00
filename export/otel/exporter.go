package otel

import (
	"context"
	"errors"
	"fmt"

	goMetrics "github.com/MrEthical07/goMetrics"
	"github.com/MrEthical07/goMetrics/export/internaldefs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil statistics source")
)

type statsSource interface {
	Names() []string
	ExportNamespace() string
	ExportQuantiles() []float64
	Summary(ctx context.Context, target goMetrics.Target, quantiles ...float64) (goMetrics.Summary, error)
}

// OTelExporter publishes per-metric statistics as observable gauges keyed by
// a "metric" attribute, so metrics registered after construction (template
// instances) are picked up without re-registering instruments.
type OTelExporter struct {
	source       statsSource
	registration metric.Registration

	count    metric.Int64ObservableGauge
	min      metric.Int64ObservableGauge
	max      metric.Int64ObservableGauge
	mean     metric.Float64ObservableGauge
	quantile metric.Int64ObservableGauge
}

// NewOTelExporter creates an exporter that reads from the given
// [goMetrics.Engine].
func NewOTelExporter(meter metric.Meter, engine *goMetrics.Engine) (*OTelExporter, error) {
	if engine == nil {
		return nil, ErrNilSource
	}
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource creates an exporter from a custom source.
func NewOTelExporterFromSource(meter metric.Meter, source statsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	namespace := internaldefs.SanitizeName(source.ExportNamespace())
	exporter := &OTelExporter{source: source}

	var err error
	if exporter.count, err = meter.Int64ObservableGauge(namespace+"_histogram_count", metric.WithDescription("Total recorded observations.")); err != nil {
		return nil, fmt.Errorf("create count gauge: %w", err)
	}
	if exporter.min, err = meter.Int64ObservableGauge(namespace+"_histogram_min", metric.WithDescription("Lowest equivalent recorded value.")); err != nil {
		return nil, fmt.Errorf("create min gauge: %w", err)
	}
	if exporter.max, err = meter.Int64ObservableGauge(namespace+"_histogram_max", metric.WithDescription("Highest equivalent recorded value.")); err != nil {
		return nil, fmt.Errorf("create max gauge: %w", err)
	}
	if exporter.mean, err = meter.Float64ObservableGauge(namespace+"_histogram_mean", metric.WithDescription("Mean of recorded values.")); err != nil {
		return nil, fmt.Errorf("create mean gauge: %w", err)
	}
	if exporter.quantile, err = meter.Int64ObservableGauge(namespace+"_histogram_quantile", metric.WithDescription("Value at quantile.")); err != nil {
		return nil, fmt.Errorf("create quantile gauge: %w", err)
	}

	registration, err := meter.RegisterCallback(
		exporter.collect,
		exporter.count, exporter.min, exporter.max, exporter.mean, exporter.quantile,
	)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	exporter.registration = registration

	return exporter, nil
}

func (x *OTelExporter) collect(ctx context.Context, observer metric.Observer) error {
	quantiles := x.source.ExportQuantiles()
	for _, name := range x.source.Names() {
		summary, err := x.source.Summary(ctx, goMetrics.ByName(name), quantiles...)
		if err != nil {
			return err
		}

		attrs := metric.WithAttributes(attribute.String("metric", name))
		observer.ObserveInt64(x.count, summary.TotalCount, attrs)
		observer.ObserveInt64(x.min, summary.Min, attrs)
		observer.ObserveInt64(x.max, summary.Max, attrs)
		observer.ObserveFloat64(x.mean, summary.Mean, attrs)
		for _, q := range quantiles {
			observer.ObserveInt64(x.quantile, summary.Quantiles[q], metric.WithAttributes(
				attribute.String("metric", name),
				attribute.Float64("quantile", q),
			))
		}
	}
	return nil
}

// Close unregisters the collection callback.
func (x *OTelExporter) Close() error {
	if x == nil || x.registration == nil {
		return nil
	}
	return x.registration.Unregister()
}
