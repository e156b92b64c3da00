package goMetrics

import (
	"fmt"

	"github.com/MrEthical07/goMetrics/hdr"
)

// Config defines a public type used by goMetrics APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Store     StoreConfig
	Histogram HistogramConfig
	Export    ExportConfig
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by goMetrics APIs.
//
// StoreConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StoreConfig struct {
	// RedisPrefix namespaces every counter-row key when the engine is built
	// with a Redis client.
	RedisPrefix string
}

/*
====================================
HISTOGRAM CONFIG
====================================
*/

// HistogramConfig defines a public type used by goMetrics APIs.
//
// HistogramConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramConfig struct {
	// DefaultMin, DefaultMax and DefaultPrecision parameterize metrics
	// registered through [Engine.RegisterDefault]. Explicit registration
	// ignores them.
	DefaultMin       int64
	DefaultMax       int64
	DefaultPrecision int
}

/*
====================================
EXPORT CONFIG
====================================
*/

// ExportConfig defines a public type used by goMetrics APIs.
//
// ExportConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ExportConfig struct {
	// Namespace prefixes every exported series name.
	Namespace string

	// Quantiles are the percentile points exporters publish per metric.
	Quantiles []float64
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			RedisPrefix: "gm",
		},
		Histogram: HistogramConfig{
			DefaultMin: 1,
			// one hour in microseconds: wide enough for latency metrics
			DefaultMax:       3_600_000_000,
			DefaultPrecision: 3,
		},
		Export: ExportConfig{
			Namespace: "gometrics",
			Quantiles: []float64{50, 90, 99, 99.9},
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Export.Quantiles = append([]float64(nil), cfg.Export.Quantiles...)
	return out
}

func validateConfig(cfg Config) error {
	if cfg.Store.RedisPrefix == "" {
		return fmt.Errorf("%w: store redis prefix must not be empty", ErrInvalidConfiguration)
	}
	if _, err := hdr.NewLayout(cfg.Histogram.DefaultMin, cfg.Histogram.DefaultMax, cfg.Histogram.DefaultPrecision); err != nil {
		return fmt.Errorf("histogram defaults: %w", err)
	}
	if cfg.Export.Namespace == "" {
		return fmt.Errorf("%w: export namespace must not be empty", ErrInvalidConfiguration)
	}
	for _, q := range cfg.Export.Quantiles {
		if q <= 0 || q > 100 {
			return fmt.Errorf("%w: export quantile %v outside (0,100]", ErrInvalidConfiguration, q)
		}
	}
	return nil
}
