package goMetrics

import (
	"sync"

	"github.com/MrEthical07/goMetrics/hdr"
	"github.com/MrEthical07/goMetrics/internal/registry"
	"github.com/MrEthical07/goMetrics/store"
	"github.com/google/uuid"
)

// Engine defines a public type used by goMetrics APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	store    store.CounterStore
	registry *registry.Registry

	// snapshots holds rows captured by OpenSnapshot until they are closed.
	// A nil capturedSnapshot.snap records "row was absent at capture time";
	// queries against it degrade to empty-histogram results.
	snapMu    sync.RWMutex
	snapshots map[uuid.UUID]*capturedSnapshot
}

type capturedSnapshot struct {
	snap *hdr.Snapshot
}

// Names describes the names operation and its observable behavior.
//
// Names returns every registered metric name, including lazily created
// template instances, sorted. Exporters use it to enumerate rows.
func (e *Engine) Names() []string {
	if e == nil {
		return nil
	}
	return e.registry.Names()
}

// LayoutOf describes the layoutof operation and its observable behavior.
//
// LayoutOf returns the bucket geometry of a registered metric.
func (e *Engine) LayoutOf(name string) (hdr.Layout, bool) {
	if e == nil {
		return hdr.Layout{}, false
	}
	return e.registry.LookupMetric(name)
}

// ExportQuantiles describes the exportquantiles operation and its observable behavior.
//
// ExportQuantiles returns the configured percentile points for exporters.
func (e *Engine) ExportQuantiles() []float64 {
	if e == nil {
		return nil
	}
	return append([]float64(nil), e.config.Export.Quantiles...)
}

// ExportNamespace describes the exportnamespace operation and its observable behavior.
//
// ExportNamespace returns the configured series-name prefix for exporters.
func (e *Engine) ExportNamespace() string {
	if e == nil {
		return ""
	}
	return e.config.Export.Namespace
}
