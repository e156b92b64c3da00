package goMetrics

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goMetrics/hdr"
)

// Register describes the register operation and its observable behavior.
//
// Register creates a static metric: it derives the bucket layout for
// (min, max, precision) and allocates a zeroed counter row. It fails with
// ErrInvalidConfiguration for bad parameters and ErrMetricExists for
// duplicate names.
func (e *Engine) Register(ctx context.Context, name string, min, max int64, precision int) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if name == "" {
		return fmt.Errorf("%w: metric name must not be empty", ErrInvalidConfiguration)
	}

	layout, err := hdr.NewLayout(min, max, precision)
	if err != nil {
		return err
	}

	if !e.registry.AddMetric(name, layout) {
		return fmt.Errorf("%w: %s", ErrMetricExists, name)
	}
	if err := e.store.Create(ctx, name, layout.CountsLen()); err != nil {
		// roll back the reservation so the caller can retry the name
		e.registry.RemoveMetric(name)
		return err
	}
	return nil
}

// RegisterDefault describes the registerdefault operation and its observable behavior.
//
// RegisterDefault creates a static metric using the configured histogram
// defaults.
func (e *Engine) RegisterDefault(ctx context.Context, name string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	h := e.config.Histogram
	return e.Register(ctx, name, h.DefaultMin, h.DefaultMax, h.DefaultPrecision)
}

// RegisterTemplate describes the registertemplate operation and its observable behavior.
//
// RegisterTemplate stores a layout shared by every instance of the template.
// Instance rows are created lazily on first record; no storage is touched
// here.
func (e *Engine) RegisterTemplate(ctx context.Context, template string, min, max int64, precision int) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if template == "" {
		return fmt.Errorf("%w: template name must not be empty", ErrInvalidConfiguration)
	}

	layout, err := hdr.NewLayout(min, max, precision)
	if err != nil {
		return err
	}

	if !e.registry.AddTemplate(template, layout) {
		return fmt.Errorf("%w: template %s", ErrMetricExists, template)
	}
	return nil
}

// Reset describes the reset operation and its observable behavior.
//
// Reset replaces the metric's counter row with an all-zero row. After Reset,
// every statistic returns the empty-histogram result.
func (e *Engine) Reset(ctx context.Context, target Target) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if target.kind == targetSnapshot {
		return fmt.Errorf("%w: snapshots cannot be reset", ErrInvalidTarget)
	}

	layout, name, err := e.resolveLayout(target)
	if err != nil {
		return err
	}
	return e.store.Reset(ctx, name, layout.CountsLen())
}

// resolveLayout maps a name or template target to its layout and row name.
func (e *Engine) resolveLayout(target Target) (hdr.Layout, string, error) {
	name := target.metricName()
	switch target.kind {
	case targetName:
		layout, ok := e.registry.LookupMetric(name)
		if !ok {
			return hdr.Layout{}, "", fmt.Errorf("%w: %s", ErrUnknownMetric, name)
		}
		return layout, name, nil
	case targetTemplate:
		layout, ok := e.registry.LookupTemplate(target.template)
		if !ok {
			return hdr.Layout{}, "", fmt.Errorf("%w: %s", ErrTemplateNotRegistered, target.template)
		}
		return layout, name, nil
	default:
		return hdr.Layout{}, "", ErrInvalidTarget
	}
}
