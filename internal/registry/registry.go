// Package registry maps metric identifiers to their bucket layouts. Static
// metrics are registered once up front; templated metrics share one layout
// per template, and instances are remembered lazily on first record so bulk
// enumeration can see them.
package registry

import (
	"sort"
	"sync"

	"github.com/MrEthical07/goMetrics/hdr"
)

// Registry is safe for concurrent use. It holds no counters; rows live in
// the counter store, keyed by the same names.
type Registry struct {
	mu        sync.RWMutex
	metrics   map[string]hdr.Layout
	templates map[string]hdr.Layout
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		metrics:   make(map[string]hdr.Layout),
		templates: make(map[string]hdr.Layout),
	}
}

// AddMetric registers a static metric. It reports false when the name is
// already taken (by a static metric or a remembered instance).
func (r *Registry) AddMetric(name string, layout hdr.Layout) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.metrics[name]; ok {
		return false
	}
	r.metrics[name] = layout
	return true
}

// AddTemplate registers a template layout shared by all of its instances.
// It reports false when the template is already registered.
func (r *Registry) AddTemplate(template string, layout hdr.Layout) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[template]; ok {
		return false
	}
	r.templates[template] = layout
	return true
}

// RemoveMetric drops a static metric entry. Used to roll back a registration
// whose row creation failed, so the name can be retried.
func (r *Registry) RemoveMetric(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.metrics, name)
}

// RememberInstance records a lazily created template instance under its full
// name. Racing writers are idempotent; the layout is the template's either
// way.
func (r *Registry) RememberInstance(name string, layout hdr.Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.metrics[name]; !ok {
		r.metrics[name] = layout
	}
}

// LookupMetric returns the layout of a static metric or remembered instance.
func (r *Registry) LookupMetric(name string) (hdr.Layout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	layout, ok := r.metrics[name]
	return layout, ok
}

// LookupTemplate returns the shared layout of a template.
func (r *Registry) LookupTemplate(template string) (hdr.Layout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	layout, ok := r.templates[template]
	return layout, ok
}

// Names returns every known metric name (static and remembered instances),
// sorted, for bulk-export enumeration.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
