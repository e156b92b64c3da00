package goMetrics

import "github.com/google/uuid"

type targetKind uint8

const (
	targetName targetKind = iota
	targetTemplate
	targetSnapshot
)

// Target defines a public type used by goMetrics APIs.
//
// Target is a tagged request variant: it names a static metric, a template
// instance, or a previously opened snapshot. Every record and query operation
// takes a Target, so there is exactly one dispatch path instead of one method
// family per call shape.
type Target struct {
	kind     targetKind
	name     string
	template string
	instance string
	handle   SnapshotHandle
}

// ByName describes the byname operation and its observable behavior.
//
// ByName returns a Target addressing a statically registered metric.
func ByName(name string) Target {
	return Target{kind: targetName, name: name}
}

// ByTemplate describes the bytemplate operation and its observable behavior.
//
// ByTemplate returns a Target addressing one instance of a registered
// template. The instance row is created lazily on first record.
func ByTemplate(template, instanceKey string) Target {
	return Target{kind: targetTemplate, template: template, instance: instanceKey}
}

// BySnapshot describes the bysnapshot operation and its observable behavior.
//
// BySnapshot returns a Target addressing the counters captured by
// [Engine.OpenSnapshot]. Queries against it are mutually consistent and
// unaffected by concurrent writes; recording to it is invalid.
func BySnapshot(handle SnapshotHandle) Target {
	return Target{kind: targetSnapshot, handle: handle}
}

// metricName resolves the row name for name and template targets. Template
// instances live under "template:instanceKey".
func (t Target) metricName() string {
	if t.kind == targetTemplate {
		return t.template + ":" + t.instance
	}
	return t.name
}

// SnapshotHandle defines a public type used by goMetrics APIs.
//
// SnapshotHandle identifies a captured counter row held by the engine until
// [Engine.CloseSnapshot] releases it.
type SnapshotHandle struct {
	id uuid.UUID
}

// String describes the string operation and its observable behavior.
func (h SnapshotHandle) String() string { return h.id.String() }

// Summary defines a public type used by goMetrics APIs.
//
// Summary bundles every statistic of one metric computed from a single
// snapshot, so the fields are mutually consistent.
type Summary struct {
	TotalCount int64
	Min        int64
	Max        int64
	Mean       float64
	Quantiles  map[float64]int64
}
