package goMetrics

import (
	"errors"

	"github.com/MrEthical07/goMetrics/hdr"
	"github.com/MrEthical07/goMetrics/store"
)

var (
	// ErrInvalidConfiguration is an exported constant or variable used by the metrics engine.
	ErrInvalidConfiguration = hdr.ErrInvalidConfiguration
	// ErrValueOutOfRange is an exported constant or variable used by the metrics engine.
	ErrValueOutOfRange = hdr.ErrValueOutOfRange
	// ErrMetricExists is an exported constant or variable used by the metrics engine.
	ErrMetricExists = store.ErrMetricExists
	// ErrUnknownMetric is an exported constant or variable used by the metrics engine.
	ErrUnknownMetric = store.ErrUnknownMetric
	// ErrStoreUnavailable is an exported constant or variable used by the metrics engine.
	ErrStoreUnavailable = store.ErrStoreUnavailable
	// ErrInvalidQuantile is an exported constant or variable used by the metrics engine.
	ErrInvalidQuantile = errors.New("quantile outside (0,100]")
	// ErrInvalidCount is an exported constant or variable used by the metrics engine.
	ErrInvalidCount = errors.New("observation count must be positive")
	// ErrTemplateNotRegistered is an exported constant or variable used by the metrics engine.
	ErrTemplateNotRegistered = errors.New("template not registered")
	// ErrInvalidTarget is an exported constant or variable used by the metrics engine.
	ErrInvalidTarget = errors.New("target not valid for this operation")
	// ErrSnapshotNotFound is an exported constant or variable used by the metrics engine.
	ErrSnapshotNotFound = errors.New("snapshot handle not found")
	// ErrBuilderUsed is an exported constant or variable used by the metrics engine.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrEngineNotReady is an exported constant or variable used by the metrics engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
