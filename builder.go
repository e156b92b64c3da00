package goMetrics

import (
	"github.com/MrEthical07/goMetrics/internal/registry"
	"github.com/MrEthical07/goMetrics/store"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goMetrics APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	store  store.CounterStore

	built bool
}

// New describes the new operation and its observable behavior.
//
// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig replaces the whole configuration; it is cloned so later caller
// mutations cannot leak into the built engine.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis backs the engine's counter rows with the given Redis client.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore describes the withstore operation and its observable behavior.
//
// WithStore backs the engine with a custom [store.CounterStore]. It takes
// precedence over WithRedis.
func (b *Builder) WithStore(cs store.CounterStore) *Builder {
	b.store = cs
	return b
}

// WithExportQuantiles describes the withexportquantiles operation and its observable behavior.
//
// WithExportQuantiles overrides the percentile points exporters publish.
func (b *Builder) WithExportQuantiles(quantiles ...float64) *Builder {
	b.config.Export.Quantiles = append([]float64(nil), quantiles...)
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build validates the configuration and assembles the engine. A Builder is
// single-use; a second Build fails with ErrBuilderUsed. Without a Redis
// client or custom store, the engine runs on an in-process store.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true

	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	cs := b.store
	if cs == nil {
		if b.redis != nil {
			cs = store.NewRedisStore(b.redis, b.config.Store.RedisPrefix)
		} else {
			cs = store.NewMemoryStore()
		}
	}

	return &Engine{
		config:    b.config,
		store:     cs,
		registry:  registry.New(),
		snapshots: make(map[uuid.UUID]*capturedSnapshot),
	}, nil
}
