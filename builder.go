package localauth

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/futuremakers/localauth/session"
	"github.com/futuremakers/localauth/storage"
)

// Builder defines a public type used by localauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config    Config
	durable   storage.Medium
	transient storage.Medium
	auditSink AuditSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis backs the durable medium with a Redis client, the deployment
// analog of localStorage. Equivalent to WithDurableStorage(storage.NewRedis(client)).
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.durable = storage.NewRedis(client)
	return b
}

// WithDurableStorage sets the medium holding accounts and the session record.
func (b *Builder) WithDurableStorage(m storage.Medium) *Builder {
	b.durable = m
	return b
}

// WithTransientStorage sets the medium holding the one-shot welcome flag.
// Defaults to an in-process [storage.Memory] when unset.
func (b *Builder) WithTransientStorage(m storage.Medium) *Builder {
	b.transient = m
	return b
}

// WithAuditSink sets the destination for audit events. Audit must also be
// enabled in the configuration for events to flow.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles counter recording.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the login latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.durable == nil {
		return nil, errors.New("durable storage required; use WithRedis or WithDurableStorage")
	}

	transient := b.transient
	if transient == nil {
		transient = storage.NewMemory()
	}

	engine := &Engine{
		config:   cfg,
		creds:    newCredentialStore(b.durable, cfg.Storage.usersKey()),
		sessions: session.NewStore(b.durable, transient, cfg.Storage.sessionKey(), cfg.Storage.flagKey()),
		audit:    startAuditPipeline(cfg.Audit, b.auditSink),
		metrics:  NewMetrics(cfg.Metrics),
	}

	b.built = true
	return engine, nil
}
