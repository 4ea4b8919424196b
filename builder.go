package goSession

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goSession/chain"
	"github.com/MrEthical07/goSession/session"
	"github.com/MrEthical07/goSession/sign"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrBuilderReused is an exported constant or variable used by the session engine.
	ErrBuilderReused = errors.New("builder already built an engine")
	// ErrMissingChain is an exported constant or variable used by the session engine.
	ErrMissingChain = errors.New("engine requires a chain clock and scheduler")
	// ErrMissingProgramID is an exported constant or variable used by the session engine.
	ErrMissingProgramID = errors.New("engine requires a non-zero program identity")
)

// Builder defines a public type used by goSession APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config    Config
	programID session.AccountID
	store     session.Store
	redis     redis.UniversalClient
	clock     chain.Clock
	scheduler chain.Scheduler
	verifier  sign.Verifier
	events    EventSink
	auditSink AuditSink

	built bool
}

// New creates a Builder pre-loaded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire config.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithProgramID sets the program's own identity, used to authenticate
// the self-only cleanup entry point.
func (b *Builder) WithProgramID(id session.AccountID) *Builder {
	b.programID = id
	return b
}

// WithStore injects a session store. Takes precedence over WithRedis.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithRedis backs the engine with a Redis session store built from the
// given client and the configured key prefix.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithChain wires the host clock and scheduler. chain.Sim satisfies
// both arguments.
func (b *Builder) WithChain(clock chain.Clock, scheduler chain.Scheduler) *Builder {
	b.clock = clock
	b.scheduler = scheduler
	return b
}

// WithVerifier replaces the default sr25519 verifier.
func (b *Builder) WithVerifier(v sign.Verifier) *Builder {
	b.verifier = v
	return b
}

// WithEventSink sets the domain event sink.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.events = sink
	return b
}

// WithAuditSink sets the audit sink and enables the audit dispatcher.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled toggles the counter table.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the wiring and assembles the Engine. A Builder builds
// at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.clock == nil || b.scheduler == nil {
		return nil, ErrMissingChain
	}
	if b.programID.IsZero() {
		return nil, ErrMissingProgramID
	}

	store := b.store
	if store == nil && b.redis != nil {
		store = session.NewRedisStore(b.redis, b.config.Session.RedisPrefix)
	}
	if store == nil {
		store = session.NewMemoryStore()
	}

	var v sign.Verifier = sign.SR25519{}
	if b.verifier != nil {
		v = b.verifier
	}

	events := b.events
	if events == nil {
		events = NoOpSink{}
	}

	engine := &Engine{
		config:    b.config,
		programID: b.programID,
		store:     store,
		clock:     b.clock,
		scheduler: b.scheduler,
		verifier:  v,
		events:    events,
		audit:     newAuditDispatcher(b.config.Audit, b.auditSink),
	}
	if b.config.Metrics.Enabled {
		engine.metrics = NewMetrics()
	}

	b.built = true
	return engine, nil
}

// MustBuild is Build for wiring code that treats misconfiguration as fatal.
func (b *Builder) MustBuild() *Engine {
	engine, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("goSession: %v", err))
	}
	return engine
}
