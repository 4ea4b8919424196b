package goSession

import (
	"context"

	"github.com/MrEthical07/goSession/chain"
	"github.com/MrEthical07/goSession/session"
)

// Engine defines a public type used by goSession APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config    Config
	programID session.AccountID
	store     session.Store
	clock     chain.Clock
	scheduler chain.Scheduler
	verifier  verifier
	events    EventSink
	audit     *auditDispatcher
	metrics   *Metrics
}

// verifier mirrors sign.Verifier locally so the engine can be stubbed
// in tests without importing sign.
type verifier interface {
	Verify(pub [32]byte, message, signature []byte) error
}

// ProgramID returns the identity the engine answers to on the self-only
// cleanup entry point.
func (e *Engine) ProgramID() session.AccountID {
	if e == nil {
		return session.AccountID{}
	}
	return e.programID
}

// CleanupHandler returns the chain.Handler that routes deferred calls
// back into the engine. Register it with the host's delivery mechanism
// (for chain.Sim, via SetHandler).
func (e *Engine) CleanupHandler() chain.Handler {
	return func(ctx context.Context, call chain.DeferredCall) error {
		if call.Target != chain.TargetDeleteSessionFromProgram {
			return nil
		}
		return e.DeleteSessionFromProgram(ctx, e.ProgramID(), call.Account)
	}
}

// Close shuts down the audit dispatcher, draining buffered events. The
// session store is not closed; the caller owns it.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were dropped under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the engine's current counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) auditOutcome(ctx context.Context, event AuditEvent, opErr error) {
	if e == nil || e.audit == nil {
		return
	}
	event.Success = opErr == nil
	if opErr != nil {
		event.Error = opErr.Error()
	}
	e.audit.Emit(ctx, event)
}
