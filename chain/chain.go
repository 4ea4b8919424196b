package chain

import (
	"context"
	"time"

	"github.com/MrEthical07/goSession/session"
)

// TargetDeleteSessionFromProgram routes a deferred call to the engine's
// self-only cleanup entry point.
const TargetDeleteSessionFromProgram = "session.delete_session_from_program"

// Clock exposes the host's two time axes: wall-clock time (advisory)
// and the monotonic tick counter (authoritative for expiry). Read-only.
type Clock interface {
	Now() time.Time
	Height() uint32
}

// DeferredCall is a self-directed callback the engine asks the host to
// deliver later.
type DeferredCall struct {
	Target  string
	Account session.AccountID
}

// Scheduler enqueues a deferred call for delivery once the tick counter
// reaches at, reserving gas for its execution up front. There is no
// cancellation primitive: once accepted, the call will eventually be
// delivered.
type Scheduler interface {
	Schedule(ctx context.Context, at uint32, gas uint64, call DeferredCall) error
}

// Handler receives deferred calls when they come due.
type Handler func(ctx context.Context, call DeferredCall) error
