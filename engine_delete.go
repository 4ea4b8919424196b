package goSession

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goSession/session"
)

// DeleteSessionFromProgram is the scheduled-cleanup entry point. Only
// the program itself may invoke it; the host must not route external
// callers here.
//
// An absent entry is success: the owner already cancelled, or an
// earlier callback won, and this callback completes as a no-op. An
// entry whose expiry is still in the future belongs to a replacement
// session created after this callback was scheduled; it is left in
// place and ErrTooEarlyToDelete is returned so the stale callback
// cannot destroy a live grant.
func (e *Engine) DeleteSessionFromProgram(ctx context.Context, invoker, owner session.AccountID) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	record := newAuditEvent("delete_session_from_program")
	record.Account = owner.String()

	err := e.deleteScheduled(ctx, invoker, owner)
	e.auditOutcome(ctx, record, err)
	return err
}

func (e *Engine) deleteScheduled(ctx context.Context, invoker, owner session.AccountID) error {
	if invoker != e.programID {
		return ErrNotSelfInvoked
	}

	current, found, err := e.store.Get(ctx, owner)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if found {
		if current.ActiveAt(e.clock.Height()) {
			e.metricInc(MetricCleanupStale)
			return ErrTooEarlyToDelete
		}
		if _, err := e.store.Delete(ctx, owner); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		e.metricInc(MetricSessionDeleted)
	} else {
		e.metricInc(MetricCleanupNoop)
	}

	if err := e.events.Emit(ctx, Event{Kind: EventSessionDeleted, Account: owner, At: e.clock.Now()}); err != nil {
		e.metricInc(MetricNotificationFailed)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

// DeleteSessionFromAccount cancels the caller's own session. No expiry
// check: an owner may withdraw an active grant early. The cleanup
// callback scheduled at creation still fires later, finds nothing, and
// completes as a no-op.
func (e *Engine) DeleteSessionFromAccount(ctx context.Context, caller session.AccountID) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	record := newAuditEvent("delete_session_from_account")
	record.Account = caller.String()

	err := e.deleteOwn(ctx, caller)
	e.auditOutcome(ctx, record, err)
	return err
}

func (e *Engine) deleteOwn(ctx context.Context, caller session.AccountID) error {
	removed, err := e.store.Delete(ctx, caller)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !removed {
		return ErrNoSession
	}
	e.metricInc(MetricSessionCancelled)

	if err := e.events.Emit(ctx, Event{Kind: EventSessionDeleted, Account: caller, At: e.clock.Now()}); err != nil {
		e.metricInc(MetricNotificationFailed)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}
