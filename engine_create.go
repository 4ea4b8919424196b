package goSession

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/MrEthical07/goSession/chain"
	"github.com/MrEthical07/goSession/session"
)

// CreateSession validates a session request and, on success, stores the
// session, schedules its expiry cleanup, and publishes SessionCreated.
//
// With a nil signature the caller grants for itself: caller becomes the
// owner and req.Delegate the authorized key. With a signature present
// the roles flip: req.Delegate names the owner whose key must have
// signed the canonical payload authorizing caller as the delegate.
//
// The store insert and the cleanup schedule are one logical unit: if
// scheduling fails the insert is rolled back and ErrSchedulingFailed is
// returned. A failure to publish the event after both have committed is
// reported as ErrNotificationFailed without undoing anything.
func (e *Engine) CreateSession(ctx context.Context, caller session.AccountID, req session.Request, signature []byte) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	record := newAuditEvent("create_session")
	record.Signed = signature != nil

	err := e.createSession(ctx, caller, req, signature, &record)
	e.auditOutcome(ctx, record, err)
	return err
}

func (e *Engine) createSession(ctx context.Context, caller session.AccountID, req session.Request, signature []byte, record *AuditEvent) error {
	if req.Duration < e.config.MinimumSessionDuration {
		e.metricInc(MetricCreateRejected)
		return ErrDurationTooSmall
	}

	height := e.clock.Height()
	ticks, err := e.ticksFor(req.Duration, height)
	if err != nil {
		e.metricInc(MetricCreateRejected)
		return err
	}

	if len(req.AllowedActions) == 0 {
		e.metricInc(MetricCreateRejected)
		return ErrNoAllowedActions
	}

	// Owner determination: a signature flips the roles because the
	// request then speaks for the signing owner, not the caller.
	owner, delegate := caller, req.Delegate
	if signature != nil {
		owner, delegate = req.Delegate, caller
	}
	record.Account = owner.String()
	record.Delegate = delegate.String()

	prev, hadPrev, err := e.store.Get(ctx, owner)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if hadPrev && prev.ActiveAt(height) {
		e.metricInc(MetricCreateRejected)
		return ErrAlreadyHasActiveSession
	}

	if signature != nil {
		payload := session.SigningPayload(session.Request{
			Delegate:       caller,
			Duration:       req.Duration,
			AllowedActions: req.AllowedActions,
		})
		if err := e.verifier.Verify(owner, payload, signature); err != nil {
			e.metricInc(MetricVerificationFailed)
			return err
		}
	}

	now := e.clock.Now()
	next := &session.Session{
		Delegate:       delegate,
		ExpiresAt:      now.Add(req.Duration),
		ExpiresAtTick:  height + ticks,
		AllowedActions: append([]session.ActionTag(nil), req.AllowedActions...),
	}

	if err := e.store.Put(ctx, owner, next); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	call := chain.DeferredCall{
		Target:  chain.TargetDeleteSessionFromProgram,
		Account: owner,
	}
	if err := e.scheduler.Schedule(ctx, next.ExpiresAtTick, e.config.GasToDeleteSession, call); err != nil {
		e.metricInc(MetricSchedulingFailed)
		e.rollbackInsert(ctx, owner, prev, hadPrev)
		return fmt.Errorf("%w: %v", ErrSchedulingFailed, err)
	}
	e.metricInc(MetricCleanupScheduled)

	e.metricInc(MetricSessionCreated)
	if signature != nil {
		e.metricInc(MetricSessionCreatedBySignature)
	}
	if hadPrev {
		e.metricInc(MetricExpiredSessionReplaced)
	}

	if err := e.events.Emit(ctx, Event{Kind: EventSessionCreated, Account: owner, At: now}); err != nil {
		e.metricInc(MetricNotificationFailed)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}

// ticksFor converts a duration to ticks, rounding up, and rejects any
// value whose resulting expiry would not fit the uint32 tick counter.
func (e *Engine) ticksFor(duration time.Duration, height uint32) (uint32, error) {
	ticks := duration / e.config.TickDuration
	if duration%e.config.TickDuration != 0 {
		ticks++
	}
	if uint64(ticks) > math.MaxUint32 {
		return 0, ErrDurationTooLarge
	}
	if uint32(ticks) > math.MaxUint32-height {
		return 0, ErrDurationTooLarge
	}
	return uint32(ticks), nil
}

// rollbackInsert restores the pre-insert state after a scheduling
// failure: the overwritten expired entry comes back, or the fresh
// insert is removed. Rollback is best-effort; the store was reachable a
// moment ago.
func (e *Engine) rollbackInsert(ctx context.Context, owner session.AccountID, prev *session.Session, hadPrev bool) {
	if hadPrev {
		_ = e.store.Put(ctx, owner, prev)
		return
	}
	_, _ = e.store.Delete(ctx, owner)
}
