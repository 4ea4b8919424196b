package goSession

import (
	"context"
	"fmt"

	"github.com/MrEthical07/goSession/session"
)

// Sessions snapshots every stored entry, including expired ones whose
// cleanup has not fired yet. Callers wanting active-only semantics must
// compare ExpiresAtTick against the current height themselves.
func (e *Engine) Sessions(ctx context.Context) ([]session.Entry, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	entries, err := e.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return entries, nil
}

// SessionForTheAccount looks up the session stored for account. The
// same staleness caveat as Sessions applies.
func (e *Engine) SessionForTheAccount(ctx context.Context, account session.AccountID) (*session.Session, bool, error) {
	if e == nil || e.store == nil {
		return nil, false, ErrEngineNotReady
	}
	s, found, err := e.store.Get(ctx, account)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s, found, nil
}
