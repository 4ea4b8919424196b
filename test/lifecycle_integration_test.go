//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ChainSafe/go-schnorrkel"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/session"
	"github.com/MrEthical07/goSession/sign"
)

func TestRedisBackedSessionLifecycle(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			engine, sim := newIntegrationEngine(t, rdb)
			ctx := context.Background()

			owner, delegate := accountID(1), accountID(2)
			if err := engine.CreateSession(ctx, owner, grantRequest(delegate), nil); err != nil {
				t.Fatalf("create: %v", err)
			}

			// A second engine over the same Redis observes the grant.
			other, _ := newIntegrationEngine(t, rdb)
			s, found, err := other.SessionForTheAccount(ctx, owner)
			if err != nil || !found {
				t.Fatalf("cross-engine lookup: found=%v err=%v", found, err)
			}
			if s.Delegate != delegate {
				t.Fatalf("delegate %s, want %s", s.Delegate, delegate)
			}

			// One session per owner while the current one is active.
			err = engine.CreateSession(ctx, owner, grantRequest(accountID(3)), nil)
			if !errors.Is(err, goSession.ErrAlreadyHasActiveSession) {
				t.Fatalf("got %v, want ErrAlreadyHasActiveSession", err)
			}

			// The scheduled cleanup removes the entry at expiry.
			if err := sim.AdvanceTo(ctx, 60); err != nil {
				t.Fatalf("advance: %v", err)
			}
			if _, found, err := engine.SessionForTheAccount(ctx, owner); err != nil || found {
				t.Fatalf("post-expiry lookup: found=%v err=%v", found, err)
			}
		})
	}
}

func TestRedisBackedSignedGrant(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			engine, _ := newIntegrationEngine(t, rdb)
			ctx := context.Background()

			mini, err := schnorrkel.GenerateMiniSecretKey()
			if err != nil {
				t.Fatalf("generate key: %v", err)
			}
			pub := mini.Public().Encode()
			owner, err := session.AccountIDFromBytes(pub[:])
			if err != nil {
				t.Fatalf("owner account: %v", err)
			}

			relayer := accountID(9)
			actions := []session.ActionTag{"move"}
			payload := session.SigningPayload(session.Request{
				Delegate:       relayer,
				Duration:       5 * time.Minute,
				AllowedActions: actions,
			})
			signature, err := sign.Sign(mini.ExpandEd25519(), payload)
			if err != nil {
				t.Fatalf("sign payload: %v", err)
			}

			req := session.Request{
				Delegate:       owner,
				Duration:       5 * time.Minute,
				AllowedActions: actions,
			}
			if err := engine.CreateSession(ctx, relayer, req, signature); err != nil {
				t.Fatalf("signed create: %v", err)
			}

			// The grant is keyed by the signing owner with the relayer
			// as its delegate.
			s, found, err := engine.SessionForTheAccount(ctx, owner)
			if err != nil || !found {
				t.Fatalf("lookup: found=%v err=%v", found, err)
			}
			if s.Delegate != relayer {
				t.Fatalf("delegate %s, want %s", s.Delegate, relayer)
			}

			// The owner cancels without waiting for expiry.
			if err := engine.DeleteSessionFromAccount(ctx, owner); err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if _, found, _ := engine.SessionForTheAccount(ctx, owner); found {
				t.Fatal("session survived cancellation")
			}
		})
	}
}

func TestRedisBackedStaleCleanupKeepsReplacement(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			engine, sim := newIntegrationEngine(t, rdb)
			ctx := context.Background()

			owner := accountID(1)
			if err := engine.CreateSession(ctx, owner, grantRequest(accountID(2)), nil); err != nil {
				t.Fatalf("create: %v", err)
			}

			// Cancel early and re-grant; the first cleanup is now stale.
			if err := sim.AdvanceTo(ctx, 10); err != nil {
				t.Fatalf("advance: %v", err)
			}
			if err := engine.DeleteSessionFromAccount(ctx, owner); err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if err := engine.CreateSession(ctx, owner, grantRequest(accountID(3)), nil); err != nil {
				t.Fatalf("recreate: %v", err)
			}

			// The stale callback at tick 60 must refuse to touch the
			// replacement grant.
			err := sim.AdvanceTo(ctx, 60)
			if !errors.Is(err, goSession.ErrTooEarlyToDelete) {
				t.Fatalf("got %v, want ErrTooEarlyToDelete", err)
			}
			if _, found, _ := engine.SessionForTheAccount(ctx, owner); !found {
				t.Fatal("replacement grant destroyed by stale cleanup")
			}

			// The replacement's own cleanup fires at its expiry.
			if err := sim.AdvanceTo(ctx, 70); err != nil {
				t.Fatalf("advance: %v", err)
			}
			if _, found, _ := engine.SessionForTheAccount(ctx, owner); found {
				t.Fatal("replacement grant survived its expiry")
			}
		})
	}
}
