package goSession

import (
	"context"
	"errors"
	"testing"
	"time"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/MrEthical07/goSession/chain"
	"github.com/MrEthical07/goSession/session"
	"github.com/MrEthical07/goSession/sign"
)

func account(b byte) session.AccountID {
	var id session.AccountID
	id[0] = b
	return id
}

var testProgramID = account(0xFF)

// recordSink captures domain events synchronously.
type recordSink struct {
	events []Event
}

func (s *recordSink) Emit(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *recordSink) kinds() []EventKind {
	kinds := make([]EventKind, 0, len(s.events))
	for _, event := range s.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

// failSink rejects every publish.
type failSink struct{}

func (failSink) Emit(context.Context, Event) error {
	return errors.New("sink down")
}

// scriptedScheduler fails the calls whose index appears in failOn,
// otherwise delegates to the wrapped scheduler.
type scriptedScheduler struct {
	inner  chain.Scheduler
	calls  int
	failOn map[int]bool
}

func (s *scriptedScheduler) Schedule(ctx context.Context, at uint32, gas uint64, call chain.DeferredCall) error {
	s.calls++
	if s.failOn[s.calls] {
		return errors.New("scheduler refused")
	}
	return s.inner.Schedule(ctx, at, gas, call)
}

func newTestEngine(t *testing.T) (*Engine, *chain.Sim, *recordSink) {
	t.Helper()
	sim := chain.NewSim(3 * time.Second)
	sink := &recordSink{}

	engine, err := New().
		WithProgramID(testProgramID).
		WithChain(sim, sim).
		WithEventSink(sink).
		Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	t.Cleanup(engine.Close)
	sim.SetHandler(engine.CleanupHandler())
	return engine, sim, sink
}

func validRequest(delegate session.AccountID) session.Request {
	return session.Request{
		Delegate:       delegate,
		Duration:       3 * time.Minute,
		AllowedActions: []session.ActionTag{"start_game", "move"},
	}
}

// signedGrant produces an owner keypair plus a request/signature pair
// authorizing delegate to act for that owner.
func signedGrant(t testing.TB, delegate session.AccountID, duration time.Duration, actions []session.ActionTag) (session.AccountID, session.Request, []byte) {
	t.Helper()
	mini, err := schnorrkel.GenerateMiniSecretKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pub := mini.Public().Encode()
	owner, err := session.AccountIDFromBytes(pub[:])
	if err != nil {
		t.Fatalf("owner account: %v", err)
	}

	req := session.Request{
		Delegate:       owner,
		Duration:       duration,
		AllowedActions: actions,
	}
	payload := session.SigningPayload(session.Request{
		Delegate:       delegate,
		Duration:       duration,
		AllowedActions: actions,
	})
	signature, err := sign.Sign(mini.ExpandEd25519(), payload)
	if err != nil {
		t.Fatalf("sign payload: %v", err)
	}
	return owner, req, signature
}

func mustHaveSession(t *testing.T, engine *Engine, owner session.AccountID) *session.Session {
	t.Helper()
	s, found, err := engine.SessionForTheAccount(context.Background(), owner)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if !found {
		t.Fatalf("no session stored for %s", owner)
	}
	return s
}

func mustHaveNoSession(t *testing.T, engine *Engine, owner session.AccountID) {
	t.Helper()
	_, found, err := engine.SessionForTheAccount(context.Background(), owner)
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if found {
		t.Fatalf("unexpected session stored for %s", owner)
	}
}
