package chain

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrSchedulePast is returned when a deferred call is scheduled at or before the current height.
var ErrSchedulePast = errors.New("schedule height not in the future")

// ErrOutOfGas is returned when scheduling a deferred call would exceed the configured gas allowance.
var ErrOutOfGas = errors.New("insufficient gas allowance")

// GasUnlimited disables gas accounting on a Sim.
const GasUnlimited = ^uint64(0)

type pendingCall struct {
	at   uint32
	gas  uint64
	seq  uint64
	call DeferredCall
}

// Sim is an in-process chain backend: fake wall clock, manual height,
// and a pending queue of deferred calls delivered in (height, schedule
// order) as the height advances. It implements both Clock and Scheduler.
type Sim struct {
	mu        sync.Mutex
	tick      time.Duration
	clock     *clockwork.FakeClock
	height    uint32
	allowance uint64
	reserved  uint64
	seq       uint64
	pending   []pendingCall
	handler   Handler
}

// NewSim creates a simulated backend at height 0 whose wall clock moves
// by tick per height increment. Gas accounting starts unlimited.
func NewSim(tick time.Duration) *Sim {
	return &Sim{
		tick:      tick,
		clock:     clockwork.NewFakeClock(),
		allowance: GasUnlimited,
	}
}

// SetHandler registers the receiver for due deferred calls. Must be set
// before AdvanceTo delivers anything.
func (s *Sim) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// SetGasAllowance caps the total gas that may be reserved by scheduled
// calls. Pass GasUnlimited to disable the cap.
func (s *Sim) SetGasAllowance(gas uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowance = gas
	s.reserved = 0
}

// Now returns the simulated wall-clock time.
func (s *Sim) Now() time.Time {
	return s.clock.Now()
}

// Height returns the simulated tick counter.
func (s *Sim) Height() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Schedule enqueues call for delivery at the given height, reserving gas
// against the allowance.
func (s *Sim) Schedule(_ context.Context, at uint32, gas uint64, call DeferredCall) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if at <= s.height {
		return ErrSchedulePast
	}
	if s.allowance != GasUnlimited {
		if gas > s.allowance-s.reserved {
			return ErrOutOfGas
		}
		s.reserved += gas
	}
	s.seq++
	s.pending = append(s.pending, pendingCall{at: at, gas: gas, seq: s.seq, call: call})
	return nil
}

// AdvanceTo moves the height forward to target, advancing the wall clock
// in lockstep and delivering every due deferred call to the handler in
// (height, schedule order). Handler errors do not stop delivery; they
// are joined and returned after all due calls have run.
func (s *Sim) AdvanceTo(ctx context.Context, target uint32) error {
	s.mu.Lock()
	if target < s.height {
		s.mu.Unlock()
		return errors.New("cannot advance height backwards")
	}
	s.clock.Advance(time.Duration(target-s.height) * s.tick)
	s.height = target

	var due []pendingCall
	rest := s.pending[:0]
	for _, p := range s.pending {
		if p.at <= s.height {
			due = append(due, p)
		} else {
			rest = append(rest, p)
		}
	}
	s.pending = rest
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	handler := s.handler
	if s.allowance != GasUnlimited {
		for _, p := range due {
			s.reserved -= p.gas
		}
	}
	// Deliver outside the lock: the handler calls back into code that
	// reads Height.
	s.mu.Unlock()

	var errs []error
	for _, p := range due {
		if handler == nil {
			errs = append(errs, errors.New("deferred call due with no handler registered"))
			continue
		}
		if err := handler(ctx, p.call); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Pending reports how many deferred calls are still queued.
func (s *Sim) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
