// Package petrinet implements a generic, concurrent Petri net engine: four
// arc kinds (input, output, inhibitor, reset), atomic multi-transition
// firing under a nondeterministic choice policy, blocking-until-enabled
// semantics with cooperative cancellation, and an exhaustive reachability
// enumerator.
//
// The place type P is supplied by the caller and is never interpreted by
// this package beyond requiring it be comparable.
package petrinet

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ksztenderski/PetriNet/internal/ticketlock"
)

// cancelPollInterval bounds how long a Fire call may stay blocked after its
// context is cancelled while it is racing the cancellation watcher goroutine
// below; see the comment in Fire.
const cancelPollInterval = 2 * time.Millisecond

// Net owns exactly one Marking and one mutual-exclusion primitive plus one
// associated condition signal. A Net is safe for concurrent use by many
// goroutines: every read used to decide whether a transition is enabled,
// and every mutation of the marking, happens while its lock is held.
type Net[P comparable] struct {
	id     string
	fair   bool
	logger *zap.Logger

	mu      sync.Locker
	cond    *sync.Cond
	marking Marking[P]
}

// New constructs a Net with the given initial marking. initial is copied
// and filtered to strip non-positive entries, so the Net's own invariant
// holds from the start regardless of what the caller passes in.
//
// fair selects the mutual-exclusion primitive backing the Net: true uses a
// FIFO ticket lock (internal/ticketlock) so waiters in Fire are served in
// strict arrival order; false uses a plain sync.Mutex, which offers no
// fairness guarantee beyond the Go runtime's own starvation avoidance.
func New[P comparable](initial map[P]int, fair bool, opts ...Option[P]) *Net[P] {
	var mu sync.Locker
	if fair {
		mu = &ticketlock.Lock{}
	} else {
		mu = &sync.Mutex{}
	}

	n := &Net[P]{
		id:      uuid.New().String(),
		fair:    fair,
		logger:  zap.NewNop(),
		mu:      mu,
		cond:    sync.NewCond(mu),
		marking: newMarking(initial),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Fire blocks until at least one transition in ts is enabled, then
// atomically fires the first enabled transition (in slice order) and
// returns it. If ctx is cancelled before any transition in ts becomes
// enabled, Fire returns an error satisfying errors.Is(err, ErrCancelled)
// and leaves the marking exactly as it was.
//
// Fire panics if ts is empty: a caller must always offer at least one
// transition to choose among.
func (n *Net[P]) Fire(ctx context.Context, ts []*Transition[P]) (*Transition[P], error) {
	if len(ts) == 0 {
		panic("petrinet: fire requires a non-empty transition set")
	}

	// sync.Cond has no notion of a context; a blocked Wait can only be
	// unblocked by Signal/Broadcast. This goroutine translates ctx
	// cancellation into a Broadcast so every waiter wakes up, rechecks
	// ctx.Err() first, and returns ErrCancelled instead of re-waiting. It
	// keeps broadcasting on a short interval rather than just once: a
	// single Broadcast racing with the main loop between its ctx.Err()
	// check and its call to Wait would otherwise be lost, leaving Fire
	// blocked forever on an already-cancelled context.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
		case <-watchDone:
			return
		}
		ticker := time.NewTicker(cancelPollInterval)
		defer ticker.Stop()
		for {
			n.mu.Lock()
			n.cond.Broadcast()
			n.mu.Unlock()
			select {
			case <-watchDone:
				return
			case <-ticker.C:
			}
		}
	}()

	n.mu.Lock()
	defer n.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			n.logger.Info("fire cancelled", zap.String("net", n.id), zap.Error(err))
			return nil, &cancelledError{cause: err}
		}
		if t := firstEnabled(n.marking, ts); t != nil {
			t.fire(n.marking)
			n.logger.Debug("fired transition",
				zap.String("net", n.id),
				zap.String("transition", t.String()),
			)
			n.cond.Signal()
			return t, nil
		}
		n.cond.Wait()
	}
}

// Reachable returns every marking reachable from the marking observed at
// call entry by any finite firing sequence drawn from ts, including that
// starting marking itself. The result is keyed by each marking's canonical
// encoding (Marking.key) purely to de-duplicate; callers should not depend
// on map iteration order.
//
// Reachable takes the net's lock only long enough to snapshot the starting
// marking; all exploration afterwards runs against private copies, so a
// concurrent Fire may make the engine's live marking diverge from what
// Reachable reports by the time it returns. The result describes the
// marking observed at call entry, not a live view.
//
// Reachable does not terminate if ts describes an unbounded net; callers
// must only invoke it on nets they believe bounded.
func (n *Net[P]) Reachable(ts []*Transition[P]) map[string]Marking[P] {
	n.mu.Lock()
	start := n.marking.snapshot()
	n.mu.Unlock()

	reached := map[string]Marking[P]{start.key(): start}
	reachFrom(start, ts, reached)
	return reached
}

// Marking returns a snapshot of the net's current marking. It is a
// convenience query, not part of the engine's firing/reachability
// contract; it takes the lock just long enough to copy the live marking.
func (n *Net[P]) Marking() Marking[P] {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.marking.snapshot()
}

// ID returns the net's generated identifier, used only in log output.
func (n *Net[P]) ID() string { return n.id }

func firstEnabled[P comparable](m Marking[P], ts []*Transition[P]) *Transition[P] {
	for _, t := range ts {
		if t.enabled(m) {
			return t
		}
	}
	return nil
}

// reachFrom performs the depth-first, memoized exploration described by
// Net.Reachable. It operates entirely on copies and acquires no lock.
func reachFrom[P comparable](m Marking[P], ts []*Transition[P], reached map[string]Marking[P]) {
	for _, t := range ts {
		if !t.enabled(m) {
			continue
		}
		next := m.snapshot()
		t.fire(next)
		key := next.key()
		if _, seen := reached[key]; seen {
			continue
		}
		reached[key] = next
		reachFrom(next, ts, reached)
	}
}
