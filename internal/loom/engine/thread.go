package engine

import (
	"github.com/kolkov/loomgo/internal/loom/causality"
	"github.com/kolkov/loomgo/internal/loom/vectorclock"
)

// state is a logical thread's scheduling state (spec §3's thread-state data
// model): Runnable, Blocked (on a join), or Finished.
type state int

const (
	runnable state = iota
	blocked
	finished
)

// abortSentinel unwinds a thread's goroutine when another thread has already
// discovered a terminal failure (deadlock, exploration bound, internal
// invariant) and the scheduler is tearing the session down. It is never
// reported as a failure itself — see Thread.capturePanic.
type abortSentinel struct{}

// Thread is one logical thread: a cooperative continuation backed by a
// single dedicated goroutine for its whole lifetime, parked on the
// Scheduler's condition variable between yield points. It implements
// execctx.Handle so matomic and cell operations resolve their identity,
// clock, and causality store through the usual ambient lookup, with no
// special-casing for "running under the engine" versus a standalone Handle.
//
// Grounded on dijkstracula-go-ilock's ilock.Mutex: a single shared
// sync.Mutex + sync.Cond, a wait-loop re-checking a predicate on every wake
// (here, "is it my turn"), and Broadcast on any state change — generalized
// from ilock's per-lock-state compatibility predicate to the scheduler's
// "whose turn is it" predicate.
type Thread struct {
	id    int
	sched *Scheduler
	clock *vectorclock.Clock
	store *causality.Store

	state      state
	finishedCh chan struct{}
	panicVal   any
}

// ThreadID implements execctx.Handle.
func (t *Thread) ThreadID() int { return t.id }

// Clock implements execctx.Handle.
func (t *Thread) Clock() *vectorclock.Clock { return t.clock }

// Store implements execctx.Handle.
func (t *Thread) Store() *causality.Store { return t.store }

// Branch implements execctx.Handle: a nondeterministic choice among n
// alternatives — matomic.Cell.CompareExchangeWeak's succeed/spuriously-fail
// decision, and a Relaxed Load's choice among not-yet-stale entries in its
// Cell's modification order — recorded and replayed through the same path
// the scheduler itself uses.
func (t *Thread) Branch(n int) int {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abortIfNeededLocked()
	if n <= 1 {
		return 0
	}
	s.checkBranchBoundLocked()
	return s.cursor.decide(t.id, n)
}

// Yield implements execctx.Handle: every atomic and causal-cell operation
// calls this (spec §5's yield points). It hands the turn to whichever
// thread the scheduler picks next — often itself, per §4.F's
// continue-if-safe preference — and blocks until that thread is this one
// again.
func (t *Thread) Yield() {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abortIfNeededLocked()
	s.rescheduleLocked(t)
	s.waitForTurnLocked(t)
}

// joinOn blocks t until child has finished, per spec §4.E's join contract,
// then joins child's terminal clock into t's — the happens-before edge a
// join always establishes.
func (t *Thread) joinOn(child *Thread) {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abortIfNeededLocked()

	for child.state != finished {
		t.state = blocked
		s.rescheduleLocked(t)
		s.waitForTurnLocked(t)
	}
	t.state = runnable
	s.rescheduleLocked(t)
	s.waitForTurnLocked(t)

	t.clock.Join(child.clock)
}

// mainLoop is the body every thread's dedicated goroutine runs once granted
// its first turn: run the user closure, capture any panic (user failure,
// data race, or a scheduler-raised terminal failure) without letting it
// crash the process, then hand the turn onward.
func (t *Thread) mainLoop(fn func()) {
	defer t.safeFinish()
	defer t.capturePanic()
	fn()
}

func (t *Thread) capturePanic() {
	if r := recover(); r != nil {
		if _, aborting := r.(abortSentinel); !aborting {
			t.panicVal = r
		}
	}
}

// safeFinish marks t Finished and reschedules, without letting a
// newly-discovered terminal failure (e.g. this was the thread whose
// finishing revealed a deadlock) escape as an unrecovered panic in this
// goroutine — it is captured the same way capturePanic captures one from
// the user closure, preferring whichever failure was found first.
func (t *Thread) safeFinish() {
	defer func() {
		if r := recover(); r != nil && t.panicVal == nil {
			if _, aborting := r.(abortSentinel); !aborting {
				t.panicVal = r
			}
		}
	}()
	t.finish()
}

func (t *Thread) finish() {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	t.state = finished
	// Threads blocked in joinOn become runnable again; each re-checks
	// whether the thread it joins has finished once it gets the turn.
	for _, o := range s.threads {
		if o.state == blocked {
			o.state = runnable
		}
	}
	s.rescheduleLocked(t)
}

// awaitFirstTurn blocks a freshly spawned (or the root) thread until the
// scheduler grants it the very first turn. Returns false if the session
// aborted before that ever happened.
func (t *Thread) awaitFirstTurn() bool {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.current != t.id {
		if s.aborted {
			return false
		}
		s.cond.Wait()
	}
	return !s.aborted
}
