package engine

import (
	"fmt"
	"sync"

	"github.com/kolkov/loomgo/internal/loom/causality"
	"github.com/kolkov/loomgo/internal/loom/execctx"
	"github.com/kolkov/loomgo/internal/loom/report"
)

// Scheduler is the single-active-thread handshake described in spec §4.F:
// at most one Thread's goroutine is ever running user code at a time; every
// other spawned Thread is parked on cond, waiting for its turn.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	store   *causality.Store
	cursor  *pathCursor
	threads []*Thread

	current int  // id of the thread currently granted the turn, or -1
	aborted bool // set once a terminal (non-program) failure is discovered

	maxThreads     int
	maxBranches    int
	maxPreemptions int
	preemptionsUsed int
}

func newScheduler(store *causality.Store, path *[]branchPoint, maxThreads, maxBranches, maxPreemptions int) *Scheduler {
	s := &Scheduler{
		store:          store,
		cursor:         &pathCursor{path: path},
		current:        -1,
		maxThreads:     maxThreads,
		maxBranches:    maxBranches,
		maxPreemptions: maxPreemptions,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// abortIfNeededLocked unwinds the calling thread's goroutine via
// abortSentinel once some other thread has already discovered a terminal
// failure. Must be called with mu held.
func (s *Scheduler) abortIfNeededLocked() {
	if s.aborted {
		panic(abortSentinel{})
	}
}

func (s *Scheduler) checkBranchBoundLocked() {
	if s.maxBranches > 0 && s.cursor.branchesUsed() >= s.maxBranches {
		s.abortLocked(&report.Failure{
			Kind:    report.ExplorationBound,
			Message: fmt.Sprintf("exceeded max_branches=%d", s.maxBranches),
		})
	}
}

func (s *Scheduler) abortLocked(f *report.Failure) {
	s.aborted = true
	s.cond.Broadcast()
	panic(f)
}

// runnableIDsLocked returns the ids of every Runnable thread, with
// requester's id first (if it is itself runnable) — spec §4.F's "prefer to
// continue the currently running thread" — followed by the rest in spawn
// (ascending id) order, for deterministic, reproducible replay.
func (s *Scheduler) runnableIDsLocked(requester *Thread) []int {
	var ids []int
	if requester != nil && requester.state == runnable {
		ids = append(ids, requester.id)
	}
	for _, t := range s.threads {
		if t.state == runnable && (requester == nil || t.id != requester.id) {
			ids = append(ids, t.id)
		}
	}
	return ids
}

func (s *Scheduler) allFinishedLocked() bool {
	for _, t := range s.threads {
		if t.state != finished {
			return false
		}
	}
	return true
}

// rescheduleLocked picks the next thread to run (consulting or extending the
// path via s.cursor) and grants it the turn. requester is the thread asking
// for a decision — typically itself, reporting it is now Blocked or
// Finished, or still Runnable and merely yielding.
func (s *Scheduler) rescheduleLocked(requester *Thread) {
	s.checkBranchBoundLocked()

	alts := s.runnableIDsLocked(requester)
	if len(alts) == 0 {
		if s.allFinishedLocked() {
			s.current = -1
			s.cond.Broadcast()
			return
		}
		s.abortLocked(&report.Failure{
			Kind:    report.Deadlock,
			Message: "no runnable thread remains but at least one thread is still blocked",
		})
	}

	idx := s.cursor.decide(requester.id, len(alts))
	chosen := alts[idx]
	if chosen != requester.id && requester.state == runnable {
		s.preemptionsUsed++
		if s.maxPreemptions > 0 && s.preemptionsUsed > s.maxPreemptions {
			s.abortLocked(&report.Failure{
				Kind:    report.ExplorationBound,
				Message: fmt.Sprintf("exceeded max_preemptions=%d", s.maxPreemptions),
			})
		}
	}
	s.current = chosen
	s.cond.Broadcast()
}

// waitForTurnLocked blocks until the scheduler has granted t the turn (or
// the session aborts). Must be called with mu held.
func (s *Scheduler) waitForTurnLocked(t *Thread) {
	for s.current != t.id {
		s.cond.Wait()
		s.abortIfNeededLocked()
	}
}

// spawn starts a new logical thread running fn, inheriting parent's clock at
// the moment of the call plus the implicit release/acquire edge spec §4.E
// describes (parent's clock is cloned, then the child ticks its own
// component once — the equivalent of a release-store-then-acquire-load
// happening atomically at spawn time). Spawning is itself a yield point for
// the parent.
func (s *Scheduler) spawn(parent *Thread, fn func()) *Thread {
	s.mu.Lock()
	s.abortIfNeededLocked()

	if s.maxThreads > 0 && len(s.threads)+1 > s.maxThreads {
		s.abortLocked(&report.Failure{
			Kind:    report.ExplorationBound,
			Message: fmt.Sprintf("spawned more than max_threads=%d logical threads", s.maxThreads),
		})
	}

	child := &Thread{
		id:         len(s.threads),
		sched:      s,
		clock:      parent.clock.Clone(),
		store:      s.store,
		state:      runnable,
		finishedCh: make(chan struct{}),
	}
	child.clock.Increment(child.id)
	s.threads = append(s.threads, child)
	s.mu.Unlock()

	go func() {
		defer close(child.finishedCh)
		if !child.awaitFirstTurn() {
			child.state = finished
			return
		}
		execctx.Register(child)
		defer execctx.Unregister()
		child.mainLoop(fn)
	}()

	parent.Yield()
	return child
}
