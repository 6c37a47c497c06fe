package engine

import (
	"fmt"

	"github.com/kolkov/loomgo/internal/loom/causality"
	"github.com/kolkov/loomgo/internal/loom/config"
	"github.com/kolkov/loomgo/internal/loom/execctx"
	"github.com/kolkov/loomgo/internal/loom/report"
	"github.com/kolkov/loomgo/internal/loom/vectorclock"
)

// Session is one execution of the model: a fresh causality store, scheduler,
// and root thread running the user closure. Spec §3's Lifecycle note is
// explicit that this state is discarded between executions — a new Session
// is built for every run the Explorer drives.
type Session struct {
	store *causality.Store
	sched *Scheduler
}

func newSession(path *[]branchPoint, opts config.Options) *Session {
	store := causality.NewStore()
	sched := newScheduler(store, path, opts.MaxThreads, opts.MaxBranches, opts.MaxPreemptions)
	return &Session{store: store, sched: sched}
}

// Run executes fn as the session's root logical thread (id 0), driving
// every thread it (transitively) spawns through the same scheduler, and
// returns the first failure observed — nil on a clean, fully-finished
// execution. The returned Failure's Path is left unset; the Explorer fills
// it in from the path it owns, since only it knows the full schedule.
func (sess *Session) Run(fn func()) *report.Failure {
	root := &Thread{
		id:         0,
		sched:      sess.sched,
		clock:      vectorclock.New(),
		store:      sess.store,
		state:      runnable,
		finishedCh: make(chan struct{}),
	}
	root.clock.Increment(0)

	sess.sched.mu.Lock()
	sess.sched.threads = append(sess.sched.threads, root)
	sess.sched.current = 0
	sess.sched.mu.Unlock()

	go func() {
		defer close(root.finishedCh)
		if !root.awaitFirstTurn() {
			root.state = finished
			return
		}
		execctx.Register(root)
		defer execctx.Unregister()
		root.mainLoop(fn)
	}()
	<-root.finishedCh

	// Every thread this session spawned (transitively) must have wound down
	// too, so the next Session the Explorer builds never races with a
	// goroutine left over from this one.
	for _, t := range sess.sched.threads {
		if t != root {
			<-t.finishedCh
		}
	}

	return firstFailure(sess.sched.threads)
}

func firstFailure(threads []*Thread) *report.Failure {
	for _, t := range threads {
		if t.panicVal != nil {
			return translatePanic(t.panicVal)
		}
	}
	return nil
}

// translatePanic turns whatever a thread's closure (or the scheduler
// itself) panicked with into a *report.Failure. A *report.Failure panics
// straight through; a *causality.Fault (raised by cell on a race)
// becomes a DataRace; anything else is the user closure's own assertion or
// panic.
func translatePanic(v any) *report.Failure {
	switch val := v.(type) {
	case *report.Failure:
		return val
	case *causality.Fault:
		return &report.Failure{Kind: report.DataRace, Message: val.Error()}
	case error:
		return &report.Failure{Kind: report.UserFailure, Message: val.Error()}
	default:
		return &report.Failure{Kind: report.UserFailure, Message: fmt.Sprint(v)}
	}
}

// currentThread resolves the engine Thread backing the calling goroutine —
// Spawn and JoinHandle.Join both need it to find "who is calling."
func currentThread() *Thread {
	h := execctx.MustCurrent()
	t, ok := h.(*Thread)
	if !ok {
		panic("loom: Spawn/Join called outside of a model-checked execution")
	}
	return t
}

// JoinHandle is returned by Spawn; Join blocks the calling thread until the
// spawned one has finished.
type JoinHandle struct {
	thread *Thread
}

// Spawn starts fn as a new logical thread and returns a handle to join it.
// Must be called from inside a thread already running under a Session (i.e.
// from the closure passed to Explorer.Run/loom.Model, or from a thread that
// one transitively spawned).
func Spawn(fn func()) *JoinHandle {
	parent := currentThread()
	child := parent.sched.spawn(parent, fn)
	return &JoinHandle{thread: child}
}

// Join blocks the calling thread until h's thread has finished, then joins
// its terminal clock into the caller's.
func (h *JoinHandle) Join() {
	parent := currentThread()
	parent.joinOn(h.thread)
}
