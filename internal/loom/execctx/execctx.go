// Package execctx resolves the logical thread backing the currently running
// goroutine, so that package-level operations (matomic.Cell, cell.Cell) can
// read their caller's identity and vector clock without threading an explicit
// context parameter through every call — mirroring the external loom::sync
// API, whose atomics and cells also take no context argument.
//
// The lookup is keyed by the real OS goroutine id (internal/loom/gid), the
// same pattern the teacher uses in internal/race/api to map a goroutine id to
// its RaceContext. It is safe here for the same reason it generalizes badly
// to a live race detector: the engine dedicates exactly one long-lived real
// goroutine to each logical thread for that thread's whole lifetime, and the
// cooperative scheduler guarantees only one logical thread actually runs at
// any instant, so the table only ever grows one entry per spawn and is read
// by the one goroutine that owns it.
package execctx

import (
	"sync"

	"github.com/kolkov/loomgo/internal/loom/causality"
	"github.com/kolkov/loomgo/internal/loom/gid"
	"github.com/kolkov/loomgo/internal/loom/vectorclock"
)

// Handle is the engine's per-logical-thread state, as seen by the lower
// layers (matomic, cell) that need a thread identity, its vector clock, and
// a way to ask the explorer for a nondeterministic choice among a bounded
// number of alternatives (used by CompareExchangeWeak's spurious-failure
// branch).
type Handle interface {
	// ThreadID returns the logical thread index, 0 <= id < config.Options.MaxThreads.
	ThreadID() int

	// Clock returns this thread's vector clock. Callers may mutate it
	// in place (Increment) as part of recording a synchronizing access.
	Clock() *vectorclock.Clock

	// Branch asks the explorer to pick one of n >= 1 alternatives. A
	// standalone Handle (see NewHandle) always returns 0, so code built
	// against execctx alone, without the full engine, still runs —
	// deterministically taking the first alternative every time.
	Branch(n int) int

	// Store returns the causality store shared by every thread in the
	// same execution — one Store per Session (model() call), not one per
	// thread, so causal cells see writes from every thread that has run.
	Store() *causality.Store

	// Yield marks a scheduling yield point (spec §5: every atomic and causal
	// cell operation is one). An engine-backed Handle may block here while
	// the scheduler hands the turn to a different logical thread; a
	// standalone Handle has no scheduler to hand off to, so this is a no-op.
	Yield()
}

var registry sync.Map // map[int64]Handle, keyed by gid.Current()

// Register associates h with the calling goroutine. The engine calls this
// once from the real goroutine backing a logical thread, before running any
// of that thread's user code.
func Register(h Handle) {
	registry.Store(gid.Current(), h)
}

// Unregister removes the calling goroutine's association, once its logical
// thread has finished.
func Unregister() {
	registry.Delete(gid.Current())
}

// Current returns the Handle registered for the calling goroutine, if any.
func Current() (Handle, bool) {
	v, ok := registry.Load(gid.Current())
	if !ok {
		return nil, false
	}
	return v.(Handle), true
}

// MustCurrent is Current, panicking if the calling goroutine has none. Code
// under internal/loom/matomic and internal/loom/cell call this: reaching it
// unregistered means a model operation ran outside of a spawned logical
// thread, which is a misuse of the package, not a data race to model.
func MustCurrent() Handle {
	h, ok := Current()
	if !ok {
		panic("loom: no execution context for this goroutine; atomic and causal cell operations must run inside a spawned model thread")
	}
	return h
}

// simpleHandle is a minimal standalone Handle for exercising matomic/cell in
// isolation, without the engine: a fixed thread id, an independent clock, a
// deterministic Branch that always takes the first alternative, and a
// causality store shared across every simpleHandle built with the same
// *causality.Store (see NewHandleWithStore).
type simpleHandle struct {
	tid   int
	clock *vectorclock.Clock
	store *causality.Store
}

// NewHandle builds a standalone Handle for thread id tid with its own
// private causality store. Sufficient for exercising matomic (which never
// touches the store) without the engine.
func NewHandle(tid int) Handle {
	return NewHandleWithStore(tid, causality.NewStore())
}

// NewHandleWithStore builds a standalone Handle for thread id tid backed by
// a caller-supplied causality store — pass the same store to every thread
// within one simulated execution so cell.Cell sees all of their accesses.
func NewHandleWithStore(tid int, store *causality.Store) Handle {
	return &simpleHandle{tid: tid, clock: vectorclock.New(), store: store}
}

func (s *simpleHandle) ThreadID() int             { return s.tid }
func (s *simpleHandle) Clock() *vectorclock.Clock { return s.clock }
func (s *simpleHandle) Branch(n int) int          { return 0 }
func (s *simpleHandle) Store() *causality.Store   { return s.store }
func (s *simpleHandle) Yield()                    {}
