// Package cell implements the causal cell described in spec §4.D: interior
// mutability (like a raw unsafe cell) whose read/write accesses are checked
// against internal/loom/causality instead of the host's memory model. A
// conflicting pair of accesses raises a causality.Fault rather than letting
// the data race through.
//
// Grounded scenario-by-scenario on original_source/tests/causal_cell.rs —
// see cell_test.go for each named scenario reproduced as a Go test.
package cell

import (
	"github.com/kolkov/loomgo/internal/loom/callsite"
	"github.com/kolkov/loomgo/internal/loom/causality"
	"github.com/kolkov/loomgo/internal/loom/execctx"
	"github.com/kolkov/loomgo/internal/loom/report"
	"github.com/kolkov/loomgo/internal/loom/vectorclock"
)

// nextID allocates cell identities. Safe without synchronization for the
// same reason matomic.scSeq is: only one logical thread ever executes at a
// time under the cooperative scheduler.
var nextID uint64

func allocID() uint64 {
	nextID++
	return nextID
}

// Cell holds a value of type T that threads access through With, WithMut,
// or WithDeferred. It carries no lock of its own — causality.Store is what
// decides whether a given pair of accesses was safe.
type Cell[T any] struct {
	id    uint64
	value T
}

// New creates a Cell with no recorded access history.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{id: allocID(), value: v}
}

func (c *Cell[T]) selfAdvance() execctx.Handle {
	h := execctx.MustCurrent()
	h.Yield()
	h.Clock().Increment(h.ThreadID())
	return h
}

// With gives read-only access to the cell's value. Panics with a
// *causality.Fault if a conflicting, unsynchronized write is concurrent with
// this read.
func (c *Cell[T]) With(f func(v T)) {
	h := c.selfAdvance()
	site := callsite.Capture(2)
	if err := h.Store().RecordRead(c.id, h.ThreadID(), h.Clock(), site); err != nil {
		panic(err)
	}
	f(c.value)
}

// WithMut gives mutable access to the cell's value. Panics with a
// *causality.Fault if a conflicting, unsynchronized read or write is
// concurrent with this write.
func (c *Cell[T]) WithMut(f func(v *T)) {
	h := c.selfAdvance()
	site := callsite.Capture(2)
	if err := h.Store().RecordWriteExclusive(c.id, h.ThreadID(), h.Clock(), site); err != nil {
		panic(err)
	}
	f(&c.value)
}

// Check is a deferred read's causality obligation: the read itself already
// happened (WithDeferred's closure already ran against the value), but
// whether it was SAFE to do so is validated only when Check is run, not when
// it was created — letting a caller read early and postpone the proof that
// the read didn't race until program logic (e.g. observing an atomic flag)
// establishes that no conflicting write exists yet. The clock is frozen at
// WithDeferred time deliberately: Check validates "was my early read
// consistent with everything written up to right now," not "is my thread in
// general synchronized with everything right now" — the two only coincide
// when nothing else advanced the thread's clock in between.
//
// A Check that is created but never run (directly, or via CausalCheck) is a
// dropped obligation: its read is simply never validated, and nothing
// detects or reports the drop.
type Check struct {
	cellID  uint64
	thread  int
	clock   *vectorclock.Clock
	store   *causality.Store
	site    string
	checked bool
}

// Check validates the deferred read now, against the causality store's
// current state — using the clock as it stood at the WithDeferred call, not
// whatever the thread's live clock has since become. Unlike With, a
// successful Check does not extend the location's tracked read set: the
// value was already consumed back at WithDeferred time, so there is nothing
// further for a subsequent write to conflict with. Panics with a
// *causality.Fault on a race, or a *report.Failure{Kind: report.DoubleCheck}
// if this token has already been checked once — a dropped (never checked)
// token is not an error, but checking the same token twice is a misuse of
// the API, not a race to model.
func (c *Check) Check() {
	if c.checked {
		panic(&report.Failure{Kind: report.DoubleCheck, Message: "cell.Check called twice on the same deferred-read token"})
	}
	c.checked = true
	if err := c.store.CheckRead(c.cellID, c.thread, c.clock, c.site); err != nil {
		panic(err)
	}
}

// WithDeferred reads the cell's value immediately, without yet validating
// causality, and returns that value alongside a Check that performs the
// validation later. See original_source/tests/causal_cell.rs's
// defer_success/defer_fail/should_defer for why this split matters: deciding
// *whether* the read was safe can depend on something the caller only
// learns after the read (e.g. an atomic flag), and With would have to
// validate too early to take that into account.
func WithDeferred[T, R any](c *Cell[T], f func(v T) R) (R, *Check) {
	h := c.selfAdvance()
	site := callsite.Capture(2)
	result := f(c.value)
	check := &Check{cellID: c.id, thread: h.ThreadID(), clock: h.Clock().Clone(), store: h.Store(), site: site}
	return result, check
}

// CausalCheck batches multiple deferred Checks so a caller can validate them
// together — see original_source/tests/causal_cell.rs's batch_defer_success
// and batch_defer_fail.
type CausalCheck struct {
	pending []*Check
}

// Join adds c to the batch.
func (cc *CausalCheck) Join(c *Check) {
	cc.pending = append(cc.pending, c)
}

// Check runs every joined Check in the order they were joined, panicking
// with the first *causality.Fault encountered.
func (cc *CausalCheck) Check() {
	for _, c := range cc.pending {
		c.Check()
	}
	cc.pending = nil
}
