package loom

import "github.com/kolkov/loomgo/internal/loom/cell"

// CausalCell is an interior-mutable slot whose accesses are checked for
// race-freedom via happens-before tracking rather than mutual exclusion
// (spec §4.D). A conflicting pair of accesses panics the moment it is
// discovered, and [Model] reports the race as a *Failure{Kind: DataRace}.
type CausalCell[T any] struct {
	c *cell.Cell[T]
}

// NewCausalCell creates a CausalCell with no recorded access history.
func NewCausalCell[T any](v T) *CausalCell[T] {
	return &CausalCell[T]{c: cell.New(v)}
}

// With gives read-only access to the cell's value. Panics on a race.
func (cc *CausalCell[T]) With(f func(v T)) {
	cc.c.With(f)
}

// WithMut gives mutable access to the cell's value. Panics on a race.
func (cc *CausalCell[T]) WithMut(f func(v *T)) {
	cc.c.WithMut(f)
}

// DeferredCheck is a race-freedom obligation produced by a speculative
// read, discharged only if the caller commits to that read by calling
// [DeferredCheck.Check]. A token that is simply dropped (never checked)
// cancels its obligation — spec §7's DeferredCheckDropped is "no read
// occurred," not an error.
type DeferredCheck struct {
	c *cell.Check
}

// Check validates the deferred read now. Panics if it was unsafe (which
// [Model] reports as a *Failure{Kind: DataRace}), or with a *Failure{Kind:
// DoubleCheck} if this token has already been checked once.
func (d *DeferredCheck) Check() {
	d.c.Check()
}

// WithDeferred reads the cell's value immediately without yet validating
// causality, returning that value alongside a [*DeferredCheck] that
// performs the validation later — for algorithms that read speculatively
// and only commit to the read after consulting an atomic guard.
func WithDeferred[T, R any](cc *CausalCell[T], f func(v T) R) (R, *DeferredCheck) {
	result, check := cell.WithDeferred(cc.c, f)
	return result, &DeferredCheck{c: check}
}

// CausalCheck batches multiple [*DeferredCheck] tokens so a caller can
// validate them together in one call.
type CausalCheck struct {
	cc cell.CausalCheck
}

// NewCausalCheck returns an empty batch, mirroring the external API's
// CausalCheck::default().
func NewCausalCheck() *CausalCheck {
	return &CausalCheck{}
}

// Join adds d to the batch.
func (b *CausalCheck) Join(d *DeferredCheck) {
	b.cc.Join(d.c)
}

// Check runs every joined token in join order, panicking with the first
// race encountered.
func (b *CausalCheck) Check() {
	b.cc.Check()
}
