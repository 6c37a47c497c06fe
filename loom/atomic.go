package loom

import "github.com/kolkov/loomgo/internal/loom/matomic"

// Ordering is one of the five modeled memory orderings spec §4.C names.
// The zero value, Relaxed, is the weakest.
type Ordering = matomic.Ordering

const (
	Relaxed = matomic.Relaxed
	Release = matomic.Release
	Acquire = matomic.Acquire
	AcqRel  = matomic.AcqRel
	SeqCst  = matomic.SeqCst
)

// AtomicU8 is a modeled 8-bit atomic cell.
type AtomicU8 struct{ c *matomic.Cell[uint8] }

// NewAtomicU8 creates an AtomicU8 holding the initial value v.
func NewAtomicU8(v uint8) *AtomicU8 { return &AtomicU8{c: matomic.New(v)} }

func (a *AtomicU8) Load(ord Ordering) uint8         { return a.c.Load(ord) }
func (a *AtomicU8) Store(v uint8, ord Ordering)     { a.c.Store(v, ord) }
func (a *AtomicU8) Swap(v uint8, ord Ordering) uint8 { return a.c.Swap(v, ord) }
func (a *AtomicU8) CompareExchange(cur, new_ uint8, succ, fail Ordering) (uint8, bool) {
	return a.c.CompareExchange(cur, new_, succ, fail)
}
func (a *AtomicU8) CompareExchangeWeak(cur, new_ uint8, succ, fail Ordering) (uint8, bool) {
	return a.c.CompareExchangeWeak(cur, new_, succ, fail)
}
func (a *AtomicU8) FetchAdd(v uint8, ord Ordering) uint8 { return a.c.FetchAdd(v, ord) }
func (a *AtomicU8) FetchSub(v uint8, ord Ordering) uint8 { return a.c.FetchSub(v, ord) }
func (a *AtomicU8) FetchAnd(v uint8, ord Ordering) uint8 { return a.c.FetchAnd(v, ord) }
func (a *AtomicU8) FetchOr(v uint8, ord Ordering) uint8  { return a.c.FetchOr(v, ord) }
func (a *AtomicU8) FetchXor(v uint8, ord Ordering) uint8 { return a.c.FetchXor(v, ord) }

// AtomicU16 is a modeled 16-bit atomic cell.
type AtomicU16 struct{ c *matomic.Cell[uint16] }

// NewAtomicU16 creates an AtomicU16 holding the initial value v.
func NewAtomicU16(v uint16) *AtomicU16 { return &AtomicU16{c: matomic.New(v)} }

func (a *AtomicU16) Load(ord Ordering) uint16          { return a.c.Load(ord) }
func (a *AtomicU16) Store(v uint16, ord Ordering)      { a.c.Store(v, ord) }
func (a *AtomicU16) Swap(v uint16, ord Ordering) uint16 { return a.c.Swap(v, ord) }
func (a *AtomicU16) CompareExchange(cur, new_ uint16, succ, fail Ordering) (uint16, bool) {
	return a.c.CompareExchange(cur, new_, succ, fail)
}
func (a *AtomicU16) CompareExchangeWeak(cur, new_ uint16, succ, fail Ordering) (uint16, bool) {
	return a.c.CompareExchangeWeak(cur, new_, succ, fail)
}
func (a *AtomicU16) FetchAdd(v uint16, ord Ordering) uint16 { return a.c.FetchAdd(v, ord) }
func (a *AtomicU16) FetchSub(v uint16, ord Ordering) uint16 { return a.c.FetchSub(v, ord) }
func (a *AtomicU16) FetchAnd(v uint16, ord Ordering) uint16 { return a.c.FetchAnd(v, ord) }
func (a *AtomicU16) FetchOr(v uint16, ord Ordering) uint16  { return a.c.FetchOr(v, ord) }
func (a *AtomicU16) FetchXor(v uint16, ord Ordering) uint16 { return a.c.FetchXor(v, ord) }

// AtomicU32 is a modeled 32-bit atomic cell.
type AtomicU32 struct{ c *matomic.Cell[uint32] }

// NewAtomicU32 creates an AtomicU32 holding the initial value v.
func NewAtomicU32(v uint32) *AtomicU32 { return &AtomicU32{c: matomic.New(v)} }

func (a *AtomicU32) Load(ord Ordering) uint32          { return a.c.Load(ord) }
func (a *AtomicU32) Store(v uint32, ord Ordering)      { a.c.Store(v, ord) }
func (a *AtomicU32) Swap(v uint32, ord Ordering) uint32 { return a.c.Swap(v, ord) }
func (a *AtomicU32) CompareExchange(cur, new_ uint32, succ, fail Ordering) (uint32, bool) {
	return a.c.CompareExchange(cur, new_, succ, fail)
}
func (a *AtomicU32) CompareExchangeWeak(cur, new_ uint32, succ, fail Ordering) (uint32, bool) {
	return a.c.CompareExchangeWeak(cur, new_, succ, fail)
}
func (a *AtomicU32) FetchAdd(v uint32, ord Ordering) uint32 { return a.c.FetchAdd(v, ord) }
func (a *AtomicU32) FetchSub(v uint32, ord Ordering) uint32 { return a.c.FetchSub(v, ord) }
func (a *AtomicU32) FetchAnd(v uint32, ord Ordering) uint32 { return a.c.FetchAnd(v, ord) }
func (a *AtomicU32) FetchOr(v uint32, ord Ordering) uint32  { return a.c.FetchOr(v, ord) }
func (a *AtomicU32) FetchXor(v uint32, ord Ordering) uint32 { return a.c.FetchXor(v, ord) }

// AtomicUsize is a modeled platform-width (64-bit) atomic cell, the "usize"
// width spec §6 names alongside 8/16/32.
type AtomicUsize struct{ c *matomic.Cell[uint64] }

// NewAtomicUsize creates an AtomicUsize holding the initial value v.
func NewAtomicUsize(v uint64) *AtomicUsize { return &AtomicUsize{c: matomic.New(v)} }

func (a *AtomicUsize) Load(ord Ordering) uint64          { return a.c.Load(ord) }
func (a *AtomicUsize) Store(v uint64, ord Ordering)      { a.c.Store(v, ord) }
func (a *AtomicUsize) Swap(v uint64, ord Ordering) uint64 { return a.c.Swap(v, ord) }
func (a *AtomicUsize) CompareExchange(cur, new_ uint64, succ, fail Ordering) (uint64, bool) {
	return a.c.CompareExchange(cur, new_, succ, fail)
}
func (a *AtomicUsize) CompareExchangeWeak(cur, new_ uint64, succ, fail Ordering) (uint64, bool) {
	return a.c.CompareExchangeWeak(cur, new_, succ, fail)
}
func (a *AtomicUsize) FetchAdd(v uint64, ord Ordering) uint64 { return a.c.FetchAdd(v, ord) }
func (a *AtomicUsize) FetchSub(v uint64, ord Ordering) uint64 { return a.c.FetchSub(v, ord) }
func (a *AtomicUsize) FetchAnd(v uint64, ord Ordering) uint64 { return a.c.FetchAnd(v, ord) }
func (a *AtomicUsize) FetchOr(v uint64, ord Ordering) uint64  { return a.c.FetchOr(v, ord) }
func (a *AtomicUsize) FetchXor(v uint64, ord Ordering) uint64 { return a.c.FetchXor(v, ord) }
