// Package vectorclock implements vector clocks for tracking happens-before
// relations between logical threads inside one model-checker execution.
//
// Each logical thread owns one component of the clock. Operations are pure
// value operations on a fixed-size array, sized for the checker's small
// thread counts (bounded by config.Options.MaxThreads) rather than the
// tens-of-thousands of goroutines a production race detector must track.
package vectorclock

import "strings"

// MaxThreads bounds the number of logical threads a single execution may
// spawn. A model-checked closure realistically spawns a handful of threads;
// this keeps Clock a fixed, zero-allocation array like its production
// race-detector counterpart.
const MaxThreads = 256

// Clock is a vector of per-thread logical timestamps, defaulting to 0.
type Clock struct {
	ticks  [MaxThreads]uint64
	maxTID int
}

// New returns a zero-initialized clock: all threads at logical time 0.
func New() *Clock {
	return &Clock{}
}

// Clone returns a deep copy of c.
func (c *Clock) Clone() *Clock {
	clone := &Clock{maxTID: c.maxTID}
	copy(clone.ticks[:c.maxTID+1], c.ticks[:c.maxTID+1])
	return clone
}

// Get returns the logical time for thread tid.
func (c *Clock) Get(tid int) uint64 {
	return c.ticks[tid]
}

// Set sets the logical time for thread tid directly.
func (c *Clock) Set(tid int, v uint64) {
	c.ticks[tid] = v
	if v > 0 && tid > c.maxTID {
		c.maxTID = tid
	}
}

// Increment advances thread tid's own component by one tick. Called on every
// atomic release/synchronizing action per spec Invariant 5.
func (c *Clock) Increment(tid int) {
	c.ticks[tid]++
	if tid > c.maxTID {
		c.maxTID = tid
	}
}

// Join performs the pointwise maximum c = c ⊔ other. Associative, commutative,
// idempotent.
func (c *Clock) Join(other *Clock) {
	limit := c.maxTID
	if other.maxTID > limit {
		limit = other.maxTID
	}
	for i := 0; i <= limit; i++ {
		if other.ticks[i] > c.ticks[i] {
			c.ticks[i] = other.ticks[i]
		}
	}
	if other.maxTID > c.maxTID {
		c.maxTID = other.maxTID
	}
}

// LessOrEqual reports whether c[i] <= other[i] for every thread i.
func (c *Clock) LessOrEqual(other *Clock) bool {
	for i := 0; i <= c.maxTID; i++ {
		if c.ticks[i] > other.ticks[i] {
			return false
		}
	}
	return true
}

// Equal reports whether c and other carry identical timestamps.
func (c *Clock) Equal(other *Clock) bool {
	limit := c.maxTID
	if other.maxTID > limit {
		limit = other.maxTID
	}
	for i := 0; i <= limit; i++ {
		if c.ticks[i] != other.ticks[i] {
			return false
		}
	}
	return true
}

// HappensBefore implements the spec's strict happens-before order: c ⊑ other
// and c != other (at least one component is strictly less).
func (c *Clock) HappensBefore(other *Clock) bool {
	return c.LessOrEqual(other) && !c.Equal(other)
}

// ConcurrentWith reports whether neither clock happens-before the other.
func (c *Clock) ConcurrentWith(other *Clock) bool {
	return !c.HappensBefore(other) && !other.HappensBefore(c)
}

// String renders the non-zero components, e.g. "{0:2, 1:1}".
func (c *Clock) String() string {
	var parts []string
	for i := 0; i <= c.maxTID; i++ {
		if c.ticks[i] != 0 {
			parts = append(parts, itoa(i)+":"+itoa64(c.ticks[i]))
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func itoa(n int) string { return itoa64(uint64(n)) }

func itoa64(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
