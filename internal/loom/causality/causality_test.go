package causality

import (
	"testing"

	"github.com/kolkov/loomgo/internal/loom/vectorclock"
	"github.com/stretchr/testify/require"
)

func clockAt(tid int, ticks uint64) *vectorclock.Clock {
	c := vectorclock.New()
	c.Set(tid, ticks)
	return c
}

func TestConcurrentWriteWriteIsARace(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordWriteExclusive(1, 0, clockAt(0, 1), "a.go:1"))

	err := s.RecordWriteExclusive(1, 1, clockAt(1, 1), "a.go:2")
	require.Error(t, err)
	fault, ok := err.(*Fault)
	require.True(t, ok)
	require.Equal(t, "write-write", fault.Kind)
}

func TestOrderedWriteWriteSucceeds(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordWriteExclusive(1, 0, clockAt(0, 1), "a.go:1"))

	after := clockAt(0, 1)
	after.Join(clockAt(1, 2)) // simulate a join edge (e.g. spawn/join) between the writes
	require.NoError(t, s.RecordWriteExclusive(1, 1, after, "a.go:2"))
}

func TestConcurrentReadWriteIsARace(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordRead(1, 0, clockAt(0, 1), "a.go:1"))

	err := s.RecordWriteExclusive(1, 1, clockAt(1, 1), "a.go:2")
	require.Error(t, err)
	fault := err.(*Fault)
	require.Equal(t, "read-write", fault.Kind)
}

func TestConcurrentReadsArePermitted(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordRead(1, 0, clockAt(0, 1), "a.go:1"))
	require.NoError(t, s.RecordRead(1, 1, clockAt(1, 1), "a.go:2"))
}

func TestReadAfterUnsynchronizedWriteIsARace(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.RecordWriteExclusive(1, 0, clockAt(0, 1), "a.go:1"))

	err := s.RecordRead(1, 1, clockAt(1, 1), "a.go:2")
	require.Error(t, err)
	fault := err.(*Fault)
	require.Equal(t, "write-read", fault.Kind)
}

func TestWriteClearsPriorReadSet(t *testing.T) {
	s := NewStore()
	base := clockAt(0, 1)
	require.NoError(t, s.RecordRead(1, 0, base, "a.go:1"))

	after := base.Clone()
	after.Increment(0)
	require.NoError(t, s.RecordWriteExclusive(1, 0, after, "a.go:2"))

	// A later, properly ordered read must only be checked against the new
	// write, not the stale read set.
	final := after.Clone()
	final.Increment(0)
	require.NoError(t, s.RecordRead(1, 0, final, "a.go:3"))
}

func TestFaultErrorNamesBothAccesses(t *testing.T) {
	f := &Fault{
		Kind:    "write-write",
		Prior:   Access{Thread: 0, Clock: vectorclock.New(), Site: "a.go:1"},
		Current: Access{Thread: 1, Clock: vectorclock.New(), Site: "a.go:2"},
	}
	msg := f.Error()
	require.Contains(t, msg, "write-write")
	require.Contains(t, msg, "a.go:1")
	require.Contains(t, msg, "a.go:2")
}
