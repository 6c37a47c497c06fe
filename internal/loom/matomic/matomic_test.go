package matomic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolkov/loomgo/internal/loom/execctx"
)

// numA and numB mirror original_source/tests/atomic_int.rs's NUM_A/NUM_B,
// truncated to each width under test exactly as that file's `as $int` casts
// do. They are variables rather than constants so that the narrowing
// conversions truncate instead of failing to compile.
var (
	numA uint64 = 11641914933775430211
	numB uint64 = 13209405719799650717
)

func withThread(t *testing.T, tid int, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		execctx.Register(execctx.NewHandle(tid))
		defer execctx.Unregister()
		fn()
	}()
	<-done
}

func TestFetchXorMatchesReferenceSemantics(t *testing.T) {
	withThread(t, 0, func() {
		a := uint32(numA)
		b := uint32(numB)

		cell := New(a)
		prev := cell.FetchXor(b, SeqCst)

		require.Equal(t, a, prev)
		require.Equal(t, a^b, cell.Load(SeqCst))
	})
}

func TestCompareExchangeMatchesReferenceSemantics(t *testing.T) {
	withThread(t, 0, func() {
		a := uint32(numA)
		b := uint32(numB)

		cell := New(a)

		got, ok := cell.CompareExchange(b, a, SeqCst, SeqCst)
		require.False(t, ok)
		require.Equal(t, a, got)

		got, ok = cell.CompareExchange(a, b, SeqCst, SeqCst)
		require.True(t, ok)
		require.Equal(t, a, got)

		require.Equal(t, b, cell.Load(SeqCst))
	})
}

func TestCompareExchangeWeakStandaloneAlwaysTakesSucceedBranch(t *testing.T) {
	withThread(t, 0, func() {
		a := uint32(numA)
		b := uint32(numB)

		cell := New(a)

		got, ok := cell.CompareExchangeWeak(b, a, SeqCst, SeqCst)
		require.False(t, ok)
		require.Equal(t, a, got)

		got, ok = cell.CompareExchangeWeak(a, b, SeqCst, SeqCst)
		require.True(t, ok)
		require.Equal(t, a, got)

		require.Equal(t, b, cell.Load(SeqCst))
	})
}

func TestCompareExchangeFailureOrderingMustNotRelease(t *testing.T) {
	withThread(t, 0, func() {
		cell := New[uint8](1)
		require.Panics(t, func() {
			cell.CompareExchange(1, 2, SeqCst, Release)
		})
	})
}

func TestReleaseStorePublishesToAcquireLoad(t *testing.T) {
	cell := New[uint32](0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		execctx.Register(execctx.NewHandle(0))
		defer execctx.Unregister()
		cell.Store(42, Release)
	}()
	<-done

	done2 := make(chan struct{})
	go func() {
		defer close(done2)
		execctx.Register(execctx.NewHandle(1))
		defer execctx.Unregister()
		h, _ := execctx.Current()
		before := h.Clock().Get(0)
		require.Equal(t, uint32(42), cell.Load(Acquire))
		after := h.Clock().Get(0)
		require.Greater(t, after, before, "acquire load must join the releasing thread's clock")
	}()
	<-done2
}

func TestRelaxedLoadDoesNotJoinReleaseClock(t *testing.T) {
	withThread(t, 0, func() {
		cell := New[uint8](0)
		cell.Store(1, Release)
		h, _ := execctx.Current()
		before := h.Clock().Get(0)
		_ = cell.Load(Relaxed)
		after := h.Clock().Get(0)
		require.Equal(t, before+1, after, "Relaxed still self-advances but must not join anything extra")
	})
}

func TestSwapReturnsPreviousValue(t *testing.T) {
	withThread(t, 0, func() {
		cell := New[uint16](7)
		prev := cell.Swap(9, SeqCst)
		require.Equal(t, uint16(7), prev)
		require.Equal(t, uint16(9), cell.Load(SeqCst))
	})
}

func TestRelaxedLoadMayObserveAnyUnsyncedWriteInModificationOrder(t *testing.T) {
	cell := New[uint8](0)

	done0 := make(chan struct{})
	go func() {
		defer close(done0)
		execctx.Register(execctx.NewHandle(0))
		defer execctx.Unregister()
		cell.Store(1, Relaxed)
		cell.Store(2, Relaxed)
	}()
	<-done0

	done1 := make(chan struct{})
	var got uint8
	go func() {
		defer close(done1)
		execctx.Register(execctx.NewHandle(1))
		defer execctx.Unregister()
		got = cell.Load(Relaxed)
	}()
	<-done1

	require.Equal(t, uint8(0), got, "a standalone Handle's Branch always takes alternative 0, the oldest unsynced entry")
}

func TestRelaxedLoadExcludesEntriesStaleRelativeToASyncedRelease(t *testing.T) {
	cell := New[uint8](0)

	done0 := make(chan struct{})
	go func() {
		defer close(done0)
		execctx.Register(execctx.NewHandle(0))
		defer execctx.Unregister()
		cell.Store(1, Release)
		cell.Store(2, Relaxed)
	}()
	<-done0

	done1 := make(chan struct{})
	var got uint8
	go func() {
		defer close(done1)
		execctx.Register(execctx.NewHandle(1))
		defer execctx.Unregister()
		h, _ := execctx.Current()
		h.Clock().Set(0, 1)
		got = cell.Load(Relaxed)
	}()
	<-done1

	require.Equal(t, uint8(1), got,
		"the reader already joined the release write's clock, so the initial value 0 it superseded is stale; "+
			"a standalone Handle's Branch always takes alternative 0, the oldest entry still eligible")
}

func TestFetchAddReturnsPreviousValue(t *testing.T) {
	withThread(t, 0, func() {
		cell := New[uint64](10)
		prev := cell.FetchAdd(5, Relaxed)
		require.Equal(t, uint64(10), prev)
		require.Equal(t, uint64(15), cell.Load(Relaxed))
	})
}
