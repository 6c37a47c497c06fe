package execctx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMustCurrentPanicsWithoutRegistration(t *testing.T) {
	// Runs in this test's own goroutine, which has never called Register.
	require.Panics(t, func() {
		MustCurrent()
	})
}

func TestRegisterIsScopedToItsGoroutine(t *testing.T) {
	var wg sync.WaitGroup
	seen := make([]int, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Register(NewHandle(i))
			defer Unregister()
			seen[i] = MustCurrent().ThreadID()
		}(i)
	}
	wg.Wait()

	require.Equal(t, []int{0, 1}, seen)
}

func TestUnregisterRemovesTheAssociation(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Register(NewHandle(5))
		_, ok := Current()
		require.True(t, ok)
		Unregister()
		_, ok = Current()
		require.False(t, ok)
	}()
	<-done
}

func TestStandaloneHandleBranchAlwaysTakesFirstAlternative(t *testing.T) {
	h := NewHandle(0)
	require.Equal(t, 0, h.Branch(3))
	require.Equal(t, 0, h.Branch(1))
}
