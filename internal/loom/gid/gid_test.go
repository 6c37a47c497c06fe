package gid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentIsStableWithinOneGoroutine(t *testing.T) {
	first := Current()
	second := Current()
	require.Equal(t, first, second)
	require.NotZero(t, first)
}

func TestCurrentDiffersAcrossGoroutines(t *testing.T) {
	var wg sync.WaitGroup
	ids := make(chan int64, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- Current()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		require.False(t, seen[id], "goroutine ids must be distinct")
		seen[id] = true
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	require.Zero(t, parse([]byte("not a goroutine line")))
	require.Zero(t, parse([]byte("goroutine")))
}

func TestParseExtractsLeadingDigits(t *testing.T) {
	require.Equal(t, int64(42), parse([]byte("goroutine 42 [running]:\nmore")))
}
