// Package loom provides the public API for the permutation-based
// concurrency model checker: [Model] drives exhaustive (or bounded)
// exploration of a test closure's thread interleavings and memory-model
// reorderings, flagging the first schedule that violates a data-race,
// aliasing, assertion, or deadlock invariant.
//
// # Quick Start
//
// A model-checked test spawns threads with [Spawn], synchronizes them with
// [JoinHandle.Join] and the atomic types ([AtomicU8], [AtomicU16],
// [AtomicU32], [AtomicUsize]), and shares interior-mutable state through a
// [CausalCell] instead of a raw variable:
//
//	func TestConcurrentIncrement(t *testing.T) {
//		err := loom.Model(func() {
//			cell := loom.NewCausalCell(0)
//			guard := loom.NewAtomicU32(0)
//
//			h := loom.Spawn(func() {
//				cell.WithMut(func(v *int) { *v = 123 })
//				guard.Store(1, loom.Release)
//			})
//
//			if guard.Load(loom.Acquire) == 1 {
//				cell.With(func(v int) {
//					if v != 123 {
//						panic("torn read")
//					}
//				})
//			}
//			h.Join()
//		})
//		require.NoError(t, err)
//	}
//
// [Model] runs this closure once per schedule the explorer discovers,
// returning the first [*Failure] it finds, or nil once the exploration
// tree is exhausted (each execution's path is bounded by [WithMaxBranches]).
//
// # How It Works
//
// Unlike the sibling race-detector-for-real-code packages in this module's
// ancestry, loom never watches a program run once and guesses whether it
// raced. It runs a deterministic, cooperatively-scheduled re-execution of
// the closure for every interleaving the explorer enumerates, checking
// happens-before at every atomic and causal-cell access along the way —
// exhaustive rather than probabilistic.
//
// # Compatibility
//
//   - Go version: 1.24 or later (generics, for [CausalCell] and the atomic
//     cell widths)
//   - No CGO, no special build tags: the checker is pure Go
package loom
