package engine

import "github.com/kolkov/loomgo/internal/loom/report"

// branchPoint is one recorded scheduler decision, per spec §3's "execution
// path" data model: which logical thread was asking, how many alternatives
// were available, and which one was taken. A decision with only one
// alternative is not a branch point at all (spec GLOSSARY) and is never
// recorded — see pathCursor.decide.
type branchPoint struct {
	thread int
	n      int
	taken  int
}

// pathCursor replays a persistent path (owned by the Explorer, shared across
// every Session run via a pointer to its backing slice) and extends it with
// newly discovered branch points once replay runs out. The same cursor
// serves both the scheduler's thread-choice decisions and
// matomic.Cell.CompareExchangeWeak's spurious-failure branch: both are just
// "a decision among n alternatives" per spec §4.G's glossary definition.
type pathCursor struct {
	path *[]branchPoint
	pos  int
}

// decide returns the alternative index to take, 0 <= result < n. On replay
// it returns the recorded choice; on first visit it records alternative 0
// (spec §4.F: "the first is taken") and appends a new branchPoint. n <= 1
// carries no real choice and is never recorded.
func (c *pathCursor) decide(threadID, n int) int {
	if n <= 1 {
		return 0
	}
	if c.pos < len(*c.path) {
		bp := (*c.path)[c.pos]
		if bp.n != n {
			panic(&report.Failure{
				Kind:    report.InternalInvariant,
				Message: "schedule desynchronized: a branch point's alternative count changed on replay",
			})
		}
		c.pos++
		return bp.taken
	}
	bp := branchPoint{thread: threadID, n: n, taken: 0}
	*c.path = append(*c.path, bp)
	c.pos++
	return bp.taken
}

// branchesUsed is the number of real (n > 1) branch points decided so far in
// this run — what config.Options.MaxBranches bounds.
func (c *pathCursor) branchesUsed() int {
	return c.pos
}

func stepsFromPath(path []branchPoint) []report.Step {
	steps := make([]report.Step, len(path))
	for i, bp := range path {
		steps[i] = report.Step{Thread: bp.thread, Alternative: bp.taken, OfN: bp.n}
	}
	return steps
}
