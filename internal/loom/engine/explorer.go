package engine

import (
	"fmt"

	"github.com/kolkov/loomgo/internal/loom/config"
	"github.com/kolkov/loomgo/internal/loom/report"
)

// Stats summarizes one Explorer.Run call, mirroring (at a scale appropriate
// to a single-threaded DFS) the statistics the timewinder reference reports
// from its parallel BFS engine (ModelStatistics: transitions explored,
// depth, violation count).
type Stats struct {
	Executions    int
	MaxPathLength int
}

// Explorer drives repeated executions of a user closure, enumerating
// branching decisions via depth-first search with backtracking, per spec
// §4.G. It owns the one piece of state that survives across executions: the
// path of branch points taken so far.
type Explorer struct {
	opts  config.Options
	path  []branchPoint
	stats Stats
}

// NewExplorer builds an Explorer configured by opts, with an empty path —
// the very first execution it runs takes the first alternative at every
// branch point it discovers.
func NewExplorer(opts config.Options) *Explorer {
	return &Explorer{opts: opts}
}

// Run drives executions of fn until either a failure is found (returned
// immediately, aborting further exploration — spec §4.H: "aborts on first
// failure") or the branching tree is exhausted (returns nil).
func (e *Explorer) Run(fn func()) *report.Failure {
	for {
		e.stats.Executions++

		sess := newSession(&e.path, e.opts)
		failure := sess.Run(fn)

		if len(e.path) > e.stats.MaxPathLength {
			e.stats.MaxPathLength = len(e.path)
		}
		e.logSchedule()

		if failure != nil {
			failure.Path = stepsFromPath(e.path)
			return failure
		}

		if !e.backtrack() {
			return nil
		}
	}
}

// Stats returns the statistics accumulated so far.
func (e *Explorer) Stats() Stats {
	return e.stats
}

func (e *Explorer) logSchedule() {
	if e.opts.LogSchedule == nil {
		return
	}
	summary := report.ScheduleSummary(stepsFromPath(e.path))
	if e.opts.CheckpointInterval > 0 && e.stats.Executions%e.opts.CheckpointInterval == 0 {
		summary = fmt.Sprintf("[checkpoint @%d] %s", e.stats.Executions, summary)
	}
	e.opts.LogSchedule(summary)
}

// backtrack implements spec §4.G's DFS step: advance the last branch point
// with unexplored alternatives and re-run from there, or pop it and retry.
// Returns false once the path is empty, meaning the exploration tree is
// fully exhausted.
func (e *Explorer) backtrack() bool {
	for len(e.path) > 0 {
		last := &e.path[len(e.path)-1]
		if last.taken+1 < last.n {
			last.taken++
			return true
		}
		e.path = e.path[:len(e.path)-1]
	}
	return false
}
