// Package report defines the structured failure output described in spec
// §6/§7: a failure class, the branching path that reproduced it, and the
// offending accesses' thread ids and clocks. Adapted from the teacher's
// detector/report.go RaceReport/AccessInfo pair, trimmed of real stack-trace
// capture (see internal/loom/callsite) since accesses here are modeled
// operations rather than arbitrary instrumented code.
package report

import (
	"fmt"
	"strings"
)

// Kind classifies a failure per spec §7's error taxonomy.
type Kind int

const (
	// UserFailure is the closure's own assertion or panic.
	UserFailure Kind = iota
	// DataRace is a happens-before violation detected by the causality store.
	DataRace
	// Deadlock means no thread was runnable while some remained unfinished.
	Deadlock
	// ExplorationBound means a branch or preemption cap was reached.
	ExplorationBound
	// InternalInvariant means a checker invariant itself was violated.
	InternalInvariant
	// DoubleCheck means a cell.Check token was checked more than once — a
	// tool-usage error, distinct from a dropped (never checked) token, which
	// spec §7 says to treat as "no read occurred" rather than report at all.
	DoubleCheck
)

func (k Kind) String() string {
	switch k {
	case UserFailure:
		return "UserFailure"
	case DataRace:
		return "DataRace"
	case Deadlock:
		return "Deadlock"
	case ExplorationBound:
		return "ExplorationBound"
	case InternalInvariant:
		return "InternalInvariant"
	case DoubleCheck:
		return "DoubleCheck"
	default:
		return "Unknown"
	}
}

// Step describes one taken branch-point decision, for reproducing a failing
// schedule.
type Step struct {
	Thread      int
	Alternative int
	OfN         int
}

// Failure is the terminal report for a single Model execution.
type Failure struct {
	Kind    Kind
	Message string
	Path    []Step
}

func (f *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", f.Kind, f.Message)
	if len(f.Path) > 0 {
		b.WriteString(" (schedule: ")
		for i, s := range f.Path {
			if i > 0 {
				b.WriteString(" -> ")
			}
			fmt.Fprintf(&b, "T%d[%d/%d]", s.Thread, s.Alternative, s.OfN)
		}
		b.WriteString(")")
	}
	return b.String()
}

// ScheduleSummary renders Path the way LogSchedule consumers want to print
// it, independent of Error()'s fuller message.
func ScheduleSummary(path []Step) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = fmt.Sprintf("T%d[%d/%d]", s.Thread, s.Alternative, s.OfN)
	}
	return strings.Join(parts, " -> ")
}
