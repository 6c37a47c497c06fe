// Package causality implements the per-location happens-before bookkeeping
// that backs the causal cell (component D of the spec). It tracks, per
// memory location, the last mutating access and the set of reads since that
// mutation, and raises a Fault the moment an access is found to be
// concurrent with a conflicting prior access.
//
// The store is touched by exactly one goroutine at a time — the logical
// thread currently holding the scheduler's turn — so it needs no internal
// locking; the handshake that hands control between threads already
// establishes the happens-before edge that makes this safe.
package causality

import (
	"fmt"

	"github.com/kolkov/loomgo/internal/loom/vectorclock"
)

// Access identifies a single recorded read or write.
type Access struct {
	Thread int
	Clock  *vectorclock.Clock
	Site   string
}

// Fault reports a happens-before violation: a race.
type Fault struct {
	Kind    string // "write-write", "write-read", or "read-write"
	Prior   Access
	Current Access
}

func (f *Fault) Error() string {
	priorSite, curSite := f.Prior.Site, f.Current.Site
	if priorSite == "" {
		priorSite = "<unknown>"
	}
	if curSite == "" {
		curSite = "<unknown>"
	}
	return fmt.Sprintf(
		"data race (%s): thread %d at %s concurrent with thread %d at %s",
		f.Kind, f.Current.Thread, curSite, f.Prior.Thread, priorSite,
	)
}

// location is one memory cell's access history.
type location struct {
	hasMut    bool
	lastMut   Access
	lastReads []Access
}

// Store holds one location record per causal cell.
type Store struct {
	locs map[uint64]*location
}

// NewStore returns an empty causality store. One Store exists per execution
// and is discarded when the execution ends.
func NewStore() *Store {
	return &Store{locs: make(map[uint64]*location)}
}

func (s *Store) location(id uint64) *location {
	l, ok := s.locs[id]
	if !ok {
		l = &location{}
		s.locs[id] = l
	}
	return l
}

// RecordRead checks that the prior mutation (if any) happens-before clock,
// then adds (tid, a snapshot of clock) to the read set. Reads may be
// concurrent with each other — only the relationship to the last mutation is
// checked.
func (s *Store) RecordRead(id uint64, tid int, clock *vectorclock.Clock, site string) error {
	l := s.location(id)
	cur := Access{Thread: tid, Clock: clock.Clone(), Site: site}

	if l.hasMut && !l.lastMut.Clock.HappensBefore(clock) {
		return &Fault{Kind: "write-read", Prior: l.lastMut, Current: cur}
	}

	l.lastReads = append(l.lastReads, cur)
	return nil
}

// RecordWrite checks that the prior mutation and every outstanding read
// happen-before clock, then installs a snapshot of clock as the new last
// mutation and clears the read set.
func (s *Store) RecordWrite(id uint64, tid int, clock *vectorclock.Clock, site string) error {
	l := s.location(id)
	cur := Access{Thread: tid, Clock: clock.Clone(), Site: site}

	if l.hasMut && !l.lastMut.Clock.HappensBefore(clock) {
		return &Fault{Kind: "write-write", Prior: l.lastMut, Current: cur}
	}
	for _, r := range l.lastReads {
		if !r.Clock.HappensBefore(clock) {
			return &Fault{Kind: "read-write", Prior: r, Current: cur}
		}
	}

	l.lastMut = cur
	l.hasMut = true
	l.lastReads = l.lastReads[:0]
	return nil
}

// CheckRead validates that the prior mutation (if any) happens-before clock,
// exactly like RecordRead, but does not add (tid, clock) to the read set.
// The causal cell's deferred check uses this: by the time a Check runs, the
// value it is vouching for was already consumed earlier (at the WithDeferred
// call), so there is nothing further to track against future writes — only
// a retroactive proof that consuming it back then was safe.
func (s *Store) CheckRead(id uint64, tid int, clock *vectorclock.Clock, site string) error {
	l := s.location(id)
	if l.hasMut && !l.lastMut.Clock.HappensBefore(clock) {
		return &Fault{Kind: "write-read", Prior: l.lastMut, Current: Access{Thread: tid, Clock: clock, Site: site}}
	}
	return nil
}

// RecordWriteExclusive is the variant the causal cell's WithMut uses: an
// interior-mutable access with no atomic to synchronize it, so any
// concurrent mutation or read — however "small" the race window — must be
// rejected. The check is identical to RecordWrite; the distinct name mirrors
// spec §4.B's own naming (a stricter-in-intent entry point), kept separate
// so call sites read as "this is D's write", not "this is some atomic's
// internal bookkeeping write".
func (s *Store) RecordWriteExclusive(id uint64, tid int, clock *vectorclock.Clock, site string) error {
	return s.RecordWrite(id, tid, clock, site)
}
