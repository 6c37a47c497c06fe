// Package engine implements components E through H of the spec: the
// cooperative Thread, the single-active-thread Scheduler, the
// backtracking-DFS Explorer, and the per-execution Session that ties a
// causality store and scheduler together for one run of a user closure.
//
// Grounded on dijkstracula-go-ilock's ilock.Mutex (condvar park/unpark,
// wait-loop re-checking a predicate, Broadcast on state change) for the
// handshake that lets exactly one logical thread run at a time, and on the
// timewinder reference's MultiThreadEngine (ModelStatistics, violation
// recording, depth bookkeeping) for the explorer's statistics shape — even
// though, unlike that parallel-BFS engine, this explorer is single-threaded
// DFS per spec §5's non-negotiable one-thread-at-a-time constraint.
package engine
