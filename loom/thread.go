package loom

import "github.com/kolkov/loomgo/internal/loom/engine"

// JoinHandle is returned by [Spawn]; [JoinHandle.Join] blocks the calling
// logical thread until the spawned one has finished.
type JoinHandle struct {
	h *engine.JoinHandle
}

// Spawn starts fn as a new logical thread and returns a handle to join it.
// Must be called from inside a closure passed to [Model] (or from a thread
// that one transitively spawned) — calling it outside of a model-checked
// execution panics.
func Spawn(fn func()) *JoinHandle {
	return &JoinHandle{h: engine.Spawn(fn)}
}

// Join blocks the calling thread until h's thread has finished, then joins
// its terminal vector clock into the caller's — the happens-before edge
// every join establishes (spec §4.E).
func (h *JoinHandle) Join() {
	h.h.Join()
}
