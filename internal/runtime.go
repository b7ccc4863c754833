package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// Runtime holds all graph-evaluation state private to one goroutine: the
// frame stack, the pending-effect queue, and the batch depth. Keying state
// by goroutine ID rather than storing it globally avoids any cross-thread
// sharing of graph state without a mutex on every read.
type Runtime struct {
	id int64

	frames frameStack
	owners []*Scope

	pending    []scheduled
	batchDepth int

	changed []Cell
}

// CurrentOwner returns the innermost Scope currently executing (an Effect
// body or an explicit Scope.Run), or nil at the top level.
func (rt *Runtime) CurrentOwner() *Scope {
	if len(rt.owners) == 0 {
		return nil
	}
	return rt.owners[len(rt.owners)-1]
}

// PushOwner makes s the current owner for the duration of the returned
// restorer's lifetime; cells and effects created in between register
// themselves as s's children.
func (rt *Runtime) PushOwner(s *Scope) func() {
	rt.owners = append(rt.owners, s)
	return func() {
		rt.owners = rt.owners[:len(rt.owners)-1]
	}
}

var runtimes sync.Map // int64 (goid) -> *Runtime

// GetRuntime returns (creating if necessary) the Runtime bound to the
// calling goroutine.
func GetRuntime() *Runtime {
	id := goid.Get()
	if rt, ok := runtimes.Load(id); ok {
		return rt.(*Runtime)
	}
	rt := &Runtime{id: id}
	runtimes.Store(id, rt)
	return rt
}

// DropRuntime releases the state for the calling goroutine. Hosts that pool
// goroutines (or run short-lived ones per request) should call this when a
// goroutine is done driving reactor graphs, so the registry doesn't grow
// unbounded.
func DropRuntime() {
	runtimes.Delete(goid.Get())
}

// CurrentFrame returns the dependency-collecting frame for the recipe
// currently executing on this goroutine, or nil at the top level.
func (rt *Runtime) CurrentFrame() *Frame { return rt.frames.current() }

// Untrack runs fn with dependency collection suspended, restoring the prior
// frame's cursor position afterward.
func (rt *Runtime) Untrack(fn func() any) any {
	pop := rt.frames.pushUntracked()
	defer pop()
	return fn()
}

// scheduled is any cell the pending queue can drain by re-validating: both
// *Derived and *Effect satisfy it via Derived.validate, promoted onto
// Effect through embedding.
type scheduled interface {
	validate(rt *Runtime)
}

// enqueuePending adds c to the pending queue; callers are expected to have
// already set FlagQueued (a Queued cell always has at least one downstream
// subscriber — Effects are the exception, always eligible).
func (rt *Runtime) enqueuePending(c scheduled) {
	rt.pending = append(rt.pending, c)
}

func (rt *Runtime) recordChange(c Cell) {
	rt.changed = append(rt.changed, c)
}

// enqueueDirty is called once a cell has newly set FlagQueued, from either
// onDirtySignal (Effects only) or onNextSignal (Effects and subscribed
// Derived Cells) in derived.go.
func enqueueDirty(c Cell) {
	if s, ok := c.(scheduled); ok {
		GetRuntime().enqueuePending(s)
	}
}

// enqueueNotify records that a cell's committed value actually changed,
// feeding the OnSettled hooks fired at the end of Flush.
func enqueueNotify(c Cell) {
	GetRuntime().recordChange(c)
}
