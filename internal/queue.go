package internal

// Flush drains the pending queue for the calling goroutine's Runtime: every
// queued Derived Cell or Effect re-validates in FIFO order (and may itself
// enqueue further cells via reads/writes during that validation, which join
// the same drain). Go has no JS-style microtask queue, and Set never
// auto-flushes, so Flush is the one synchronous point where a batch of
// Source writes becomes settled.
func (rt *Runtime) Flush() {
	for len(rt.pending) > 0 {
		next := rt.pending[0]
		rt.pending[0] = nil
		rt.pending = rt.pending[1:]
		next.validate(rt)
	}

	settled := rt.changed
	rt.changed = nil
	rt.fireSettled(settled)
}

// Batch runs fn with effect scheduling deferred: Sets inside fn still push
// dirty flags and commit values immediately, but the queued effects only
// drain once, when the outermost Batch returns.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.Flush()
		}
	}()
	fn()
}

var settledHooks []func([]Cell)

// OnSettled registers a hook that runs after every Flush completes,
// whether or not anything actually changed.
func OnSettled(fn func(changed []Cell)) {
	settledHooks = append(settledHooks, fn)
}

func (rt *Runtime) fireSettled(changed []Cell) {
	for _, h := range settledHooks {
		h(changed)
	}
}
