package internal

// Frame is one entry in the per-goroutine evaluation stack: the currently
// running Derived Cell or Effect recipe, together with the dependency
// cursor used to reuse unchanged upstream Subscriptions across reruns.
type Frame struct {
	owner  *Derived // nil for a frame with no dependency collection (e.g. Untrack)
	cursor int
}

// observe records a read of source during this frame's recipe execution,
// reusing the Subscription at the current cursor position when it already
// points at source, or otherwise truncating the stale tail and appending
// a fresh Subscription.
func (f *Frame) observe(source Cell) {
	if f == nil || f.owner == nil {
		return
	}
	f.owner.observe(source, f.cursor)
	f.cursor++
}

// frameStack is a per-Runtime stack of active Frames, goroutine-scoped via
// Runtime instead of global mutable state.
type frameStack struct {
	frames []*Frame
}

func (fs *frameStack) current() *Frame {
	if len(fs.frames) == 0 {
		return nil
	}
	return fs.frames[len(fs.frames)-1]
}

// push enters a new frame, returning a function that restores the prior
// frame. Callers must defer the restorer so a panicking recipe still pops
// cleanly.
func (fs *frameStack) push(owner *Derived) func() {
	fr := &Frame{owner: owner}
	fs.frames = append(fs.frames, fr)
	return func() {
		fs.frames = fs.frames[:len(fs.frames)-1]
	}
}

// pushUntracked enters a frame with no owner, so observe() becomes a no-op
// for the duration — the mechanism behind Untrack.
func (fs *frameStack) pushUntracked() func() {
	return fs.push(nil)
}
