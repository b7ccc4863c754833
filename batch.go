package reactor

import "github.com/fenwick-rx/reactor/internal"

// Batch runs fn with effect scheduling deferred: Signal writes inside fn
// still commit and dirty their dependents immediately, but queued Effects
// only run once, when the outermost Batch returns.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// Flush drains every Effect queued on the calling goroutine since the last
// Flush or Batch. Signal.Set never auto-flushes, so Flush (directly, or
// implicitly via Batch) is the only thing that actually runs Effects.
func Flush() {
	internal.GetRuntime().Flush()
}

// OnSettled registers a hook that runs after every Flush completes,
// receiving every Source or Computed whose committed value actually
// changed during that flush.
func OnSettled(fn func(changed []Cell[any])) {
	internal.OnSettled(func(cells []internal.Cell) {
		wrapped := make([]Cell[any], 0, len(cells))
		for _, c := range cells {
			wrapped = append(wrapped, anyCell{c})
		}
		fn(wrapped)
	})
}

// anyCell adapts an internal.Cell into the public Cell[any] contract for
// OnSettled callbacks, which don't know the original type parameter.
type anyCell struct{ c internal.Cell }

func (a anyCell) Get() any     { return a.c.Peek() }
func (a anyCell) Peek() any    { return a.c.Peek() }
func (a anyCell) Dispose()     {}
