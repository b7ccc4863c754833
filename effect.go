package reactor

import "github.com/fenwick-rx/reactor/internal"

// Effect is a Derived Cell that runs purely for its side effects: it
// re-runs whenever a dependency changes, regardless of whether anything
// reads its value. Unlike Computed, its body runs eagerly — once
// immediately, then again on every Flush while dirty.
type Effect struct {
	effect *internal.Effect
}

// EffectOptions configures an Effect at construction.
type EffectOptions struct {
	// CancelToken disposes the effect when it fires; if already fired, the
	// effect is born disposed.
	CancelToken *CancelToken
	// ParentScope makes the effect a child of an explicit scope instead of
	// the currently active one.
	ParentScope *Scope
}

// NewEffect runs fn once immediately and re-runs it whenever a dependency
// it read changes and Flush is called. Created inside a Scope.Run or
// another Effect, it is disposed along with that owner.
func NewEffect(fn func()) *Effect {
	return newEffect(func() func() {
		fn()
		return nil
	}, EffectOptions{})
}

// NewEffectWithCleanup is NewEffect for bodies that need to undo work
// before the next re-run or on final disposal: the returned function runs
// first, before either.
func NewEffectWithCleanup(fn func() func()) *Effect {
	return newEffect(fn, EffectOptions{})
}

// NewEffectWithOptions is NewEffect with explicit lifetime options.
func NewEffectWithOptions(fn func(), opts EffectOptions) *Effect {
	return newEffect(func() func() {
		fn()
		return nil
	}, opts)
}

// NewEffectWithCleanupAndOptions is NewEffectWithCleanup with explicit
// lifetime options.
func NewEffectWithCleanupAndOptions(fn func() func(), opts EffectOptions) *Effect {
	return newEffect(fn, opts)
}

func newEffect(body func() func(), opts EffectOptions) *Effect {
	rt := internal.GetRuntime()
	parent := resolveParentScope(opts.ParentScope)
	e := internal.NewEffect(rt, parent, body)
	if opts.CancelToken != nil {
		opts.CancelToken.OnAbort(func() { e.Dispose() })
	}
	return &Effect{effect: e}
}

// Dispose runs the effect's last cleanup and detaches it from its graph.
func (e *Effect) Dispose() { e.effect.Dispose() }

// IsDisposed reports whether Dispose has already run.
func (e *Effect) IsDisposed() bool { return e.effect.IsDisposed() }

// Run forces re-evaluation if the effect is dirty, independent of Flush.
func (e *Effect) Run() { e.effect.Run(internal.GetRuntime()) }

// Enable re-arms a disabled effect; the next dependency change re-runs it.
func (e *Effect) Enable() { e.effect.Enable() }

// Disable suspends re-runs: a disabled effect still tracks Dirty but won't
// execute its body until re-enabled.
func (e *Effect) Disable() { e.effect.Disable() }

// Enabled reports whether this effect currently runs on dependency change.
func (e *Effect) Enabled() bool { return e.effect.Enabled() }

// ID returns a stable identifier for debugging and graph visualization.
func (e *Effect) ID() uint64 { return e.effect.ID() }

// EnumerateObserved returns the cells this effect's last run depends on, in
// unspecified order.
func (e *Effect) EnumerateObserved() []internal.Cell {
	return e.effect.EnumerateObserved()
}

// EnumerateChildScopes returns the nested scopes created during this
// effect's last run.
func (e *Effect) EnumerateChildScopes() []*Scope {
	children := e.effect.EnumerateChildScopes()
	out := make([]*Scope, len(children))
	for i, c := range children {
		out[i] = &Scope{scope: c}
	}
	return out
}
