package internal

// Effect is a Derived Cell that nobody reads: it recomputes whenever it is
// dirty regardless of downstream subscriber count, purely for its side
// effects. Its body runs inside a dedicated child scope that is reset —
// children disposed, cleanups run — before every re-run.
type Effect struct {
	Derived

	scope *Scope
	body  func() func()
}

// NewEffect creates an Effect owned by parent, runs it once immediately,
// and returns it already subscribed to whatever it read on that first run.
// body may return a cleanup function, run before the next re-run or on
// final disposal.
func NewEffect(rt *Runtime, parent *Scope, body func() func()) *Effect {
	e := &Effect{
		Derived: Derived{Observable: newObservable(uncomputed{})},
		scope:   NewScope(parent),
		body:    body,
	}
	e.Derived.self = e
	e.Derived.flags.set(FlagDirty)
	e.Derived.recipe = e.runBody

	if parent != nil {
		parent.AddChild(e)
	}

	e.validate(rt)
	return e
}

// runBody is installed as the underlying Derived's recipe: reset the
// effect's scope, make it current so nested cell/effect creation attaches
// to it, run the user body, and stash any returned cleanup.
func (e *Effect) runBody() any {
	e.scope.Reset()
	pop := GetRuntime().PushOwner(e.scope)
	defer pop()

	if cleanup := e.body(); cleanup != nil {
		e.scope.OnCleanup(cleanup)
	}
	return nil
}

// Run forces this effect to validate/recompute if dirty. Flush drains the
// pending queue independently of this; Run is for a caller that wants to
// force re-evaluation outside a flush.
func (e *Effect) Run(rt *Runtime) {
	e.validate(rt)
}

// Enable re-sets the Enabled flag; the next dependency change re-runs the
// effect normally.
func (e *Effect) Enable() { e.flags.set(FlagEnabled) }

// Disable clears the Enabled flag. A disabled effect that receives a
// dirty/next signal still sets Dirty but does not run until re-enabled.
func (e *Effect) Disable() { e.flags.clear(FlagEnabled) }

func (e *Effect) Enabled() bool { return e.flags.has(FlagEnabled) }

// Scope returns the effect's own lifetime node — every cell or effect
// created during its body belongs here, and it is reset before each re-run.
func (e *Effect) Scope() *Scope { return e.scope }

// EnumerateChildScopes returns the nested scopes created during the
// effect's last run.
func (e *Effect) EnumerateChildScopes() []*Scope {
	return e.scope.EnumerateChildScopes()
}

// Dispose tears down the effect's scope (running its last cleanup) in
// addition to the usual Derived disposal.
func (e *Effect) Dispose() {
	if e.flags.has(FlagDisposed) {
		return
	}
	e.scope.Dispose()
	e.Derived.Dispose()
}
