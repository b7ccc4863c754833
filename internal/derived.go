package internal

import "github.com/samber/lo"

// Derived is a Derived Cell: a cached value computed from other cells by a
// recipe, recomputed lazily on read and invalidated eagerly on write. It is
// also a Scope node in its own right — anything the recipe creates (a
// nested Computed, an Effect) is owned by this cell and torn down before
// the next recompute, the same bookkeeping Effect does for its body.
type Derived struct {
	Observable

	recipe func() any
	writer func(any)

	upstream []*Subscription
	err      error

	// scope owns whatever the recipe creates while it runs. nil for a
	// Derived embedded inside an Effect, which manages its own scope
	// directly (see Effect.scope, Effect.runBody) instead of going
	// through NewDerived.
	scope *Scope

	// self is the Cell identity to use in subscriptions and scheduling
	// hooks. Effect embeds Derived by value, so without this indirection
	// every hook would see the embedded *Derived rather than the outer
	// *Effect.
	self Cell
}

// NewDerived creates a Derived Cell parented under parent (nil for a root
// cell), registering it as parent's child and giving it its own child
// scope the same way NewEffect does. A nil writer makes the cell readonly.
func NewDerived(parent *Scope, recipe func() any, writer func(any)) *Derived {
	d := &Derived{
		Observable: newObservable(uncomputed{}),
		recipe:     recipe,
		writer:     writer,
		scope:      NewScope(parent),
	}
	d.self = d
	d.flags.set(FlagDirty)
	if parent != nil {
		parent.AddChild(d)
	}
	return d
}

// uncomputed is the never-computed sentinel occupying a fresh Derived
// Cell's value slot until its first evaluation.
type uncomputed struct{}

func (d *Derived) isUncomputed() bool {
	_, ok := d.value.(uncomputed)
	return ok
}

// Shallow reports whether this cell's recomputed value should be exempt
// from reactive-object auto-wrapping.
func (d *Derived) Shallow() bool { return d.flags.has(FlagShallow) }

// SetShallow sets the flag read by Shallow. Called once at construction
// time by the public ComputedOptions.Shallow wiring.
func (d *Derived) SetShallow(v bool) { d.flags.assign(FlagShallow, v) }

// asSelf returns the outermost Cell this Derived is embedded in.
func (d *Derived) asSelf() Cell {
	if d.self != nil {
		return d.self
	}
	return d
}

// isEffect reports whether this Derived is embedded in an Effect, which
// schedules differently: it always enqueues on dirty regardless of
// downstream subscriber count.
func (d *Derived) isEffect() bool {
	_, ok := d.asSelf().(*Effect)
	return ok
}

func (d *Derived) IsDirty() bool { return d.flags.has(FlagDirty) }

// Subscribe attaches observer to this cell's downstream list. If this is
// the very first evaluation, it forces one protected attempt first —
// errors are swallowed here, since the subscriber asked for future values,
// not the current one.
func (d *Derived) Subscribe(rt *Runtime, observer Observer) *Subscription {
	if d.isUncomputed() && !d.flags.has(FlagDisposed) {
		func() {
			defer func() { recover() }()
			d.validate(rt)
		}()
	}
	return NewSubscription(d.asSelf(), observer, -1)
}

// Get validates (recomputing if necessary), registers the calling frame as
// a dependent, and returns the current value.
func (d *Derived) Get(rt *Runtime, fr *Frame) any {
	d.validate(rt)
	if fr != nil {
		fr.observe(d.asSelf())
	}
	if d.err != nil {
		panic(d.err)
	}
	return d.value
}

// Set delegates to the writer, if any. Readonly cells panic with
// ReadonlyError.
func (d *Derived) Set(v any) {
	if d.flags.has(FlagDisposed) {
		return
	}
	if d.writer == nil {
		panic(&ReadonlyError{CellID: d.id})
	}
	d.writer(v)
}

// validate implements the validation protocol: an uncomputed cell always
// recomputes; otherwise every dirty upstream is validated
// first (depth-first), and this cell only recomputes if at least one
// upstream's current value differs from the snapshot captured at its last
// validation. A dirty cell whose upstream values turn out unchanged clears
// Dirty/Queued without ever calling the recipe.
func (d *Derived) validate(rt *Runtime) {
	if d.flags.has(FlagDisposed) || !d.flags.has(FlagDirty) {
		return
	}
	if !d.flags.has(FlagEnabled) {
		// A disabled Effect stays Dirty but doesn't run until re-enabled;
		// it's no longer scheduled either.
		d.flags.clear(FlagQueued)
		return
	}

	outdated := d.isUncomputed()
	for _, sub := range d.upstream {
		if sub == nil || sub.Source() == nil {
			continue
		}
		if up, ok := sub.Source().(*Derived); ok {
			up.validate(rt)
		}
		if !SameValueZero(sub.Source().Peek(), sub.Snapshot()) {
			outdated = true
		}
	}

	if !outdated {
		d.flags.clear(FlagDirty)
		d.flags.clear(FlagQueued)
		return
	}
	d.recompute(rt)
}

// recompute runs the recipe in a fresh frame, reusing upstream Subscriptions
// whose source hasn't changed position, then commits the new value if it
// differs from the cached one. Before running, it resets its own scope —
// disposing whatever the previous run created — the same re-run bookkeeping
// Effect does. A panicking recipe leaves Dirty set (only Queued clears) so
// a later upstream change still drives re-validation.
func (d *Derived) recompute(rt *Runtime) {
	if d.scope != nil {
		d.scope.Reset()
	}
	pop := rt.frames.push(d)
	var result any
	var recipeErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				recipeErr = ToError(r)
			}
		}()
		if d.scope != nil {
			popOwner := rt.PushOwner(d.scope)
			defer popOwner()
		}
		result = d.recipe()
	}()
	cursor := rt.frames.current()
	used := 0
	if cursor != nil {
		used = cursor.cursor
	}
	pop()

	d.truncateUpstream(used)
	d.flags.clear(FlagQueued)

	if recipeErr != nil {
		d.err = recipeErr
		logRecipeFailure(d.id, recipeErr)
		d.errorAll(recipeErr)
		return
	}
	d.err = nil
	d.flags.clear(FlagDirty)

	if !d.isUncomputed() && SameValueZero(d.value, result) {
		return
	}
	d.value = result
	d.notifyAll()
	enqueueNotify(d.asSelf())
}

// observe is called by Frame.observe for each dependency read during this
// cell's recipe execution. It reuses the Subscription already sitting at
// cursor if it already points at source; otherwise the stale tail from
// cursor onward is torn down and a fresh Subscription appended.
func (d *Derived) observe(source Cell, cursor int) {
	if cursor < len(d.upstream) {
		if existing := d.upstream[cursor]; existing != nil && existing.Source() == source {
			existing.SetSnapshot(source.Peek())
			return
		}
		d.truncateUpstream(cursor)
	}

	idx := cursor
	observer := d.upstreamObserver(idx)
	sub := NewSubscription(source, observer, idx)
	sub.SetSnapshot(source.Peek())
	d.upstream = append(d.upstream, sub)
}

// EnumerateObserved returns the cells this Derived currently depends on, in
// subscription order.
func (d *Derived) EnumerateObserved() []Cell {
	return lo.FilterMap(d.upstream, func(sub *Subscription, _ int) (Cell, bool) {
		if sub == nil || sub.Source() == nil {
			return nil, false
		}
		return sub.Source(), true
	})
}

// Scope returns the cell's own lifetime node — whatever the recipe creates
// belongs here, and it's reset before each recompute. nil for a Derived
// embedded inside an Effect (use Effect.Scope instead).
func (d *Derived) Scope() *Scope { return d.scope }

// EnumerateChildScopes returns the nested scopes created during the
// recipe's last run.
func (d *Derived) EnumerateChildScopes() []*Scope {
	if d.scope == nil {
		return nil
	}
	return d.scope.EnumerateChildScopes()
}

// upstreamObserver builds the per-slot Observer used to subscribe to the
// idx'th upstream dependency. A direct upstream can signal this cell two
// ways: dirty() when the upstream itself merely became dirty (no new value
// yet), or next(value) when the upstream actually committed — only next()
// may enqueue a recomputation, except for an Effect, which also enqueues on
// dirty() (see onDirtySignal).
func (d *Derived) upstreamObserver(idx int) Observer {
	return ObserverFuncs{
		DirtyFn: func() { d.onDirtySignal() },
		NextFn:  func(any) { d.onNextSignal() },
		CompleteFn: func() {
			if idx < len(d.upstream) && d.upstream[idx] != nil {
				d.upstream[idx].source = nil
			}
		},
	}
}

// onDirtySignal handles a dirty() push from a direct upstream that has not
// yet recomputed: mark dirty (idempotent) and propagate dirty-only to our
// own downstream. Never enqueues — only a committed value (next()) does
// that, except for Effects.
func (d *Derived) onDirtySignal() {
	newlyDirty := d.markDirtyOnly()
	if newlyDirty && d.isEffect() {
		d.flags.set(FlagQueued)
		enqueueDirty(d.asSelf())
	}
}

// onNextSignal handles a direct upstream actually committing a new value:
// mark dirty if not already, then enqueue for recomputation if this cell
// has its own downstream subscriber (or is an Effect, which is always its
// own terminal subscriber) and isn't already queued.
func (d *Derived) onNextSignal() {
	d.markDirtyOnly()
	if d.flags.has(FlagQueued) || d.flags.has(FlagDisposed) {
		return
	}
	if d.isEffect() || d.downstreamCount() > 0 {
		d.flags.set(FlagQueued)
		enqueueDirty(d.asSelf())
	}
}

// markDirtyOnly sets Dirty and propagates dirty-all to this cell's own
// downstream exactly once; reports whether it was a new transition.
func (d *Derived) markDirtyOnly() bool {
	if d.flags.has(FlagDirty) || d.flags.has(FlagDisposed) {
		return false
	}
	d.flags.set(FlagDirty)
	d.dirtyAllDownstream()
	return true
}

// truncateUpstream unsubscribes every upstream Subscription from index on,
// used both when the recipe's dependency shape shrinks and before a full
// Dispose.
func (d *Derived) truncateUpstream(from int) {
	for i := from; i < len(d.upstream); i++ {
		if d.upstream[i] != nil {
			d.upstream[i].Unsubscribe()
		}
	}
	d.upstream = d.upstream[:from]
}

// Dispose tears down every upstream Subscription, disposes its own scope
// (and everything the recipe created), completes all downstream observers,
// and marks the cell terminal.
func (d *Derived) Dispose() {
	if d.flags.has(FlagDisposed) {
		return
	}
	d.flags.set(FlagDisposed)
	d.truncateUpstream(0)
	if d.scope != nil {
		d.scope.Dispose()
	}
	d.completeAll()
}
