package internal

// Observer is the four-hook contract any subscriber implements. Missing
// hooks are the caller's responsibility to no-op; ObserverFuncs below does
// that for the common case of partial callback structs built from the
// public package.
type Observer interface {
	Next(value any)
	Error(err error)
	Complete()
	Dirty()
}

// ObserverFuncs adapts four optional callbacks into an Observer, defaulting
// any nil hook to a no-op.
type ObserverFuncs struct {
	NextFn     func(value any)
	ErrorFn    func(err error)
	CompleteFn func()
	DirtyFn    func()
}

func (o ObserverFuncs) Next(v any) {
	if o.NextFn != nil {
		o.NextFn(v)
	}
}

func (o ObserverFuncs) Error(err error) {
	if o.ErrorFn != nil {
		o.ErrorFn(err)
	}
}

func (o ObserverFuncs) Complete() {
	if o.CompleteFn != nil {
		o.CompleteFn()
	}
}

func (o ObserverFuncs) Dirty() {
	if o.DirtyFn != nil {
		o.DirtyFn()
	}
}

// Cell is the capability every observable graph node exposes to a
// Subscription: enough to link, peek, and query lifecycle/dirty state
// without the Subscription needing to know if it's pointed at a Source or
// a Derived Cell.
type Cell interface {
	ID() uint64
	IsDisposed() bool
	// Peek returns the cell's current raw value without registering a
	// dependency and, for a Derived Cell, without validating first.
	Peek() any
	// IsDirty reports the Dirty flag; always false for Source Cells.
	IsDirty() bool

	observable() *Observable
}

// Observable is the outgoing half of the Cell contract: the ability to be
// subscribed to and to broadcast to downstream Subscriptions. Embedded by
// both Source and Derived.
type Observable struct {
	id    uint64
	flags Flags
	value any

	downstream []*Subscription
}

func newObservable(value any) Observable {
	return Observable{id: NextID(), flags: FlagEnabled, value: value}
}

func (o *Observable) ID() uint64        { return o.id }
func (o *Observable) IsDisposed() bool  { return o.flags.has(FlagDisposed) }
func (o *Observable) Peek() any         { return o.value }
func (o *Observable) observable() *Observable { return o }

func (o *Observable) appendDownstream(sub *Subscription) {
	sub.srcIndex = len(o.downstream)
	o.downstream = append(o.downstream, sub)
}

// removeDownstream pop-and-swap removes sub from the downstream array,
// updating whichever subscription got swapped into its slot.
func (o *Observable) removeDownstream(sub *Subscription) {
	i := sub.srcIndex
	n := len(o.downstream)
	if i < 0 || i >= n || o.downstream[i] != sub {
		return
	}

	last := n - 1
	moved := o.downstream[last]
	o.downstream[i] = moved
	if moved != nil {
		moved.srcIndex = i
	}
	o.downstream[last] = nil
	o.downstream = o.downstream[:last]
	sub.srcIndex = -1
}

// broadcast visits each enabled, non-disposed downstream Subscription by
// index over a snapshot of the current length: if `fn` causes a
// subscription to unsubscribe itself, pop-and-swap only ever shrinks the
// tail, so an observer that swapped itself below the cursor simply isn't
// revisited this cycle.
func (o *Observable) broadcast(fn func(Observer)) {
	n := len(o.downstream)
	for i := 0; i < n && i < len(o.downstream); i++ {
		sub := o.downstream[i]
		if sub == nil || !sub.flags.has(FlagEnabled) || sub.flags.has(FlagDisposed) {
			continue
		}
		fn(sub.observer)
	}
}

func (o *Observable) notifyAll()       { o.broadcast(func(ob Observer) { ob.Next(o.value) }) }
func (o *Observable) dirtyAllDownstream() { o.broadcast(func(ob Observer) { ob.Dirty() }) }
func (o *Observable) errorAll(err error) { o.broadcast(func(ob Observer) { ob.Error(err) }) }

// completeAll broadcasts Complete to every downstream Subscription, marks
// each disposed, and clears the array.
func (o *Observable) completeAll() {
	subs := o.downstream
	o.downstream = nil
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		sub.flags.set(FlagDisposed)
		sub.source = nil
		sub.srcIndex = -1
		sub.observer.Complete()
	}
}

func (o *Observable) downstreamCount() int { return len(o.downstream) }
