package internal

// Source is a Source Cell: the leaf of the graph, holding a value that only
// ever changes by an explicit Set.
//
// A Source can also be in forwarding mode, where its value tracks another
// Cell via an inbound Subscription; any direct Set severs the forward and
// makes the Source authoritative again.
type Source struct {
	Observable

	forward *Subscription // non-nil while forwarding another cell
}

// NewSource creates a detached Source Cell holding the given initial value.
func NewSource(initial any) *Source {
	return &Source{Observable: newObservable(initial)}
}

func (s *Source) IsDirty() bool { return false }

// Get registers the current frame as a dependent (if any) and returns the
// value, exactly like Peek plus dependency tracking.
func (s *Source) Get(fr *Frame) any {
	if fr != nil {
		fr.observe(s)
	}
	return s.value
}

// Set assigns a new value. Equal values (same-value-zero) are a no-op: no
// downstream is dirtied or notified. Setting severs forwarding mode.
func (s *Source) Set(v any) {
	if s.flags.has(FlagDisposed) {
		return
	}
	s.severForward()
	s.setValue(v)
}

// setValue is the shared value-commit path used by both a direct Set and
// forwarded propagation. Committing broadcasts next(value) — not a bare
// dirty() — to direct downstream subscriptions, since only next() carries
// enough information for a subscriber to decide whether to enqueue itself
// for recomputation.
func (s *Source) setValue(v any) {
	if SameValueZero(s.value, v) {
		return
	}
	s.value = v
	s.notifyAll()
	enqueueNotify(s)
}

// Subscribe attaches observer to this Source's downstream list.
func (s *Source) Subscribe(observer Observer) *Subscription {
	return NewSubscription(s, observer, -1)
}

// Forward links this Source to follow another Cell's value until either
// side is disposed or Set/Forward is called again.
func (s *Source) Forward(rt *Runtime, source Cell) {
	s.severForward()
	if source.IsDisposed() || s.flags.has(FlagDisposed) {
		return
	}

	observer := ObserverFuncs{
		NextFn: func(v any) { s.setValue(v) },
		DirtyFn: func() {
			if peeker, ok := source.(interface{ validate(*Runtime) }); ok {
				peeker.validate(rt)
			}
			s.setValue(source.Peek())
		},
		CompleteFn: func() { s.severForward() },
	}
	sub := NewSubscription(source, observer, -1)
	s.forward = sub
	s.setValue(source.Peek())
}

func (s *Source) severForward() {
	if s.forward != nil {
		s.forward.Unsubscribe()
		s.forward = nil
	}
}

// Dispose completes all downstream subscriptions and severs any forward,
// marking the Source terminal.
func (s *Source) Dispose() {
	if s.flags.has(FlagDisposed) {
		return
	}
	s.flags.set(FlagDisposed)
	s.severForward()
	s.completeAll()
}
