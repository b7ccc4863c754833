package internal

// Subscription is the only first-class edge in the graph: a link from a
// source Cell to an observer, carrying a snapshot of the source's value
// at the time the link was last validated.
type Subscription struct {
	flags Flags

	source   Cell // nil once unsubscribed or completed
	observer Observer

	srcIndex int // index in source's downstream array, -1 if not present
	subIndex int // index in consumer's upstream list, -1 if none

	snapshot any
}

// closedSubscription is returned by NewSubscription when the source is
// already disposed: the observer is completed immediately and the
// subscription is born closed.
func closedSubscription(observer Observer) *Subscription {
	sub := &Subscription{flags: FlagDisposed, srcIndex: -1, subIndex: -1}
	observer.Complete()
	return sub
}

// NewSubscription links observer to source, appending to the source's
// downstream array.
func NewSubscription(source Cell, observer Observer, upstreamIndex int) *Subscription {
	if source.IsDisposed() {
		return closedSubscription(observer)
	}

	sub := &Subscription{
		flags:    FlagEnabled,
		source:   source,
		observer: observer,
		srcIndex: -1,
		subIndex: upstreamIndex,
	}
	source.observable().appendDownstream(sub)
	return sub
}

// Source returns the Cell this subscription observes, or nil if the
// subscription has been unsubscribed or completed.
func (s *Subscription) Source() Cell { return s.source }

// Snapshot returns the captured upstream value at last validation time.
func (s *Subscription) Snapshot() any { return s.snapshot }

// SetSnapshot updates the captured upstream value (called after (re)linking
// and after each successful validation).
func (s *Subscription) SetSnapshot(v any) { s.snapshot = v }

// SubIndex is this subscription's position in the consumer's upstream list.
func (s *Subscription) SubIndex() int  { return s.subIndex }
func (s *Subscription) SetSubIndex(i int) { s.subIndex = i }

func (s *Subscription) IsDisposed() bool { return s.flags.has(FlagDisposed) }
func (s *Subscription) IsEnabled() bool  { return s.flags.has(FlagEnabled) }

// Unsubscribe is idempotent: pop-and-swap removes from the source's
// downstream array, then clears all pointers.
func (s *Subscription) Unsubscribe() {
	if s.flags.has(FlagDisposed) {
		return
	}
	s.flags.set(FlagDisposed)

	if s.source != nil {
		s.source.observable().removeDownstream(s)
	}
	s.source = nil
	s.observer = nil
}

// Enable re-links a previously-disabled subscription back into the
// source's downstream array (O(1)).
func (s *Subscription) Enable() {
	if s.flags.has(FlagDisposed) || s.flags.has(FlagEnabled) || s.source == nil {
		return
	}
	s.flags.set(FlagEnabled)
	s.source.observable().appendDownstream(s)
}

// Disable pop-and-swaps this subscription out of the source's downstream
// array. It remains valid (retains its observer) but receives no
// notifications until re-enabled.
func (s *Subscription) Disable() {
	if s.flags.has(FlagDisposed) || !s.flags.has(FlagEnabled) || s.source == nil {
		return
	}
	s.flags.clear(FlagEnabled)
	s.source.observable().removeDownstream(s)
}
