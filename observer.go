package reactor

import "github.com/fenwick-rx/reactor/internal"

// Observer is the four-hook subscription contract. Missing hooks default
// to no-ops; Error may fire more than once, Complete fires exactly once,
// on disposal.
type Observer[T any] struct {
	Next     func(value T)
	Error    func(err error)
	Complete func()
	Dirty    func()
}

func (o Observer[T]) toInternal() internal.Observer {
	return internal.ObserverFuncs{
		NextFn: func(v any) {
			if o.Next != nil {
				o.Next(as[T](v))
			}
		},
		ErrorFn: func(err error) {
			if o.Error != nil {
				o.Error(err)
			}
		},
		CompleteFn: func() {
			if o.Complete != nil {
				o.Complete()
			}
		},
		DirtyFn: func() {
			if o.Dirty != nil {
				o.Dirty()
			}
		},
	}
}

// Subscription is a live link between a Cell and an Observer.
type Subscription struct {
	sub *internal.Subscription
}

// Unsubscribe is idempotent: removes this subscription from its source's
// downstream list and releases its references.
func (s *Subscription) Unsubscribe() { s.sub.Unsubscribe() }

// Enable re-links a previously disabled subscription (O(1)).
func (s *Subscription) Enable() { s.sub.Enable() }

// Disable pop-and-swaps this subscription out of its source's downstream
// list; it stays valid and can be re-enabled, but receives nothing
// meanwhile.
func (s *Subscription) Disable() { s.sub.Disable() }

// Subscribe attaches observer to this signal; returns a live Subscription.
func (s *Signal[T]) Subscribe(observer Observer[T]) *Subscription {
	return &Subscription{sub: s.src.Subscribe(observer.toInternal())}
}

// Subscribe attaches observer to this computed cell. If the cell has never
// been evaluated, one protected attempt runs first.
func (c *Computed[T]) Subscribe(observer Observer[T]) *Subscription {
	rt := internal.GetRuntime()
	return &Subscription{sub: c.derived.Subscribe(rt, observer.toInternal())}
}
