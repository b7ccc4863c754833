package reactor

import (
	"reflect"

	"github.com/fenwick-rx/reactor/internal"
)

// Cell is any reactive value: the read half common to Signal and Computed,
// used where a function accepts either interchangeably.
type Cell[T any] interface {
	Get() T
	Peek() T
	Dispose()
}

// Signal is a Source Cell: a plain read/write reactive value.
type Signal[T any] struct {
	src     *internal.Source
	shallow bool
}

// SignalOptions configures a Signal at construction.
type SignalOptions struct {
	// Shallow suppresses auto-wrapping an incoming struct/map value in a
	// Reactive façade.
	Shallow bool
	// CancelToken disposes the signal when it fires; if already fired, the
	// signal is born disposed.
	CancelToken *CancelToken
	// ParentScope makes the signal a child of an explicit scope instead of
	// the currently active one.
	ParentScope *Scope
}

// NewSignal creates a Source Cell holding initial. If created while a
// Scope or Effect is current, it is disposed along with that owner.
func NewSignal[T any](initial T) *Signal[T] {
	return NewSignalWithOptions(initial, SignalOptions{})
}

// NewSignalWithOptions is NewSignal with explicit lifetime/wrapping options.
func NewSignalWithOptions[T any](initial T, opts SignalOptions) *Signal[T] {
	src := internal.NewSource(initial)
	bindOwnerAndToken(src, opts.ParentScope, opts.CancelToken)
	s := &Signal[T]{src: src, shallow: opts.Shallow}
	s.autoWrap(initial)
	return s
}

// autoWrap registers v's reactive-object façade when it's a pointer to a
// struct or map and this signal wasn't constructed Shallow. The façade is
// keyed by pointer identity in the Reactive registry; the signal still
// stores v itself.
func (s *Signal[T]) autoWrap(v any) {
	if s.shallow {
		return
	}
	autoWrapValue(v)
}

// autoWrapValue registers v in the Reactive façade registry as a side
// effect if it's a non-nil pointer to a struct or map. Shared by
// Signal.Set/autoWrap and shallow-aware Computed recipes, since neither
// can literally replace its stored value with a façade without breaking
// their static type parameter.
func autoWrapValue(v any) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	switch rv.Elem().Kind() {
	case reflect.Struct, reflect.Map:
		New(v)
	}
}

func bindOwnerAndToken(d internal.Disposable, parent *Scope, token *CancelToken) {
	if parent != nil {
		parent.scope.AddChild(d)
	} else {
		attachToOwner(d)
	}
	if token != nil {
		token.OnAbort(func() { d.Dispose() })
	}
}

// resolveParentScope picks the internal *Scope a new Computed or Effect
// attaches to as both a child and its own scope's parent: an explicit
// override, the caller's current owner, or — if neither exists — a fresh
// root scope, so the cell always has somewhere to own its own nested
// children.
func resolveParentScope(explicit *Scope) *internal.Scope {
	if explicit != nil {
		return explicit.scope
	}
	if owner := internal.GetRuntime().CurrentOwner(); owner != nil {
		return owner
	}
	return internal.NewScope(nil)
}

// Get reads the current value, registering a dependency if called from
// within a Computed or Effect recipe.
func (s *Signal[T]) Get() T {
	rt := internal.GetRuntime()
	return as[T](s.src.Get(rt.CurrentFrame()))
}

// Peek reads the current value without registering a dependency.
func (s *Signal[T]) Peek() T { return as[T](s.src.Peek()) }

// Set assigns a new value. Equal values (same-value-zero) are a no-op.
func (s *Signal[T]) Set(v T) {
	s.src.Set(v)
	s.autoWrap(v)
}

// Update reads the current value, applies fn, and writes the result back.
func (s *Signal[T]) Update(fn func(T) T) { s.Set(fn(s.Peek())) }

// Forward makes this signal track another cell's value until either side
// is disposed or Set is called directly on this signal again.
func (s *Signal[T]) Forward(other Cell[T]) {
	if fwd, ok := other.(interface{ sourceCell() internal.Cell }); ok {
		s.src.Forward(internal.GetRuntime(), fwd.sourceCell())
	}
}

// Dispose completes every subscription and marks the signal terminal.
func (s *Signal[T]) Dispose() { s.src.Dispose() }

func (s *Signal[T]) sourceCell() internal.Cell { return s.src }

// ID returns a stable identifier for debugging and graph visualization.
func (s *Signal[T]) ID() uint64 { return s.src.ID() }
