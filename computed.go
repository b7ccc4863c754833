package reactor

import "github.com/fenwick-rx/reactor/internal"

// Computed is a Derived Cell: a cached value recomputed from other cells
// lazily on read, whenever something it depends on has changed.
type Computed[T any] struct {
	derived *internal.Derived
}

// ComputedOptions configures a Computed at construction.
type ComputedOptions struct {
	// CancelToken disposes the cell when it fires; if already fired, the
	// cell is born disposed.
	CancelToken *CancelToken
	// ParentScope makes the cell a child of an explicit scope instead of
	// the currently active one.
	ParentScope *Scope
	// Shallow suppresses auto-wrapping a struct/map-pointer result in the
	// reactive object façade.
	Shallow bool
}

// NewComputed creates a readonly Computed cell from a compute recipe.
// recipe runs inside a tracking frame: every Signal/Computed Get call
// inside it becomes a dependency.
func NewComputed[T any](recipe func() T) *Computed[T] {
	return NewComputedWithOptions(recipe, ComputedOptions{})
}

// NewComputedWithOptions is NewComputed with explicit lifetime options.
func NewComputedWithOptions[T any](recipe func() T, opts ComputedOptions) *Computed[T] {
	parent := resolveParentScope(opts.ParentScope)
	d := internal.NewDerived(parent, wrapRecipe(recipe, opts.Shallow), nil)
	d.SetShallow(opts.Shallow)
	if opts.CancelToken != nil {
		opts.CancelToken.OnAbort(func() { d.Dispose() })
	}
	return &Computed[T]{derived: d}
}

// wrapRecipe adapts a typed recipe to the internal untyped signature,
// auto-wrapping its result in the reactive object façade unless shallow.
func wrapRecipe[T any](recipe func() T, shallow bool) func() any {
	return func() any {
		v := recipe()
		if !shallow {
			autoWrapValue(v)
		}
		return v
	}
}

// NewWritableComputed creates a Computed with a writer: Set delegates to
// writer instead of panicking with a readonly error.
func NewWritableComputed[T any](recipe func() T, writer func(T)) *Computed[T] {
	return NewWritableComputedWithOptions(recipe, writer, ComputedOptions{})
}

// NewWritableComputedWithOptions is NewWritableComputed with explicit
// lifetime options.
func NewWritableComputedWithOptions[T any](recipe func() T, writer func(T), opts ComputedOptions) *Computed[T] {
	parent := resolveParentScope(opts.ParentScope)
	d := internal.NewDerived(
		parent,
		wrapRecipe(recipe, opts.Shallow),
		func(v any) { writer(as[T](v)) },
	)
	d.SetShallow(opts.Shallow)
	if opts.CancelToken != nil {
		opts.CancelToken.OnAbort(func() { d.Dispose() })
	}
	return &Computed[T]{derived: d}
}

// Get validates (recomputing if dirty) and returns the current value,
// registering a dependency if called from within another recipe.
func (c *Computed[T]) Get() T {
	rt := internal.GetRuntime()
	return as[T](c.derived.Get(rt, rt.CurrentFrame()))
}

// Peek returns the last computed value without validating or tracking.
func (c *Computed[T]) Peek() T { return as[T](c.derived.Peek()) }

// Set delegates to the writer supplied at construction. Panics with a
// readonly error if none was given.
func (c *Computed[T]) Set(v T) { c.derived.Set(v) }

// Dispose tears down every upstream subscription and completes all
// downstream observers.
func (c *Computed[T]) Dispose() { c.derived.Dispose() }

func (c *Computed[T]) sourceCell() internal.Cell { return c.derived }

// EnumerateObserved returns the cells this Computed currently depends on,
// in unspecified order.
func (c *Computed[T]) EnumerateObserved() []internal.Cell {
	return c.derived.EnumerateObserved()
}

// EnumerateChildScopes returns the nested scopes created during this
// Computed's last recompute — a Computed owns whatever its recipe creates
// just like an Effect owns whatever its body creates.
func (c *Computed[T]) EnumerateChildScopes() []*Scope {
	children := c.derived.EnumerateChildScopes()
	out := make([]*Scope, len(children))
	for i, ch := range children {
		out[i] = &Scope{scope: ch}
	}
	return out
}

// ID returns a stable identifier for debugging and graph visualization.
func (c *Computed[T]) ID() uint64 { return c.derived.ID() }

func attachToOwner(d internal.Disposable) {
	if owner := internal.GetRuntime().CurrentOwner(); owner != nil {
		owner.AddChild(d)
	}
}
