package reactor

import "github.com/fenwick-rx/reactor/internal"

// Context is a value provided down the Scope tree: a descendant scope
// reads whatever ancestor last provided it, falling back to a default if
// none did.
type Context[T any] struct {
	key *internal.ContextKey
}

// NewContext creates a context key with the given fallback value.
func NewContext[T any](defaultValue T) *Context[T] {
	return &Context[T]{key: internal.NewContextKey(defaultValue)}
}

// Provide binds value to this context within scope and its descendants.
func (c *Context[T]) Provide(scope *Scope, value T) {
	scope.scope.Provide(c.key, value)
}

// Value reads the context from the current scope, walking up to the root
// and returning the default if no ancestor provided one.
func (c *Context[T]) Value() T {
	owner := internal.GetRuntime().CurrentOwner()
	if owner == nil {
		return as[T](c.key.Default())
	}
	return as[T](owner.Read(c.key))
}
