package reactor

import "github.com/fenwick-rx/reactor/internal"

// Scope is a node in the lifetime tree. Disposing a Scope disposes every
// cell, effect, and nested scope created while it was current, then runs
// its own cleanups.
type Scope struct {
	scope *internal.Scope
}

// ScopeOptions configures a Scope at construction.
type ScopeOptions struct {
	// CancelToken disposes the scope when it fires; if already fired, the
	// scope is born disposed.
	CancelToken *CancelToken
}

// NewScope creates a root scope, or a child of parent if given.
func NewScope(parent *Scope) *Scope {
	var p *internal.Scope
	if parent != nil {
		p = parent.scope
	}
	return &Scope{scope: internal.NewScope(p)}
}

// NewScopeWithOptions is NewScope with an explicit cancellation token.
func NewScopeWithOptions(parent *Scope, opts ScopeOptions) *Scope {
	s := NewScope(parent)
	if opts.CancelToken != nil {
		opts.CancelToken.OnAbort(func() { s.Dispose() })
	}
	return s
}

// Run executes fn with this scope current: cells and effects created
// inside fn become this scope's children.
func (s *Scope) Run(fn func()) {
	rt := internal.GetRuntime()
	pop := rt.PushOwner(s.scope)
	defer pop()
	fn()
}

// OnCleanup registers fn to run when this scope is disposed, LIFO with
// other cleanups registered in the same scope.
func (s *Scope) OnCleanup(fn func()) { s.scope.OnCleanup(fn) }

// Dispose tears down every child (front-to-back), runs this scope's own
// cleanups, then detaches from its parent.
func (s *Scope) Dispose() { s.scope.Dispose() }

// IsDisposed reports whether Dispose has already run.
func (s *Scope) IsDisposed() bool { return s.scope.IsDisposed() }

// Observe adds a cell to this scope's set of watched sources for later
// enumeration, without subscribing to it — introspection only, no
// recomputation is ever triggered by it.
func (s *Scope) Observe(c cellLike) { s.scope.Observe(c.sourceCell()) }

// EnumerateChildScopes returns the nested scopes created directly under
// this one, in unspecified order.
func (s *Scope) EnumerateChildScopes() []*Scope {
	children := s.scope.EnumerateChildScopes()
	out := make([]*Scope, len(children))
	for i, c := range children {
		out[i] = &Scope{scope: c}
	}
	return out
}

// CurrentScope returns the innermost Scope presently running (inside an
// Effect body or a Scope.Run call), or nil at the top level.
func CurrentScope() *Scope {
	owner := internal.GetRuntime().CurrentOwner()
	if owner == nil {
		return nil
	}
	return &Scope{scope: owner}
}

// OnCleanup registers fn against the current scope. Outside any scope, fn
// is simply never called rather than panicking.
func OnCleanup(fn func()) {
	if s := CurrentScope(); s != nil {
		s.OnCleanup(fn)
	}
}

// Untrack runs fn with dependency collection suspended: reads inside fn
// are not recorded as dependencies of the enclosing recipe.
func Untrack[T any](fn func() T) T {
	rt := internal.GetRuntime()
	var result T
	rt.Untrack(func() any {
		result = fn()
		return nil
	})
	return result
}
