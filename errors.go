package reactor

import "github.com/fenwick-rx/reactor/internal"

// RecipeError wraps a non-error panic value raised from inside a Computed
// or Effect recipe.
type RecipeError = internal.RecipeError

// ReadonlyError is panicked by Computed.Set when no writer was supplied.
type ReadonlyError = internal.ReadonlyError

// LifecycleError reports misuse of a lifetime operation, such as creating a
// scope under an already-disposed parent.
type LifecycleError = internal.LifecycleError

// NotReactiveError is raised by RefForProperty against a value that was
// never wrapped with Reactive.
type NotReactiveError = internal.NotReactiveError
