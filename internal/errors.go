package internal

import "fmt"

// RecipeError wraps a non-error panic value from a Derived Cell / Effect
// recipe.
type RecipeError struct {
	Cause any
}

func (e *RecipeError) Error() string {
	return fmt.Sprintf("reactor: recipe panicked: %v", e.Cause)
}

func (e *RecipeError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// ToError coerces an arbitrary recover() value into an error, wrapping
// non-error causes in a RecipeError.
func ToError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return &RecipeError{Cause: recovered}
}

// ReadonlyError is returned/panicked when Set is called on a Derived Cell
// that was constructed without a writer.
type ReadonlyError struct {
	CellID uint64
}

func (e *ReadonlyError) Error() string {
	return fmt.Sprintf("reactor: cell %d has no writer", e.CellID)
}

// LifecycleError reports misuse of lifetime operations, such as attaching
// a Scope to an already-disposed parent.
type LifecycleError struct {
	Op      string
	Message string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("reactor: %s: %s", e.Op, e.Message)
}

// NotReactiveError is raised by RefForProperty when called against a
// backing value that was never wrapped by Reactive.
type NotReactiveError struct {
	Value any
}

func (e *NotReactiveError) Error() string {
	return fmt.Sprintf("reactor: %#v is not a reactive object", e.Value)
}
