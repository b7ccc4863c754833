package internal

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// SameValueZero implements the identity test reactor uses to decide
// whether a write actually changes a cell's value: ordinary equality,
// except NaN equals NaN and +0 equals -0 (which ordinary float equality
// already gives us for the zero case; NaN is the one place "==" disagrees
// with same-value-zero).
func SameValueZero(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		return floatSameValueZero(av, bv)
	case float32:
		bv, ok := b.(float32)
		if !ok {
			return false
		}
		return floatSameValueZero(av, bv)
	}

	if isComparable(a) && isComparable(b) {
		if ok, done := tryEqual(a, b); done {
			return ok
		}
	}

	return reflect.DeepEqual(a, b)
}

func floatSameValueZero[T constraints.Float](a, b T) bool {
	if isNaN(a) && isNaN(b) {
		return true
	}
	return a == b
}

func isNaN[T constraints.Float](v T) bool {
	return math.IsNaN(float64(v))
}

func isComparable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Comparable()
}

func tryEqual(a, b any) (equal bool, done bool) {
	defer func() {
		if recover() != nil {
			done = false
		}
	}()
	return a == b, true
}
