package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives value from signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		double := NewComputed(func() int {
			log = append(log, "doubling")
			return count.Get() * 2
		})
		plusTwo := NewComputed(func() int {
			log = append(log, "adding")
			return double.Get() + 2
		})

		assert.Equal(t, 1, count.Peek())
		assert.Equal(t, 2, double.Get())
		assert.Equal(t, 4, plusTwo.Get())

		count.Set(10)
		assert.Equal(t, 10, count.Peek())
		assert.Equal(t, 20, double.Get())
		assert.Equal(t, 22, plusTwo.Get())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("does not propagate when value unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		a := NewComputed(func() int {
			log = append(log, "running a")
			return count.Get() * 0
		})
		b := NewComputed(func() int {
			log = append(log, "running b")
			return a.Get() + 1
		})

		a.Get()
		b.Get()

		count.Set(10)
		a.Get()
		b.Get()

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("diamond dependency recomputes shared cell once", func(t *testing.T) {
		log := []string{}

		a := NewSignal(1)
		b := NewComputed(func() int { return a.Get() + 1 })
		c := NewComputed(func() int { return a.Get() * 2 })
		d := NewComputed(func() int {
			log = append(log, "d")
			return b.Get() + c.Get()
		})

		assert.Equal(t, 4, d.Get())
		assert.Equal(t, []string{"d"}, log)

		a.Set(2)
		assert.Equal(t, 7, d.Get())
		assert.Equal(t, []string{"d", "d"}, log)
	})

	t.Run("writable computed delegates Set to writer", func(t *testing.T) {
		celsius := NewSignal(0.0)
		fahrenheit := NewWritableComputed(
			func() float64 { return celsius.Get()*9/5 + 32 },
			func(f float64) { celsius.Set((f - 32) * 5 / 9) },
		)

		assert.Equal(t, 32.0, fahrenheit.Get())
		fahrenheit.Set(212)
		assert.Equal(t, 100.0, celsius.Peek())
	})

	t.Run("readonly computed panics on Set", func(t *testing.T) {
		count := NewSignal(1)
		double := NewComputed(func() int { return count.Get() * 2 })

		assert.Panics(t, func() { double.Set(10) })
	})

	t.Run("recipe panic is wrapped and re-raised on Get", func(t *testing.T) {
		boom := NewComputed(func() int { panic("kaboom") })

		defer func() {
			r := recover()
			if err, ok := r.(error); ok {
				assert.Contains(t, err.Error(), "kaboom")
			} else {
				t.Fatalf("expected an error panic, got %#v", r)
			}
		}()
		boom.Get()
	})

	t.Run("recipe panic leaves cell dirty for re-validation", func(t *testing.T) {
		shouldFail := NewSignal(true)
		count := NewSignal(5)

		derived := NewComputed(func() int {
			if shouldFail.Get() {
				panic("not ready")
			}
			return count.Get()
		})

		assert.Panics(t, func() { derived.Get() })

		shouldFail.Set(false)
		assert.Equal(t, 5, derived.Get())
	})

	t.Run("enumerate observed reports current dependencies", func(t *testing.T) {
		a := NewSignal(1)
		b := NewSignal(2)
		sum := NewComputed(func() int { return a.Get() + b.Get() })
		sum.Get()

		assert.Len(t, sum.EnumerateObserved(), 2)
	})

	t.Run("non-shallow recipe result registers a reactive façade", func(t *testing.T) {
		made := NewComputed(func() *map[string]any {
			return &map[string]any{"greeting": "hi"}
		})

		got := made.Get()
		assert.True(t, IsReactiveObject(got))
	})

	t.Run("shallow option suppresses façade registration", func(t *testing.T) {
		made := NewComputedWithOptions(func() *map[string]any {
			return &map[string]any{"greeting": "hi"}
		}, ComputedOptions{Shallow: true})

		got := made.Get()
		assert.False(t, IsReactiveObject(got))
	})

	t.Run("owns nested effects created by its recipe, disposing them on re-run", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		var nested *Effect
		sum := NewComputed(func() int {
			c := count.Get()
			nested = NewEffectWithCleanup(func() func() {
				log = append(log, fmt.Sprintf("nested %d", c))
				return func() { log = append(log, fmt.Sprintf("nested cleanup %d", c)) }
			})
			return c * 2
		})
		sum.Get()

		first := nested
		assert.Len(t, sum.EnumerateChildScopes(), 1)

		count.Set(2)
		sum.Get()

		assert.True(t, first.IsDisposed(), "previous recompute's nested effect must be disposed")
		assert.Equal(t, []string{"nested 1", "nested cleanup 1", "nested 2"}, log)
	})
}
