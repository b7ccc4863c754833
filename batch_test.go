package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatch(t *testing.T) {
	t.Run("coalesces multiple writes into a single flush", func(t *testing.T) {
		log := []string{}

		a := NewSignal(1)
		b := NewSignal(2)
		sum := NewComputed(func() int {
			log = append(log, "computing sum")
			return a.Get() + b.Get()
		})

		eff := NewEffect(func() {
			log = append(log, "sum is read")
			sum.Get()
		})
		defer eff.Dispose()

		log = nil // discard the initial synchronous run's entries

		Batch(func() {
			a.Set(10)
			b.Set(20)
		})

		count := 0
		for _, l := range log {
			if l == "sum is read" {
				count++
			}
		}
		assert.Equal(t, 1, count, "the effect must run exactly once for the whole batch")
	})

	t.Run("OnSettled reports exactly the cells that changed value", func(t *testing.T) {
		var changed []Cell[any]
		OnSettled(func(c []Cell[any]) { changed = c })

		a := NewSignal(1)
		b := NewSignal(5)

		Batch(func() {
			a.Set(1) // unchanged: same-value-zero no-op
			b.Set(6)
		})

		assert.Len(t, changed, 1)
	})

	t.Run("nested batches flush once, at the outermost exit", func(t *testing.T) {
		runs := 0
		a := NewSignal(0)
		eff := NewEffect(func() {
			a.Get()
			runs++
		})
		defer eff.Dispose()

		runs = 0
		Batch(func() {
			Batch(func() {
				a.Set(1)
			})
			a.Set(2)
		})

		assert.Equal(t, 1, runs)
	})
}
