package reactor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSignal(0)
		assert.Equal(t, 0, count.Peek())

		count.Set(10)
		assert.Equal(t, 10, count.Peek())
	})

	t.Run("zero values", func(t *testing.T) {
		errSig := NewSignal[error](nil)
		assert.Nil(t, errSig.Peek())

		errSig.Set(errors.New("oops"))
		assert.EqualError(t, errSig.Peek(), "oops")

		errSig.Set(nil)
		assert.Nil(t, errSig.Peek())
	})

	t.Run("same-value-zero write is a no-op", func(t *testing.T) {
		log := []string{}
		count := NewSignal(1.0)
		double := NewComputed(func() float64 {
			log = append(log, "doubling")
			return count.Get() * 2
		})
		double.Get()

		count.Set(1.0) // same value: no recompute should be scheduled
		Flush()
		double.Get()

		assert.Equal(t, []string{"doubling"}, log)
	})

	t.Run("update applies fn to current value", func(t *testing.T) {
		count := NewSignal(5)
		count.Update(func(v int) int { return v + 1 })
		assert.Equal(t, 6, count.Peek())
	})

	t.Run("forward tracks another signal until overridden", func(t *testing.T) {
		a := NewSignal(1)
		b := NewSignal(0)

		b.Forward(a)
		assert.Equal(t, 1, b.Peek())

		a.Set(2)
		assert.Equal(t, 2, b.Peek())

		b.Set(99)
		a.Set(3)
		assert.Equal(t, 99, b.Peek(), "a direct Set severs the forward")
	})

	t.Run("dispose completes subscriptions", func(t *testing.T) {
		count := NewSignal(0)
		var completed bool
		count.Subscribe(Observer[int]{
			Complete: func() { completed = true },
		})

		count.Dispose()
		assert.True(t, completed)
	})
}
