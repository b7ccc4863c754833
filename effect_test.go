package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs once immediately, then again on Flush after change", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		eff := NewEffectWithCleanup(func() func() {
			log = append(log, fmt.Sprintf("changed %d", count.Get()))
			return func() { log = append(log, "cleanup") }
		})
		defer eff.Dispose()

		count.Set(10)
		Flush()
		count.Set(20)
		Flush()

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("set never auto-flushes", func(t *testing.T) {
		log := []string{}
		count := NewSignal(0)
		eff := NewEffect(func() {
			log = append(log, fmt.Sprintf("%d", count.Get()))
		})
		defer eff.Dispose()

		count.Set(1)
		assert.Equal(t, []string{"0"}, log, "no Flush yet: effect must not have re-run")

		Flush()
		assert.Equal(t, []string{"0", "1"}, log)
	})

	t.Run("writes to another signal propagate through chained effects", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewSignal(0)

		e1 := NewEffect(func() { double.Set(count.Get() * 2) })
		e2 := NewEffectWithCleanup(func() func() {
			log = append(log, fmt.Sprintf("changed %d", double.Get()))
			return func() { log = append(log, "cleanup") }
		})
		defer e1.Dispose()
		defer e2.Dispose()

		count.Set(5)
		Flush()

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 10",
		}, log)
	})

	t.Run("disable suspends re-runs without clearing dirty", func(t *testing.T) {
		log := []string{}
		count := NewSignal(0)
		eff := NewEffect(func() {
			log = append(log, fmt.Sprintf("%d", count.Get()))
		})
		defer eff.Dispose()

		eff.Disable()
		count.Set(1)
		Flush()
		assert.Equal(t, []string{"0"}, log, "disabled effect must not re-run")

		eff.Enable()
		eff.Run()
		assert.Equal(t, []string{"0", "1"}, log, "re-enabled effect picks up the missed change")
	})

	t.Run("disposes nested effects on re-run", func(t *testing.T) {
		log := []string{}

		count := NewSignal(1)
		outer := NewEffect(func() {
			c := count.Get()
			NewEffectWithCleanup(func() func() {
				log = append(log, fmt.Sprintf("inner %d", c))
				return func() { log = append(log, fmt.Sprintf("inner cleanup %d", c)) }
			})
		})
		defer outer.Dispose()

		count.Set(2)
		Flush()

		assert.Equal(t, []string{
			"inner 1",
			"inner cleanup 1",
			"inner 2",
		}, log)
	})

	t.Run("OnCleanup registers against current scope", func(t *testing.T) {
		ranCleanup := false
		scope := NewScope(nil)
		scope.Run(func() {
			OnCleanup(func() { ranCleanup = true })
		})
		scope.Dispose()

		assert.True(t, ranCleanup)
	})
}
