// Command example demonstrates the core reactivity primitives: a Source
// Cell, a Derived Cell that caches its recompute, an Effect that runs for
// its side effects, and the explicit Batch/Flush scheduling model.
package main

import (
	"fmt"

	"github.com/fenwick-rx/reactor"
)

func main() {
	scope := reactor.NewScope(nil)
	scope.Run(func() {
		a := reactor.NewSignal(1)
		b := reactor.NewSignal(2)

		sum := reactor.NewComputed(func() int {
			result := a.Get() + b.Get()
			fmt.Println("  [computed] summing:", result)
			return result
		})

		reactor.NewEffect(func() {
			fmt.Println("  [effect] sum is:", sum.Get())
		})

		fmt.Println("\nupdating both a and b inside a batch...")
		reactor.Batch(func() {
			a.Set(10)
			b.Set(20)
		})

		fmt.Println("\nexpected: sum computes once more (30), effect runs once more")
	})

	scope.Dispose()
}
