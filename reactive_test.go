package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name string
	Age  int
}

func (p *person) GetFullTitle() string {
	return "Mx. " + p.Name
}

func TestReactive(t *testing.T) {
	t.Run("untracked read returns raw value, no cell synthesized", func(t *testing.T) {
		p := &person{Name: "Ada", Age: 30}
		r := New(p)

		assert.Equal(t, "Ada", r.Get("Name"))
		assert.Empty(t, r.cells)
		assert.True(t, IsReactiveObject(p))
	})

	t.Run("untracked write then read round-trips through the backing struct", func(t *testing.T) {
		p := &person{Name: "Ada", Age: 30}
		r := New(p)

		r.Set("Age", 31)
		assert.Equal(t, 31, r.Get("Age"))
	})

	t.Run("tracked read inside Computed creates a dependency", func(t *testing.T) {
		p := &person{Name: "Ada", Age: 30}
		r := New(p)

		ages := 0
		doubled := NewComputed(func() int {
			ages++
			return r.Get("Age").(int) * 2
		})

		assert.Equal(t, 60, doubled.Get())
		r.Set("Age", 40)
		assert.Equal(t, 80, doubled.Get())
		assert.Equal(t, 2, ages)
	})

	t.Run("same pointer returns the same façade", func(t *testing.T) {
		p := &person{Name: "Grace", Age: 50}
		assert.Same(t, New(p), New(p))
	})

	t.Run("map backing works the same way", func(t *testing.T) {
		m := &map[string]any{"x": 1}
		r := New(m)

		assert.Equal(t, 1, r.Get("x"))
		r.Set("x", 2)
		assert.Equal(t, 2, r.Get("x"))
	})

	t.Run("RefForProperty returns the stable backing cell", func(t *testing.T) {
		p := &person{Name: "Ada", Age: 30}
		New(p)

		ref1 := RefForProperty(p, "Age")
		ref2 := RefForProperty(p, "Age")
		assert.Same(t, ref1, ref2)

		ref1.Set(99)
		assert.Equal(t, 99, ref2.Peek())
	})

	t.Run("RefForProperty on a non-reactive value panics", func(t *testing.T) {
		assert.Panics(t, func() { RefForProperty(&person{}, "Age") })
	})

	t.Run("accessor-backed property synthesizes a Derived Cell", func(t *testing.T) {
		p := &person{Name: "Ada"}
		r := New(p)

		title := NewComputed(func() string {
			return r.Get("FullTitle").(string)
		})
		assert.Equal(t, "Mx. Ada", title.Get())
	})
}
