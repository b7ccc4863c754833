package reactor

import (
	"reflect"
	"strings"

	"github.com/fenwick-rx/reactor/internal"
)

// Reactive is a transparent façade over a backing struct or
// map[string]any: it lazily synthesizes a Source or Derived Cell per
// property on first reactive access.
//
// Go has no Proxy/dynamic-property-interception equivalent, so "transparent"
// here means "through Reactive's Get/Set", not raw field access — the one
// deliberate adaptation noted in DESIGN.md.
type Reactive struct {
	backing any // the original pointer, used as identity for IsReactiveObject
	elem    reflect.Value
	isMap   bool
	cells   map[string]internal.Cell
	refs    map[string]*Signal[any]
}

var reactiveRegistry = map[any]*Reactive{}

// cellLike is satisfied by Signal[T] and Computed[T]: any public cell
// wrapper that can hand back its underlying internal.Cell.
type cellLike interface {
	sourceCell() internal.Cell
}

// New wraps backing — a pointer to a struct or to a map[string]any — in a
// Reactive façade. Calling New on the same pointer twice returns the same
// façade, and every property gets exactly one cell for the lifetime of
// that façade.
func New(backing any) *Reactive {
	if r, ok := reactiveRegistry[backing]; ok {
		return r
	}
	rv := reflect.ValueOf(backing)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		panic(&NotReactiveError{Value: backing})
	}
	elem := rv.Elem()
	r := &Reactive{
		backing: backing,
		elem:    elem,
		isMap:   elem.Kind() == reflect.Map,
		cells:   make(map[string]internal.Cell),
	}
	reactiveRegistry[backing] = r
	return r
}

// IsReactiveObject reports whether backing was ever passed to New.
func IsReactiveObject(backing any) bool {
	_, ok := reactiveRegistry[backing]
	return ok
}

// Get reads property key: returns the cell's value (tracking a dependency
// if called from inside a recipe), or the raw backing value untouched if
// no frame is active and no cell has been synthesized yet.
func (r *Reactive) Get(key string) any {
	rt := internal.GetRuntime()
	fr := rt.CurrentFrame()

	if c, ok := r.cells[key]; ok {
		return readCell(rt, fr, c)
	}

	raw := r.rawGet(key)
	if cl, ok := raw.(cellLike); ok {
		c := cl.sourceCell()
		r.cells[key] = c
		return readCell(rt, fr, c)
	}

	if fr == nil {
		return raw
	}

	c := r.synthesize(key, raw)
	r.cells[key] = c
	return readCell(rt, fr, c)
}

// Set writes property key to value. An existing cell's Set is used if one
// was already synthesized; otherwise a cell-valued write puts this
// property into forwarding mode, a backing value that is itself a cell is
// adopted and Set, and anything else is a plain untracked write.
func (r *Reactive) Set(key string, value any) {
	if c, ok := r.cells[key]; ok {
		setCell(c, value)
		return
	}

	if cl, ok := value.(cellLike); ok {
		src := internal.NewSource(nil)
		src.Forward(internal.GetRuntime(), cl.sourceCell())
		r.cells[key] = src
		return
	}

	if raw := r.rawGet(key); raw != nil {
		if cl, ok := raw.(cellLike); ok {
			r.cells[key] = cl.sourceCell()
			setCell(r.cells[key], value)
			return
		}
	}

	r.rawSet(key, value)
}

// RefForProperty returns the stable Cell backing property key, synthesizing
// it (as an untracked Source, since there's no frame to attribute it to)
// if it doesn't already exist. The same Cell is returned on every future
// call for this key.
func RefForProperty(backing any, key string) *Signal[any] {
	r, ok := reactiveRegistry[backing]
	if !ok {
		panic(&NotReactiveError{Value: backing})
	}
	if ref, ok := r.refs[key]; ok {
		return ref
	}

	var src *internal.Source
	if c, ok := r.cells[key]; ok {
		if s, ok := c.(*internal.Source); ok {
			src = s
		}
	}
	if src == nil {
		src = internal.NewSource(r.rawGet(key))
		r.cells[key] = src
	}

	ref := &Signal[any]{src: src}
	if r.refs == nil {
		r.refs = make(map[string]*Signal[any])
	}
	r.refs[key] = ref
	return ref
}

func readCell(rt *internal.Runtime, fr *internal.Frame, c internal.Cell) any {
	switch v := c.(type) {
	case *internal.Source:
		return v.Get(fr)
	case *internal.Derived:
		return v.Get(rt, fr)
	default:
		return c.Peek()
	}
}

func setCell(c internal.Cell, value any) {
	switch v := c.(type) {
	case *internal.Source:
		v.Set(value)
	case *internal.Derived:
		v.Set(value)
	}
}

// synthesize creates the Cell backing a not-yet-tracked property. If the
// backing pointer exposes Get<Key>/Set<Key> methods, it becomes a Derived
// Cell wrapping that accessor pair (Go's stand-in for "an accessor
// inherited anywhere on the prototype chain"); otherwise a plain Source
// Cell seeded with the current raw value.
func (r *Reactive) synthesize(key string, raw any) internal.Cell {
	title := strings.ToUpper(key[:1]) + key[1:]
	ptr := reflect.ValueOf(r.backing)
	getter := ptr.MethodByName("Get" + title)
	setter := ptr.MethodByName("Set" + title)

	if getter.IsValid() {
		recipe := func() any {
			out := getter.Call(nil)
			if len(out) == 0 {
				return nil
			}
			return out[0].Interface()
		}
		var writer func(any)
		if setter.IsValid() {
			writer = func(v any) {
				setter.Call([]reflect.Value{reflect.ValueOf(v)})
			}
		}
		return internal.NewDerived(nil, recipe, writer)
	}

	return internal.NewSource(raw)
}

func (r *Reactive) rawGet(key string) any {
	if r.isMap {
		v := r.elem.MapIndex(reflect.ValueOf(key))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	}
	f := r.elem.FieldByName(strings.ToUpper(key[:1]) + key[1:])
	if !f.IsValid() {
		return nil
	}
	return f.Interface()
}

func (r *Reactive) rawSet(key string, value any) {
	if r.isMap {
		r.elem.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(value))
		return
	}
	f := r.elem.FieldByName(strings.ToUpper(key[:1]) + key[1:])
	if f.IsValid() && f.CanSet() {
		f.Set(reflect.ValueOf(value))
	}
}
