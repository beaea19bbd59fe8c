package physics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/san-kum/kinesim/internal/algebra"
	"github.com/san-kum/kinesim/internal/vmath"
)

// Quantity is the type-erased view of a Property used by objects, the scene
// loader and value sources. It is implemented only by the catalog types.
type Quantity interface {
	Kind() Kind
	Changeable() bool
	Priority() int
	Simulate(step float64)
	Reset()

	// Current returns the value as float64, vmath.Vec2 or vmath.VectorModulus.
	Current() any
	Finite() bool

	Active() bool
	SetActive(bool)
	GizmosEnabled() bool
	SetGizmos(bool)

	Record() (Record, error)
	Restore(raw json.RawMessage) error

	owner() *Object
}

// Record is the persisted form of a quantity. The observed offset is run
// state and is never written.
type Record struct {
	Kind   Kind            `json:"kind"`
	IValue json.RawMessage `json:"iValue"`
}

type Property[T any] struct {
	kind       Kind
	changeable bool
	priority   int
	calc       algebra.Calculator[T]
	object     *Object

	initial  T
	observed T

	active     bool
	drawGizmos bool

	hooks []func(T)
	// after runs once per mutation, after the hooks. baseline reports
	// whether the initial value was the one replaced.
	after func(baseline bool)
}

func newProperty[T any](kind Kind, changeable bool, obj *Object, initial T, calc algebra.Calculator[T], priority int) Property[T] {
	return Property[T]{
		kind:       kind,
		changeable: changeable,
		priority:   priority,
		calc:       calc,
		object:     obj,
		initial:    initial,
		active:     true,
	}
}

func (p *Property[T]) Kind() Kind          { return p.kind }
func (p *Property[T]) Changeable() bool    { return p.changeable }
func (p *Property[T]) Priority() int       { return p.priority }
func (p *Property[T]) Object() *Object     { return p.object }
func (p *Property[T]) owner() *Object      { return p.object }
func (p *Property[T]) Active() bool        { return p.active }
func (p *Property[T]) SetActive(v bool)    { p.active = v }
func (p *Property[T]) GizmosEnabled() bool { return p.drawGizmos }
func (p *Property[T]) SetGizmos(v bool)    { p.drawGizmos = v }

func (p *Property[T]) InitialValue() T { return p.initial }

// SetInitialValue replaces the baseline. The observed offset is kept, so the
// current value moves by the same delta.
func (p *Property[T]) SetInitialValue(v T) {
	p.initial = v
	p.notify(true)
}

func (p *Property[T]) Value() T { return p.calc.Sum(p.initial, p.observed) }

func (p *Property[T]) SetValue(v T) {
	p.observed = p.calc.Sub(v, p.initial)
	p.notify(false)
}

func (p *Property[T]) Current() any { return p.Value() }

// OnValueChanged registers a hook called with the current value after every
// mutation.
func (p *Property[T]) OnValueChanged(fn func(T)) {
	p.hooks = append(p.hooks, fn)
}

func (p *Property[T]) notify(baseline bool) {
	if len(p.hooks) > 0 {
		v := p.Value()
		for _, h := range p.hooks {
			h(v)
		}
	}
	if p.after != nil {
		p.after(baseline)
	}
}

func (p *Property[T]) Simulate(step float64) {}

// Reset clears the observed offset.
func (p *Property[T]) Reset() {
	p.SetValue(p.initial)
}

func (p *Property[T]) Finite() bool {
	switch v := any(p.Value()).(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case vmath.Vec2:
		return v.IsFinite()
	case vmath.VectorModulus:
		return v.Vector.IsFinite() && !math.IsNaN(v.Modulus) && !math.IsInf(v.Modulus, 0)
	}
	return true
}

func (p *Property[T]) Record() (Record, error) {
	raw, err := json.Marshal(p.initial)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s: %w", p.kind, err)
	}
	return Record{Kind: p.kind, IValue: raw}, nil
}

// Restore decodes raw into the initial value.
func (p *Property[T]) Restore(raw json.RawMessage) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode %s: %w", p.kind, err)
	}
	p.SetInitialValue(v)
	return nil
}
