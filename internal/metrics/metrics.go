// Package metrics accumulates per-object summaries over a simulation run.
package metrics

import (
	"math"

	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

type Metric interface {
	Name() string
	Observe(t float64)
	Value() float64
	Reset()
}

func velocityOf(o *physics.Object) (vmath.Vec2, bool) {
	v, ok := physics.Lookup[*physics.Velocity](o, physics.KindVelocity)
	if !ok {
		return vmath.Zero, false
	}
	return v.Value(), true
}

func positionOf(o *physics.Object) (vmath.Vec2, bool) {
	p, ok := physics.Lookup[*physics.Position](o, physics.KindPosition)
	if !ok {
		return vmath.Zero, false
	}
	return p.Value(), true
}

// KineticEnergy reports the latest 1/2 m v^2. Objects without a mass count
// as unit mass.
type KineticEnergy struct {
	obj   *physics.Object
	value float64
}

func NewKineticEnergy(o *physics.Object) *KineticEnergy {
	return &KineticEnergy{obj: o}
}

func (k *KineticEnergy) Name() string { return k.obj.Name() + ".kinetic_energy" }

func (k *KineticEnergy) Observe(t float64) {
	v, ok := velocityOf(k.obj)
	if !ok {
		return
	}
	m := physics.DefaultMass
	if mass, ok := physics.Lookup[*physics.Mass](k.obj, physics.KindMass); ok {
		m = mass.Value()
	}
	speed := v.Length()
	k.value = 0.5 * m * speed * speed
}

func (k *KineticEnergy) Value() float64 { return k.value }
func (k *KineticEnergy) Reset()         { k.value = 0 }

type MaxSpeed struct {
	obj *physics.Object
	max float64
}

func NewMaxSpeed(o *physics.Object) *MaxSpeed {
	return &MaxSpeed{obj: o}
}

func (m *MaxSpeed) Name() string { return m.obj.Name() + ".max_speed" }

func (m *MaxSpeed) Observe(t float64) {
	if v, ok := velocityOf(m.obj); ok {
		m.max = math.Max(m.max, v.Length())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// PathLength sums the distance between consecutive observed positions.
type PathLength struct {
	obj    *physics.Object
	last   vmath.Vec2
	seen   bool
	length float64
}

func NewPathLength(o *physics.Object) *PathLength {
	return &PathLength{obj: o}
}

func (p *PathLength) Name() string { return p.obj.Name() + ".path_length" }

func (p *PathLength) Observe(t float64) {
	pos, ok := positionOf(p.obj)
	if !ok {
		return
	}
	if p.seen {
		p.length += vmath.Distance(p.last, pos)
	}
	p.last = pos
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.length = 0
	p.seen = false
}

// MaxHeight tracks the highest y reached.
type MaxHeight struct {
	obj  *physics.Object
	max  float64
	seen bool
}

func NewMaxHeight(o *physics.Object) *MaxHeight {
	return &MaxHeight{obj: o}
}

func (m *MaxHeight) Name() string { return m.obj.Name() + ".max_height" }

func (m *MaxHeight) Observe(t float64) {
	pos, ok := positionOf(m.obj)
	if !ok {
		return
	}
	if !m.seen || pos.Y > m.max {
		m.max = pos.Y
		m.seen = true
	}
}

func (m *MaxHeight) Value() float64 { return m.max }

func (m *MaxHeight) Reset() {
	m.max = 0
	m.seen = false
}

// Defaults returns the standard metric set for one object.
func Defaults(o *physics.Object) []Metric {
	return []Metric{
		NewKineticEnergy(o),
		NewMaxSpeed(o),
		NewPathLength(o),
		NewMaxHeight(o),
	}
}
