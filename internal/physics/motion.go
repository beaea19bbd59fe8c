package physics

import (
	"github.com/san-kum/kinesim/internal/algebra"
	"github.com/san-kum/kinesim/internal/vmath"
)

type Acceleration struct {
	Property[vmath.Vec2]
}

func NewAcceleration(o *Object, initial vmath.Vec2) *Acceleration {
	return &Acceleration{Property: newProperty(KindAcceleration, true, o, initial, algebra.Vector2, PriorityState)}
}

type Velocity struct {
	Property[vmath.Vec2]
}

func NewVelocity(o *Object, initial vmath.Vec2) *Velocity {
	return &Velocity{Property: newProperty(KindVelocity, true, o, initial, algebra.Vector2, PriorityIntegrator)}
}

// Simulate advances position with the acceleration at the start of the step,
// lets a centripetal sibling recompute acceleration at the new position, then
// integrates velocity with the mean of both accelerations. Constant
// acceleration therefore reproduces the closed-form trajectory.
func (v *Velocity) Simulate(step float64) {
	pos, hasPos := Lookup[*Position](v.object, KindPosition)
	acc, hasAcc := Lookup[*Acceleration](v.object, KindAcceleration)

	vel := v.Value()
	ai := vmath.Zero
	if hasAcc {
		ai = acc.Value()
	}

	if hasPos {
		pos.SetValue(pos.Value().Add(vel.Scale(step)).Add(ai.Scale(0.5 * step * step)))
	}

	if !hasAcc {
		return
	}

	af := ai
	if c, ok := Lookup[*CentripetalAcceleration](v.object, KindCentripetalAcceleration); ok {
		c.Simulate(step)
		af = acc.Value()
	}

	v.SetValue(vel.Add(ai.Add(af).Scale(0.5 * step)))
}

// Displacement is derived: position minus its initial value.
type Displacement struct {
	Property[vmath.Vec2]
}

func NewDisplacement(o *Object) *Displacement {
	return &Displacement{Property: newProperty(KindDisplacement, false, o, vmath.Zero, algebra.Vector2, PriorityDerived)}
}

func (d *Displacement) Simulate(step float64) {
	if p, ok := Lookup[*Position](d.object, KindPosition); ok {
		d.SetValue(p.Value().Sub(p.InitialValue()))
	}
}

// Origin is where the displacement vector starts, if a position exists.
func (d *Displacement) Origin() (vmath.Vec2, bool) {
	p, ok := Lookup[*Position](d.object, KindPosition)
	if !ok {
		return vmath.Zero, false
	}
	return p.InitialValue(), true
}
