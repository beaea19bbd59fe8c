package physics

import (
	"github.com/san-kum/kinesim/internal/algebra"
	"github.com/san-kum/kinesim/internal/vmath"
)

// CentripetalAcceleration pulls its object toward Vector with magnitude
// Modulus. Each application overwrites the observed part of the sibling
// Acceleration with the radial term, so only one radial source is supported.
type CentripetalAcceleration struct {
	Property[vmath.VectorModulus]
}

func NewCentripetalAcceleration(o *Object, initial vmath.VectorModulus) *CentripetalAcceleration {
	return &CentripetalAcceleration{
		Property: newProperty(KindCentripetalAcceleration, true, o, initial, algebra.VectorModulus, PriorityDerived),
	}
}

func (c *CentripetalAcceleration) drivenBy() Kind { return KindVelocity }

func (c *CentripetalAcceleration) Simulate(step float64) {
	pos, ok := Lookup[*Position](c.object, KindPosition)
	if !ok {
		return
	}
	acc, ok := Lookup[*Acceleration](c.object, KindAcceleration)
	if !ok {
		return
	}

	v := c.Value()
	if v.Modulus == 0 {
		return
	}

	dir, ok := v.Vector.Sub(pos.Value()).Normalize()
	if !ok {
		// object sits on the target point
		acc.SetValue(acc.InitialValue())
		return
	}
	acc.SetValue(acc.InitialValue().Add(dir.Scale(v.Modulus)))
}

// ModulusFor returns the centripetal magnitude for uniform circular motion at
// angular speed omega on a circle of the given radius.
func ModulusFor(omega, radius float64) float64 {
	return omega * omega * radius
}
