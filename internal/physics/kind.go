package physics

type Kind string

const (
	KindPosition                Kind = "position"
	KindSize                    Kind = "size"
	KindArea                    Kind = "area"
	KindVelocity                Kind = "velocity"
	KindDisplacement            Kind = "displacement"
	KindAcceleration            Kind = "acceleration"
	KindCentripetalAcceleration Kind = "centripetalAcceleration"
	KindMass                    Kind = "mass"
)

// Kinds lists every known kind in solid construction order.
var Kinds = []Kind{
	KindPosition,
	KindSize,
	KindArea,
	KindVelocity,
	KindDisplacement,
	KindAcceleration,
	KindCentripetalAcceleration,
	KindMass,
}

func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

const (
	PriorityState      = 0
	PriorityIntegrator = 1
	PriorityDerived    = 2
)
