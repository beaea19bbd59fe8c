package physics

import (
	"fmt"

	"github.com/san-kum/kinesim/internal/vmath"
)

// NewQuantity builds a quantity of kind k with its default baseline.
func NewQuantity(k Kind, o *Object) (Quantity, error) {
	switch k {
	case KindPosition:
		return NewPosition(o, vmath.Zero), nil
	case KindSize:
		return NewSize(o, vmath.V(1, 1)), nil
	case KindArea:
		return NewArea(o), nil
	case KindVelocity:
		return NewVelocity(o, vmath.Zero), nil
	case KindDisplacement:
		return NewDisplacement(o), nil
	case KindAcceleration:
		return NewAcceleration(o, vmath.Zero), nil
	case KindCentripetalAcceleration:
		return NewCentripetalAcceleration(o, vmath.VectorModulus{}), nil
	case KindMass:
		return NewMass(o, DefaultMass), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

type SolidConfig struct {
	Name     string
	Position vmath.Vec2
	Size     vmath.Vec2
}

// NewSolid builds an object carrying the full quantity catalog.
func NewSolid(cfg SolidConfig, sprite Sprite) *Object {
	o := NewObject(cfg.Name, sprite)
	o.Add(NewPosition(o, cfg.Position))
	o.Add(NewSize(o, cfg.Size))
	o.Add(NewArea(o))
	o.Add(NewVelocity(o, vmath.Zero))
	o.Add(NewDisplacement(o))
	o.Add(NewAcceleration(o, vmath.Zero))
	o.Add(NewCentripetalAcceleration(o, vmath.VectorModulus{}))
	o.Add(NewMass(o, DefaultMass))
	return o
}

// FromRecord rebuilds an object from its persisted form. Quantities start
// with no observed offset.
func FromRecord(rec ObjectRecord, sprite Sprite) (*Object, error) {
	o := NewObject(rec.Name, sprite)
	for _, r := range rec.Properties {
		q, err := NewQuantity(r.Kind, o)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", rec.Name, err)
		}
		if err := o.Add(q); err != nil {
			return nil, fmt.Errorf("object %s: %w", rec.Name, err)
		}
		if len(r.IValue) > 0 {
			if err := q.Restore(r.IValue); err != nil {
				return nil, fmt.Errorf("object %s: %w", rec.Name, err)
			}
		}
	}
	return o, nil
}
