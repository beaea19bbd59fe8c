package physics

import (
	"github.com/san-kum/kinesim/internal/algebra"
	"github.com/san-kum/kinesim/internal/vmath"
)

type Position struct {
	Property[vmath.Vec2]
}

func NewPosition(o *Object, initial vmath.Vec2) *Position {
	p := &Position{Property: newProperty(KindPosition, true, o, initial, algebra.Vector2, PriorityState)}
	p.after = func(bool) { p.pushSprite() }
	p.pushSprite()
	return p
}

func (p *Position) pushSprite() {
	if s := p.object.Sprite(); s != nil {
		s.SetDrawPosition(p.Value())
	}
}

// Size keeps the sprite extent in sync and recomputes a sibling Area each
// time its baseline changes.
type Size struct {
	Property[vmath.Vec2]
}

func NewSize(o *Object, initial vmath.Vec2) *Size {
	s := &Size{Property: newProperty(KindSize, true, o, initial, algebra.Vector2, PriorityState)}
	s.after = func(baseline bool) {
		s.pushSprite()
		if baseline {
			s.cascadeArea()
		}
	}
	s.pushSprite()
	return s
}

func (s *Size) pushSprite() {
	if sp := s.object.Sprite(); sp != nil {
		sp.SetDrawSize(s.Value())
	}
}

func (s *Size) cascadeArea() {
	if a, ok := Lookup[*Area](s.object, KindArea); ok {
		v := s.Value()
		a.SetInitialValue(v.X * v.Y)
	}
}

// Anchor returns the position the size gizmo is centred on, if any.
func (s *Size) Anchor() (vmath.Vec2, bool) {
	p, ok := Lookup[*Position](s.object, KindPosition)
	if !ok {
		return vmath.Zero, false
	}
	return p.Value(), true
}

type Area struct {
	Property[float64]
}

func NewArea(o *Object) *Area {
	var initial float64
	if s, ok := Lookup[*Size](o, KindSize); ok {
		v := s.InitialValue()
		initial = v.X * v.Y
	}
	return &Area{Property: newProperty(KindArea, false, o, initial, algebra.Number, PriorityState)}
}

type Mass struct {
	Property[float64]
}

const DefaultMass = 1.0

func NewMass(o *Object, initial float64) *Mass {
	return &Mass{Property: newProperty(KindMass, true, o, initial, algebra.Number, PriorityState)}
}
