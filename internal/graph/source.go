package graph

import (
	"errors"
	"fmt"

	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

var (
	ErrTargetNotFound = errors.New("graph: target not found")
	ErrIncompatible   = errors.New("graph: projection does not apply to quantity value")
)

// Source provides one scalar series.
type Source interface {
	Name() string
	TargetNames() []string
	Value(target string) (float64, error)
}

type Clock interface {
	Time() float64
}

// Scene is the ambient registry a PropertySource reads from.
type Scene interface {
	Objects() []*physics.Object
	Find(name string) (*physics.Object, bool)
}

const ClockTarget = "Simulator"

// ClockSource reports elapsed simulation time and ignores its target.
type ClockSource struct {
	name  string
	clock Clock
}

func NewClockSource(name string, clock Clock) *ClockSource {
	return &ClockSource{name: name, clock: clock}
}

func (c *ClockSource) Name() string                         { return c.name }
func (c *ClockSource) TargetNames() []string                { return []string{ClockTarget} }
func (c *ClockSource) Value(target string) (float64, error) { return c.clock.Time(), nil }

type Projection int

const (
	Scalar Projection = iota
	AxisX
	AxisY
	Modulus
)

func (p Projection) String() string {
	switch p {
	case Scalar:
		return "scalar"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case Modulus:
		return "modulus"
	default:
		return "unknown"
	}
}

// PropertySource projects the current value of one quantity kind to a
// scalar.
type PropertySource struct {
	name       string
	kind       physics.Kind
	projection Projection
	scene      Scene
}

func NewPropertySource(name string, kind physics.Kind, projection Projection, scene Scene) *PropertySource {
	return &PropertySource{name: name, kind: kind, projection: projection, scene: scene}
}

func (p *PropertySource) Name() string           { return p.name }
func (p *PropertySource) Kind() physics.Kind     { return p.kind }
func (p *PropertySource) Projection() Projection { return p.projection }

// TargetNames lists the objects that currently own the bound kind.
func (p *PropertySource) TargetNames() []string {
	var names []string
	for _, o := range p.scene.Objects() {
		if o.Has(p.kind) {
			names = append(names, o.Name())
		}
	}
	return names
}

func (p *PropertySource) Value(target string) (float64, error) {
	o, ok := p.scene.Find(target)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}
	q, ok := o.Quantity(p.kind)
	if !ok {
		return 0, fmt.Errorf("%w: %s has no %s", ErrTargetNotFound, target, p.kind)
	}
	return project(q.Current(), p.projection)
}

func project(v any, p Projection) (float64, error) {
	switch v := v.(type) {
	case float64:
		if p == Scalar || p == Modulus {
			return v, nil
		}
	case vmath.Vec2:
		switch p {
		case AxisX:
			return v.X, nil
		case AxisY:
			return v.Y, nil
		case Modulus:
			return vmath.Distance(vmath.Zero, v), nil
		}
	case vmath.VectorModulus:
		switch p {
		case Scalar, Modulus:
			return v.Modulus, nil
		case AxisX:
			return v.Vector.X, nil
		case AxisY:
			return v.Vector.Y, nil
		}
	}
	return 0, fmt.Errorf("%w: %s of %T", ErrIncompatible, p, v)
}
