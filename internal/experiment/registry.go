package experiment

import (
	"errors"
	"fmt"

	"github.com/san-kum/kinesim/internal/graph"
	"github.com/san-kum/kinesim/internal/physics"
)

var (
	ErrUnknownSource   = errors.New("experiment: unknown value source")
	ErrDuplicateSource = errors.New("experiment: duplicate value source")
)

const TimeSource = "Time"

// Registry is the menu of named value sources a graph axis can bind to.
type Registry struct {
	order   []string
	sources map[string]graph.Source
}

func NewRegistry(clock graph.Clock, sc graph.Scene) *Registry {
	r := &Registry{sources: make(map[string]graph.Source)}

	r.mustRegister(graph.NewClockSource(TimeSource, clock))
	r.registerAxes("Position", physics.KindPosition, sc, false)
	r.registerAxes("Size", physics.KindSize, sc, false)
	r.mustRegister(graph.NewPropertySource("Area", physics.KindArea, graph.Scalar, sc))
	r.registerAxes("Acceleration", physics.KindAcceleration, sc, true)
	r.registerAxes("Velocity", physics.KindVelocity, sc, true)
	r.registerAxes("Displacement", physics.KindDisplacement, sc, true)
	r.mustRegister(graph.NewPropertySource("Mass", physics.KindMass, graph.Scalar, sc))
	r.mustRegister(graph.NewPropertySource("Centripetal acceleration", physics.KindCentripetalAcceleration, graph.Scalar, sc))

	return r
}

func (r *Registry) registerAxes(label string, k physics.Kind, sc graph.Scene, modulus bool) {
	r.mustRegister(graph.NewPropertySource(label+" (X)", k, graph.AxisX, sc))
	r.mustRegister(graph.NewPropertySource(label+" (Y)", k, graph.AxisY, sc))
	if modulus {
		r.mustRegister(graph.NewPropertySource(label+" (modulus)", k, graph.Modulus, sc))
	}
}

func (r *Registry) mustRegister(s graph.Source) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

func (r *Registry) Register(s graph.Source) error {
	if _, ok := r.sources[s.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, s.Name())
	}
	r.sources[s.Name()] = s
	r.order = append(r.order, s.Name())
	return nil
}

func (r *Registry) Get(name string) (graph.Source, error) {
	s, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return s, nil
}

// List returns source names in menu order.
func (r *Registry) List() []string {
	return append([]string(nil), r.order...)
}
