// Package scene holds the ambient registry of live simulation objects and
// its JSON persistence.
package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/kinesim/internal/physics"
)

var (
	ErrEmptyName     = errors.New("scene: object name is empty")
	ErrDuplicateName = errors.New("scene: object name already in use")
	ErrNotFound      = errors.New("scene: object not found")
)

// Scene keeps objects in insertion order with unique names.
type Scene struct {
	objects []*physics.Object
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) Add(o *physics.Object) error {
	if o.Name() == "" {
		return ErrEmptyName
	}
	if _, ok := s.Find(o.Name()); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, o.Name())
	}
	s.objects = append(s.objects, o)
	return nil
}

func (s *Scene) Remove(name string) bool {
	for i, o := range s.objects {
		if o.Name() == name {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Find(name string) (*physics.Object, bool) {
	for _, o := range s.objects {
		if o.Name() == name {
			return o, true
		}
	}
	return nil, false
}

func (s *Scene) Get(name string) (*physics.Object, error) {
	o, ok := s.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return o, nil
}

func (s *Scene) Objects() []*physics.Object {
	out := make([]*physics.Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *Scene) Len() int { return len(s.objects) }

// WithKind returns the names of objects that own a quantity of kind k.
func (s *Scene) WithKind(k physics.Kind) []string {
	names := make([]string, 0, len(s.objects))
	for _, o := range s.objects {
		if o.Has(k) {
			names = append(names, o.Name())
		}
	}
	return names
}

// Simulate ticks each object in turn; one object finishes before the next
// starts.
func (s *Scene) Simulate(step float64) {
	for _, o := range s.objects {
		o.Simulate(step)
	}
}

func (s *Scene) Reset() {
	for _, o := range s.objects {
		o.Reset()
	}
}

// Valid reports whether every quantity of every object is finite.
func (s *Scene) Valid() bool {
	for _, o := range s.objects {
		if !o.Valid() {
			return false
		}
	}
	return true
}
