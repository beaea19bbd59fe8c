package graph

import (
	"errors"
	"testing"

	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/vmath"
)

type fixedClock float64

func (c fixedClock) Time() float64 { return float64(c) }

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New()
	ball := physics.NewSolid(physics.SolidConfig{Name: "ball", Position: vmath.V(3, 4), Size: vmath.V(2, 3)}, nil)
	c, _ := physics.Lookup[*physics.CentripetalAcceleration](ball, physics.KindCentripetalAcceleration)
	c.SetInitialValue(vmath.VectorModulus{Vector: vmath.V(-1, 1), Modulus: 2.5})
	if err := s.Add(ball); err != nil {
		t.Fatal(err)
	}

	marker := physics.NewObject("marker", nil)
	marker.Add(physics.NewPosition(marker, vmath.V(7, 0)))
	if err := s.Add(marker); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPropertySource_Projections(t *testing.T) {
	s := testScene(t)

	tests := []struct {
		kind physics.Kind
		proj Projection
		want float64
	}{
		{physics.KindPosition, AxisX, 3},
		{physics.KindPosition, AxisY, 4},
		{physics.KindPosition, Modulus, 5},
		{physics.KindSize, AxisY, 3},
		{physics.KindArea, Scalar, 6},
		{physics.KindMass, Scalar, physics.DefaultMass},
		{physics.KindCentripetalAcceleration, Modulus, 2.5},
		{physics.KindCentripetalAcceleration, AxisX, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.proj.String(), func(t *testing.T) {
			src := NewPropertySource("src", tt.kind, tt.proj, s)
			got, err := src.Value("ball")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPropertySource_TargetNames(t *testing.T) {
	s := testScene(t)

	pos := NewPropertySource("Position (X)", physics.KindPosition, AxisX, s)
	if got := pos.TargetNames(); len(got) != 2 {
		t.Errorf("position targets = %v", got)
	}

	vel := NewPropertySource("Velocity (X)", physics.KindVelocity, AxisX, s)
	if got := vel.TargetNames(); len(got) != 1 || got[0] != "ball" {
		t.Errorf("velocity targets = %v", got)
	}
}

func TestPropertySource_Errors(t *testing.T) {
	s := testScene(t)

	if _, err := NewPropertySource("p", physics.KindPosition, AxisX, s).Value("nobody"); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("missing object: got %v", err)
	}
	if _, err := NewPropertySource("v", physics.KindVelocity, AxisX, s).Value("marker"); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("missing quantity: got %v", err)
	}
	if _, err := NewPropertySource("a", physics.KindArea, AxisX, s).Value("ball"); !errors.Is(err, ErrIncompatible) {
		t.Errorf("x of a scalar: got %v", err)
	}
}

func TestClockSource(t *testing.T) {
	src := NewClockSource("Time", fixedClock(1.25))
	v, err := src.Value("anything")
	if err != nil {
		t.Fatal(err)
	}
	if v != 1.25 {
		t.Errorf("time = %v, want 1.25", v)
	}
	if names := src.TargetNames(); len(names) != 1 || names[0] != ClockTarget {
		t.Errorf("targets = %v", names)
	}
}

func TestGraph_FollowsSimulation(t *testing.T) {
	s := testScene(t)
	ball, _ := s.Find("ball")
	vel, _ := physics.Lookup[*physics.Velocity](ball, physics.KindVelocity)
	vel.SetInitialValue(vmath.V(1, 0))
	c, _ := physics.Lookup[*physics.CentripetalAcceleration](ball, physics.KindCentripetalAcceleration)
	c.SetInitialValue(vmath.VectorModulus{})
	s.Reset()

	var clock float64
	g, err := New(NewClockSource("Time", clockFunc(func() float64 { return clock })), ClockTarget,
		NewPropertySource("Position (X)", physics.KindPosition, AxisX, s), "ball", 4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		s.Simulate(0.5)
		clock += 0.5
		g.Simulate(0.5)
	}

	pts := g.Points()
	if len(pts) != 2 {
		t.Fatalf("uniform motion should reduce to 2 points, got %v", pts)
	}
	if pts[1] != vmath.V(5, 8) {
		t.Errorf("last point = %v, want (5,8)", pts[1])
	}
}

type clockFunc func() float64

func (f clockFunc) Time() float64 { return f() }
