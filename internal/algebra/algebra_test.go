package algebra

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/kinesim/internal/vmath"
)

const eps = 1e-9

var samples = []float64{0, 1, -1, 0.1, -2.5, 1e6, 3.14159, -1e-7}

func TestNumber_RoundTrip(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			if got := Number.Sub(Number.Sum(a, b), b); math.Abs(got-a) > eps*math.Max(1, math.Abs(b)) {
				t.Errorf("sub(sum(%v, %v), %v) = %v", a, b, b, got)
			}
		}
	}
}

func TestVector2_RoundTrip(t *testing.T) {
	for i, a := range samples {
		for j, b := range samples {
			va := vmath.V(a, samples[(i+3)%len(samples)])
			vb := vmath.V(b, samples[(j+5)%len(samples)])
			got := Vector2.Sub(Vector2.Sum(va, vb), vb)
			if got.Sub(va).Length() > eps*math.Max(1, vb.Length()) {
				t.Errorf("sub(sum(%v, %v), %v) = %v", va, vb, vb, got)
			}
		}
	}
}

func TestVectorModulus_RoundTrip(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			va := vmath.VectorModulus{Vector: vmath.V(1, 2), Modulus: a}
			vb := vmath.VectorModulus{Vector: vmath.V(-3, 4), Modulus: b}
			got := VectorModulus.Sub(VectorModulus.Sum(va, vb), vb)
			if math.Abs(got.Modulus-a) > eps*math.Max(1, math.Abs(b)) {
				t.Errorf("modulus round trip: got %v, want %v", got.Modulus, a)
			}
			if got.Vector != va.Vector {
				t.Errorf("vector not carried through: got %v, want %v", got.Vector, va.Vector)
			}
		}
	}
}

func TestVector2_Scaling(t *testing.T) {
	v := vmath.V(2, -4)
	if got := Vector2.Mult(v, 0.5); got != vmath.V(1, -2) {
		t.Errorf("Mult = %v", got)
	}
	if got := Vector2.Div(v, 2); got != vmath.V(1, -2) {
		t.Errorf("Div = %v", got)
	}
}

func TestVectorModulus_ScalingPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"mult", func() { VectorModulus.Mult(vmath.VectorModulus{}, 2) }},
		{"div", func() { VectorModulus.Div(vmath.VectorModulus{}, 2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrUndefined) {
					t.Errorf("expected ErrUndefined panic, got %v", r)
				}
			}()
			tt.fn()
		})
	}
}
