package algebra

import (
	"errors"
	"fmt"

	"github.com/san-kum/kinesim/internal/vmath"
)

// ErrUndefined is raised (as a panic value) when an operation has no meaning
// for a value type.
var ErrUndefined = errors.New("algebra: operation undefined for type")

type Calculator[T any] interface {
	Sum(a, b T) T
	Sub(a, b T) T
	Mult(a T, s float64) T
	Div(a T, s float64) T
}

type numberCalculator struct{}

func (numberCalculator) Sum(a, b float64) float64          { return a + b }
func (numberCalculator) Sub(a, b float64) float64          { return a - b }
func (numberCalculator) Mult(a float64, s float64) float64 { return a * s }
func (numberCalculator) Div(a float64, s float64) float64  { return a / s }

type vector2Calculator struct{}

func (vector2Calculator) Sum(a, b vmath.Vec2) vmath.Vec2          { return a.Add(b) }
func (vector2Calculator) Sub(a, b vmath.Vec2) vmath.Vec2          { return a.Sub(b) }
func (vector2Calculator) Mult(a vmath.Vec2, s float64) vmath.Vec2 { return a.Scale(s) }
func (vector2Calculator) Div(a vmath.Vec2, s float64) vmath.Vec2  { return a.Div(s) }

type vectorModulusCalculator struct{}

// Sum keeps the vector of a.
func (vectorModulusCalculator) Sum(a, b vmath.VectorModulus) vmath.VectorModulus {
	return vmath.VectorModulus{Vector: a.Vector, Modulus: a.Modulus + b.Modulus}
}

// Sub keeps the vector of a.
func (vectorModulusCalculator) Sub(a, b vmath.VectorModulus) vmath.VectorModulus {
	return vmath.VectorModulus{Vector: a.Vector, Modulus: a.Modulus - b.Modulus}
}

func (vectorModulusCalculator) Mult(vmath.VectorModulus, float64) vmath.VectorModulus {
	panic(fmt.Errorf("%w: mult on vector-modulus", ErrUndefined))
}

func (vectorModulusCalculator) Div(vmath.VectorModulus, float64) vmath.VectorModulus {
	panic(fmt.Errorf("%w: div on vector-modulus", ErrUndefined))
}

var (
	Number        Calculator[float64]             = numberCalculator{}
	Vector2       Calculator[vmath.Vec2]          = vector2Calculator{}
	VectorModulus Calculator[vmath.VectorModulus] = vectorModulusCalculator{}
)
