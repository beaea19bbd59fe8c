// Package algebra provides the pluggable arithmetic used by physical
// quantities.
//
// A [Calculator] performs sum, difference and scalar scaling over one value
// type. Three stateless singletons are provided:
//
//   - [Number]: ordinary float64 arithmetic
//   - [Vector2]: component-wise arithmetic over [vmath.Vec2]
//   - [VectorModulus]: arithmetic over the modulus of a [vmath.VectorModulus]
//
// Every calculator satisfies Sub(Sum(a, b), b) == a within floating point
// tolerance.
package algebra
