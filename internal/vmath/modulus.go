package vmath

// VectorModulus pairs an auxiliary vector with a scalar magnitude. Only the
// modulus takes part in arithmetic; the vector travels along as metadata.
type VectorModulus struct {
	Vector  Vec2    `json:"vector" yaml:"vector"`
	Modulus float64 `json:"modulus" yaml:"modulus"`
}
