// Package physics implements the per-object quantity graph of the sandbox.
//
// A [Property] holds a baseline (initial) value and the offset accumulated
// by simulation (observed); its current value is their sum under the
// property's [algebra.Calculator]. Concrete quantities embed a Property and
// add their integration rule:
//
//   - [Position], [Size], [Area], [Mass]: plain state, no integration
//   - [Acceleration]: state, optionally rewritten by a centripetal source
//   - [Velocity]: integrates position and itself each tick
//   - [CentripetalAcceleration]: radial acceleration toward a target point
//   - [Displacement]: position minus initial position
//
// Quantities find their siblings lazily by [Kind] through the owning
// [Object]; a missing sibling disables the dependent behaviour.
//
// # Tick order
//
// [Object.Simulate] runs quantities in ascending priority, ties broken by
// insertion order. A centripetal acceleration is driven by its velocity
// sibling and is not scheduled on its own while one exists.
package physics
