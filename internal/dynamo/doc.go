// Package dynamo provides the core primitives of the gravitational kernel.
//
// The package defines the value types and interfaces shared by the rest
// of the simulator:
//
//   - [Vector]: constraint over the planar [Vec2] and spatial [Vec3] types
//   - [Body]: a point mass with position, staging position, and velocity
//   - [Store]: contiguous owned collection of live bodies that shrinks on merge
//   - [Field]: force evaluator returning the acceleration on one body
//   - [Integrator]: advances every body by one fixed time step
//   - [Observer], [Metric]: consumers of per-tick [Frame] snapshots
//
// Everything is written once and instantiated for both dimensions:
//
//	store := dynamo.NewStore([]dynamo.Body[dynamo.Vec2]{...})
//	integ := integrators.NewRK4[dynamo.Vec2]()
//	integ.Step(physics.NewGravity[dynamo.Vec2](1.0), store.Bodies(), dt)
//
// # Thread Safety
//
// None of the types are safe for concurrent mutation. A [Store] is owned
// by exactly one session; renderers read [Frame] copies only.
package dynamo
