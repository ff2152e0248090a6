// Package physics provides the gravitational force evaluator and the
// collision detector/resolver used by every tick.
//
//   - [Gravity]: brute-force pairwise Newtonian acceleration
//   - [Collider]: scans pairs once per tick and merges the first colliding one
//   - [ApproachRule], [SweptRule]: collision predicates
//   - [Straddles], [OnSegment], [CrossingFraction], [SegmentsIntersect]:
//     planar segment predicates used by [SweptRule]
//
// Everything is generic over [dynamo.Vector] and instantiated for both
// [dynamo.Vec2] and [dynamo.Vec3], except the segment predicates, which
// are planar only.
//
// # Energy Conservation
//
// [Energy] and [dynamo.TotalMomentum] give the conserved quantities used
// by the metrics package:
//
//	e0 := physics.Energy(g, store.Bodies())
//	// ... ticks ...
//	drift := math.Abs(physics.Energy(g, store.Bodies())-e0) / math.Abs(e0)
package physics
