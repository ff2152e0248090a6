package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Straddles reports whether a,b lie strictly on opposite sides of line cd
// and c,d strictly on opposite sides of line ab.
func Straddles(a, b, c, d dynamo.Vec2) bool {
	ta := (c.X-d.X)*(a.Y-c.Y) + (c.Y-d.Y)*(c.X-a.X)
	tb := (c.X-d.X)*(b.Y-c.Y) + (c.Y-d.Y)*(c.X-b.X)
	tc := (a.X-b.X)*(c.Y-a.Y) + (a.Y-b.Y)*(a.X-c.X)
	td := (a.X-b.X)*(d.Y-a.Y) + (a.Y-b.Y)*(a.X-d.X)
	return tc*td < 0 && ta*tb < 0
}

// OnSegment reports whether p lies on segment ab, endpoints included.
func OnSegment(a, b, p dynamo.Vec2, tol float64) bool {
	pa, pb := a.Sub(p), b.Sub(p)
	outer := pa.X*pb.Y - pa.Y*pb.X
	return math.Abs(outer) < tol && pa.Dot(pb) <= 0
}

// CrossingFraction solves a + k(b-a) on line cd for k. parallel is true
// when the two directions are parallel within tol and k is meaningless.
func CrossingFraction(a, b, c, d dynamo.Vec2, tol float64) (k float64, parallel bool) {
	t := (d.Y-c.Y)*(b.X-a.X) - (d.X-c.X)*(b.Y-a.Y)
	if math.Abs(t) < tol {
		return 0, true
	}
	return ((d.Y-c.Y)*(c.X-a.X) - (d.X-c.X)*(c.Y-a.Y)) / t, false
}

// SegmentsIntersect reports whether segments ab and cd cross, or are
// collinear and share at least one point.
func SegmentsIntersect(a, b, c, d dynamo.Vec2, tol float64) bool {
	k, parallel := CrossingFraction(a, b, c, d, tol)
	if parallel {
		return OnSegment(c, d, b, tol) || OnSegment(c, d, a, tol) ||
			OnSegment(a, b, c, tol) || OnSegment(a, b, d, tol)
	}
	m, _ := CrossingFraction(c, d, a, b, tol)
	return k > 0 && k < 1 && m > 0 && m < 1
}

// SweptRule flags a planar pair when the straight paths r -> r + v*dt of
// the two bodies intersect during the tick.
type SweptRule struct {
	Tolerance float64
}

func (r SweptRule) Detect(bodies []dynamo.Body[dynamo.Vec2], dt float64) (int, int, bool) {
	for i := 0; i < len(bodies)-1; i++ {
		a := bodies[i].Pos
		b := a.Add(bodies[i].Vel.Scale(dt))
		for j := i + 1; j < len(bodies); j++ {
			c := bodies[j].Pos
			d := c.Add(bodies[j].Vel.Scale(dt))
			if SegmentsIntersect(a, b, c, d, r.Tolerance) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
