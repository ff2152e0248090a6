package physics

import "github.com/san-kum/gravsim/internal/dynamo"

// Detector finds the first colliding pair (i < j) in scan order.
type Detector[V dynamo.Vector[V]] interface {
	Detect(bodies []dynamo.Body[V], dt float64) (i, j int, ok bool)
}

// ApproachRule flags a pair when d < s*dt, where d = |r_j - r_i| and
// s = (r_j - r_i).(v_j - v_i) / d is the signed projection of the
// relative velocity on the line of centres.
//
// A stationary pair has s = 0 and never collides. A coincident pair has
// d = 0, s is NaN and the comparison is false.
type ApproachRule[V dynamo.Vector[V]] struct{}

func (ApproachRule[V]) Colliding(a, b *dynamo.Body[V], dt float64) bool {
	rel := b.Pos.Sub(a.Pos)
	d := rel.Norm()
	s := rel.Dot(b.Vel.Sub(a.Vel)) / d
	return d < s*dt
}

func (r ApproachRule[V]) Detect(bodies []dynamo.Body[V], dt float64) (int, int, bool) {
	for i := 0; i < len(bodies)-1; i++ {
		for j := i + 1; j < len(bodies); j++ {
			if r.Colliding(&bodies[i], &bodies[j], dt) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Event describes one merge.
type Event struct {
	Survivor int
	Absorbed int
	Mass     float64
}

// Merge folds body j into body i (i < j): the survivor moves to the
// midpoint, takes the momentum-weighted velocity and the summed mass.
// Every body after j shifts down one slot.
func Merge[V dynamo.Vector[V]](s *dynamo.Store[V], i, j int) Event {
	a, b := s.At(i), s.At(j)
	m := a.Mass + b.Mass
	a.Pos = a.Pos.Add(b.Pos).Scale(0.5)
	a.Vel = a.Vel.Scale(a.Mass).Add(b.Vel.Scale(b.Mass)).Scale(1 / m)
	a.Mass = m
	s.Remove(j)
	return Event{Survivor: i, Absorbed: j, Mass: m}
}

// Collider resolves at most one collision per tick. Several pairs that
// qualify in the same tick are merged one per tick, in scan order.
type Collider[V dynamo.Vector[V]] struct {
	Detector Detector[V]
}

// NewCollider returns a Collider using d, or ApproachRule when d is nil.
func NewCollider[V dynamo.Vector[V]](d Detector[V]) *Collider[V] {
	if d == nil {
		d = ApproachRule[V]{}
	}
	return &Collider[V]{Detector: d}
}

func (c *Collider[V]) Resolve(s *dynamo.Store[V], dt float64) (Event, bool) {
	i, j, ok := c.Detector.Detect(s.Bodies(), dt)
	if !ok {
		return Event{}, false
	}
	return Merge(s, i, j), true
}
