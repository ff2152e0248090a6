package dynamo

import "math"

// Body is one point mass. Prev stages the next position during a single
// integrator call and carries no meaning outside it.
type Body[V Vector[V]] struct {
	Mass float64
	Pos  V
	Prev V
	Vel  V
}

// Momentum returns m*v.
func (b Body[V]) Momentum() V {
	return b.Vel.Scale(b.Mass)
}

// Valid reports whether the mass is positive and every component finite.
func (b Body[V]) Valid() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return ErrNonPositiveMass
	}
	if !IsFinite(b.Pos) || !IsFinite(b.Vel) {
		return ErrInvalidState
	}
	return nil
}

// Store is the ordered, contiguous collection of live bodies owned by one
// session. Its capacity is the load-time count; Remove shrinks the live
// length and never reallocates.
type Store[V Vector[V]] struct {
	bodies []Body[V]
}

// NewStore copies bodies into a store whose capacity is len(bodies).
func NewStore[V Vector[V]](bodies []Body[V]) *Store[V] {
	b := make([]Body[V], len(bodies))
	copy(b, bodies)
	return &Store[V]{bodies: b}
}

func (s *Store[V]) Len() int { return len(s.bodies) }
func (s *Store[V]) Cap() int { return cap(s.bodies) }

// At returns a pointer into the store. It is invalidated by Remove.
func (s *Store[V]) At(i int) *Body[V] { return &s.bodies[i] }

// Bodies returns the live bodies. The slice aliases the store.
func (s *Store[V]) Bodies() []Body[V] { return s.bodies }

// Remove drops body j and shifts every later body down one slot.
func (s *Store[V]) Remove(j int) {
	n := len(s.bodies)
	copy(s.bodies[j:], s.bodies[j+1:])
	s.bodies[n-1] = Body[V]{}
	s.bodies = s.bodies[:n-1]
}

// Snapshot returns an independent copy of the live bodies.
func (s *Store[V]) Snapshot() []Body[V] {
	out := make([]Body[V], len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Validate returns the first invariant violation found, if any.
func (s *Store[V]) Validate() error {
	for i := range s.bodies {
		if err := s.bodies[i].Valid(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store[V]) TotalMass() float64 { return TotalMass(s.bodies) }
func (s *Store[V]) Momentum() V        { return TotalMomentum(s.bodies) }

// TotalMass sums the masses of bodies.
func TotalMass[V Vector[V]](bodies []Body[V]) float64 {
	m := 0.0
	for i := range bodies {
		m += bodies[i].Mass
	}
	return m
}

// TotalMomentum sums m*v over bodies.
func TotalMomentum[V Vector[V]](bodies []Body[V]) V {
	var p V
	for i := range bodies {
		p = p.Add(bodies[i].Momentum())
	}
	return p
}

// CenterOfMass returns the mass-weighted mean position.
func CenterOfMass[V Vector[V]](bodies []Body[V]) V {
	var c V
	m := TotalMass(bodies)
	if m == 0 {
		return c
	}
	for i := range bodies {
		c = c.Add(bodies[i].Pos.Scale(bodies[i].Mass))
	}
	return c.Scale(1 / m)
}
