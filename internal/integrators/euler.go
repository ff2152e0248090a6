package integrators

import "github.com/san-kum/gravsim/internal/dynamo"

// Euler is the first-order reference integrator: v += a*dt, r += v*dt,
// with the new positions staged in Prev until every acceleration is known.
type Euler[V dynamo.Vector[V]] struct{}

func NewEuler[V dynamo.Vector[V]]() *Euler[V] {
	return &Euler[V]{}
}

func (e *Euler[V]) Name() string { return "euler" }

func (e *Euler[V]) Step(f dynamo.Field[V], bodies []dynamo.Body[V], dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(f.Acceleration(i, bodies).Scale(dt))
		b.Prev = b.Pos.Add(b.Vel.Scale(dt))
	}
	for i := range bodies {
		b := &bodies[i]
		b.Pos, b.Prev = b.Prev, b.Pos
	}
}
