package integrators

import "github.com/san-kum/gravsim/internal/dynamo"

// Verlet is velocity Verlet: symplectic, second order, two force sweeps per tick.
type Verlet[V dynamo.Vector[V]] struct {
	acc []V
}

func NewVerlet[V dynamo.Vector[V]]() *Verlet[V] {
	return &Verlet[V]{}
}

func (v *Verlet[V]) Name() string { return "verlet" }

func (v *Verlet[V]) ensureScratch(n int) {
	if len(v.acc) != n {
		v.acc = make([]V, n)
	}
}

func (v *Verlet[V]) Step(f dynamo.Field[V], bodies []dynamo.Body[V], dt float64) {
	v.ensureScratch(len(bodies))
	halfDt := 0.5 * dt

	for i := range bodies {
		v.acc[i] = f.Acceleration(i, bodies)
	}
	for i := range bodies {
		b := &bodies[i]
		b.Prev = b.Pos
		b.Pos = b.Pos.Add(b.Vel.Scale(dt)).Add(v.acc[i].Scale(halfDt * dt))
	}
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(v.acc[i].Add(f.Acceleration(i, bodies)).Scale(halfDt))
	}
}
