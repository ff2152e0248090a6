package integrators

import "github.com/san-kum/gravsim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method applied to
// dr/dt = v, dv/dt = f(r). Each of the four stages moves every body to
// that stage's position before any acceleration is evaluated, so all
// bodies see the same stage-consistent configuration.
type RK4[V dynamo.Vector[V]] struct {
	kr, kv [4][]V
}

func NewRK4[V dynamo.Vector[V]]() *RK4[V] {
	return &RK4[V]{}
}

func (r *RK4[V]) Name() string { return "rk4" }

func (r *RK4[V]) ensureScratch(n int) {
	if len(r.kr[0]) != n {
		for s := 0; s < 4; s++ {
			r.kr[s] = make([]V, n)
			r.kv[s] = make([]V, n)
		}
	}
}

func (r *RK4[V]) Step(f dynamo.Field[V], bodies []dynamo.Body[V], dt float64) {
	r.ensureScratch(len(bodies))

	for i := range bodies {
		bodies[i].Prev = bodies[i].Pos
	}

	for i := range bodies {
		r.kv[0][i] = f.Acceleration(i, bodies).Scale(dt)
		r.kr[0][i] = bodies[i].Vel.Scale(dt)
	}
	r.stage(f, bodies, dt, 1, 0.5)
	r.stage(f, bodies, dt, 2, 0.5)
	r.stage(f, bodies, dt, 3, 1.0)

	for i := range bodies {
		b := &bodies[i]
		dr := r.kr[0][i].Add(r.kr[1][i].Scale(2)).Add(r.kr[2][i].Scale(2)).Add(r.kr[3][i])
		dv := r.kv[0][i].Add(r.kv[1][i].Scale(2)).Add(r.kv[2][i].Scale(2)).Add(r.kv[3][i])
		b.Pos = b.Prev.Add(dr.Scale(1.0 / 6.0))
		b.Vel = b.Vel.Add(dv.Scale(1.0 / 6.0))
	}
}

// stage sets every position to prev + h*kr[s-1], then evaluates
// kv[s] = dt*f(r) and kr[s] = dt*(v + h*kv[s-1]).
func (r *RK4[V]) stage(f dynamo.Field[V], bodies []dynamo.Body[V], dt float64, s int, h float64) {
	for i := range bodies {
		bodies[i].Pos = bodies[i].Prev.Add(r.kr[s-1][i].Scale(h))
	}
	for i := range bodies {
		r.kv[s][i] = f.Acceleration(i, bodies).Scale(dt)
		r.kr[s][i] = bodies[i].Vel.Add(r.kv[s-1][i].Scale(h)).Scale(dt)
	}
}
