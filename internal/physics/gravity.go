package physics

import "github.com/san-kum/gravsim/internal/dynamo"

// Gravity evaluates a_i = sum_{j!=i} G m_j (r_j - r_i) / |r_j - r_i|^3.
//
// There is no softening. Two coincident bodies produce a non-finite
// acceleration; the collision rule is expected to merge them first but
// does not guarantee it.
type Gravity[V dynamo.Vector[V]] struct {
	G float64
}

func NewGravity[V dynamo.Vector[V]](g float64) *Gravity[V] {
	return &Gravity[V]{G: g}
}

func (g *Gravity[V]) Acceleration(i int, bodies []dynamo.Body[V]) V {
	var acc V
	ri := bodies[i].Pos
	for j := range bodies {
		if j == i {
			continue
		}
		d := bodies[j].Pos.Sub(ri)
		r := d.Norm()
		acc = acc.Add(d.Scale(g.G * bodies[j].Mass / (r * r * r)))
	}
	return acc
}

// Energy returns the total kinetic plus potential energy of bodies.
func Energy[V dynamo.Vector[V]](g *Gravity[V], bodies []dynamo.Body[V]) float64 {
	ke, pe := 0.0, 0.0
	for i := range bodies {
		v := bodies[i].Vel
		ke += 0.5 * bodies[i].Mass * v.Dot(v)
		for j := i + 1; j < len(bodies); j++ {
			r := dynamo.Distance(bodies[i].Pos, bodies[j].Pos)
			pe -= g.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return ke + pe
}

// AngularMomentum returns the z component of sum m (r x v) for planar bodies.
func AngularMomentum(bodies []dynamo.Body[dynamo.Vec2]) float64 {
	L := 0.0
	for _, b := range bodies {
		L += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return L
}
