package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

// ErrDiverged is returned when the twin trajectory stops being measurable,
// usually because two bodies met and the force became singular.
var ErrDiverged = errors.New("trajectories diverged")

// Lyapunov estimates the largest Lyapunov exponent of bodies under
// Newtonian gravity. A positive value indicates chaos.
//
// Algorithm:
// 1. Integrate a twin with the first body displaced by d0 along the first axis
// 2. After each tick measure the phase-space separation
// 3. Pull the twin back to separation d0 along the same direction
// 4. λ ≈ Σ ln(d/d0) / (ticks*dt)
//
// Collisions are not resolved.
func Lyapunov[V dynamo.Vector[V]](bodies []dynamo.Body[V], integrator string, g, dt float64, ticks int, d0 float64) (float64, error) {
	if len(bodies) == 0 {
		return 0, errors.New("no bodies")
	}
	if !(dt > 0) || ticks <= 0 || !(d0 > 0) {
		return 0, fmt.Errorf("need dt > 0, ticks > 0 and d0 > 0 (dt=%g ticks=%d d0=%g)", dt, ticks, d0)
	}
	base, err := integrators.ByName[V](integrator)
	if err != nil {
		return 0, err
	}
	twin, _ := integrators.ByName[V](integrator)

	x := append([]dynamo.Body[V](nil), bodies...)
	xp := append([]dynamo.Body[V](nil), bodies...)
	var zero V
	shift := make([]float64, zero.Dim())
	shift[0] = d0
	offset, _ := dynamo.FromComponents[V](shift)
	xp[0].Pos = xp[0].Pos.Add(offset)

	field := physics.NewGravity[V](g)
	sumLog := 0.0
	for tick := 1; tick <= ticks; tick++ {
		base.Step(field, x, dt)
		twin.Step(field, xp, dt)

		sep := separation(x, xp)
		if !(sep > 0) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("%w at tick %d", ErrDiverged, tick)
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i].Pos = x[i].Pos.Add(xp[i].Pos.Sub(x[i].Pos).Scale(scale))
			xp[i].Vel = x[i].Vel.Add(xp[i].Vel.Sub(x[i].Vel).Scale(scale))
		}
	}
	return sumLog / (float64(ticks) * dt), nil
}

// separation is the Euclidean distance between two configurations in
// phase space, positions and velocities of every body together.
func separation[V dynamo.Vector[V]](a, b []dynamo.Body[V]) float64 {
	sum := 0.0
	for i := range a {
		dp := b[i].Pos.Sub(a[i].Pos)
		dv := b[i].Vel.Sub(a[i].Vel)
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}
