package physics

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestGravity_TwoBody(t *testing.T) {
	g := NewGravity[dynamo.Vec2](1.0)
	bodies := []dynamo.Body[dynamo.Vec2]{
		{Mass: 1, Pos: dynamo.Vec2{X: 0}},
		{Mass: 3, Pos: dynamo.Vec2{X: 2}},
	}

	a0 := g.Acceleration(0, bodies)
	a1 := g.Acceleration(1, bodies)

	// G*m_j/r^2 toward the other body
	if math.Abs(a0.X-0.75) > 1e-12 || a0.Y != 0 {
		t.Errorf("a0 = %v, want (0.75, 0)", a0)
	}
	if math.Abs(a1.X+0.25) > 1e-12 || a1.Y != 0 {
		t.Errorf("a1 = %v, want (-0.25, 0)", a1)
	}
}

func TestGravity_ScalesWithG(t *testing.T) {
	bodies := []dynamo.Body[dynamo.Vec3]{
		{Mass: 1, Pos: dynamo.Vec3{}},
		{Mass: 1, Pos: dynamo.Vec3{Z: 1}},
	}
	a1 := NewGravity[dynamo.Vec3](1.0).Acceleration(0, bodies)
	a2 := NewGravity[dynamo.Vec3](2.5).Acceleration(0, bodies)
	if math.Abs(a2.Z-2.5*a1.Z) > 1e-12 {
		t.Errorf("acceleration does not scale with G: %v vs %v", a1, a2)
	}
}

func TestGravity_NewtonThirdLaw(t *testing.T) {
	g := NewGravity[dynamo.Vec3](1.0)
	bodies := []dynamo.Body[dynamo.Vec3]{
		{Mass: 1.0, Pos: dynamo.Vec3{X: 1, Y: 0.3, Z: -0.2}},
		{Mass: 2.0, Pos: dynamo.Vec3{X: -1, Y: 0.5, Z: 0.1}},
		{Mass: 0.5, Pos: dynamo.Vec3{X: 0.2, Y: -1.4, Z: 0.9}},
	}

	var net dynamo.Vec3
	for i := range bodies {
		net = net.Add(g.Acceleration(i, bodies).Scale(bodies[i].Mass))
	}
	if net.Norm() > 1e-12 {
		t.Errorf("internal forces do not cancel: %v", net)
	}
}

func TestGravity_SingleBodyFeelsNothing(t *testing.T) {
	g := NewGravity[dynamo.Vec2](1.0)
	bodies := []dynamo.Body[dynamo.Vec2]{{Mass: 5, Pos: dynamo.Vec2{X: 3, Y: 4}}}
	if a := g.Acceleration(0, bodies); a != (dynamo.Vec2{}) {
		t.Errorf("expected zero acceleration, got %v", a)
	}
}

func TestGravity_CoincidentIsNonFinite(t *testing.T) {
	g := NewGravity[dynamo.Vec2](1.0)
	bodies := []dynamo.Body[dynamo.Vec2]{
		{Mass: 1, Pos: dynamo.Vec2{X: 1, Y: 1}},
		{Mass: 1, Pos: dynamo.Vec2{X: 1, Y: 1}},
	}
	if a := g.Acceleration(0, bodies); dynamo.IsFinite(a) {
		t.Errorf("zero-distance acceleration should be non-finite, got %v", a)
	}
}

func TestEnergy(t *testing.T) {
	g := NewGravity[dynamo.Vec2](1.0)
	bodies := []dynamo.Body[dynamo.Vec2]{
		{Mass: 2, Pos: dynamo.Vec2{X: 0}, Vel: dynamo.Vec2{Y: 1}},
		{Mass: 1, Pos: dynamo.Vec2{X: 4}, Vel: dynamo.Vec2{Y: -2}},
	}
	// ke = 0.5*2*1 + 0.5*1*4 = 3, pe = -2*1/4 = -0.5
	if e := Energy(g, bodies); math.Abs(e-2.5) > 1e-12 {
		t.Errorf("Energy = %v, want 2.5", e)
	}
	// L = 2*(0*1) + 1*(4*-2) = -8
	if L := AngularMomentum(bodies); math.Abs(L+8) > 1e-12 {
		t.Errorf("AngularMomentum = %v, want -8", L)
	}
}
