package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestLyapunovFreeParticlesIsZero(t *testing.T) {
	bodies := []dynamo.Body[dynamo.Vec2]{
		{Mass: 1, Pos: dynamo.Vec2{X: -10}, Vel: dynamo.Vec2{Y: 1}},
		{Mass: 1, Pos: dynamo.Vec2{X: 10}, Vel: dynamo.Vec2{Y: -1}},
	}
	l, err := Lyapunov(bodies, "rk4", 0, 0.1, 100, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(l) > 1e-6 {
		t.Errorf("free particles gave exponent %v, want 0", l)
	}
}

func TestLyapunovDoesNotMutateInput(t *testing.T) {
	bodies := []dynamo.Body[dynamo.Vec3]{
		{Mass: 1, Pos: dynamo.Vec3{X: -1}, Vel: dynamo.Vec3{Y: -0.5}},
		{Mass: 1, Pos: dynamo.Vec3{X: 1}, Vel: dynamo.Vec3{Y: 0.5}},
	}
	orig := append([]dynamo.Body[dynamo.Vec3](nil), bodies...)

	l, err := Lyapunov(bodies, "verlet", 1, 0.01, 500, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(l) || math.IsInf(l, 0) {
		t.Errorf("exponent = %v", l)
	}
	for i := range bodies {
		if bodies[i] != orig[i] {
			t.Errorf("body %d changed: %+v", i, bodies[i])
		}
	}
}

func TestLyapunovCoincidentBodies(t *testing.T) {
	bodies := []dynamo.Body[dynamo.Vec2]{
		{Mass: 1},
		{Mass: 1},
	}
	_, err := Lyapunov(bodies, "rk4", 1, 0.1, 10, 1e-6)
	if !errors.Is(err, ErrDiverged) {
		t.Errorf("err = %v, want ErrDiverged", err)
	}
}

func TestLyapunovInvalidArgs(t *testing.T) {
	one := []dynamo.Body[dynamo.Vec2]{{Mass: 1}}
	tests := []struct {
		name   string
		bodies []dynamo.Body[dynamo.Vec2]
		integ  string
		dt     float64
		ticks  int
		d0     float64
	}{
		{"no bodies", nil, "rk4", 0.1, 10, 1e-6},
		{"zero dt", one, "rk4", 0, 10, 1e-6},
		{"no ticks", one, "rk4", 0.1, 0, 1e-6},
		{"zero d0", one, "rk4", 0.1, 10, 0},
		{"unknown integrator", one, "leapfrog", 0.1, 10, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Lyapunov(tt.bodies, tt.integ, 1, tt.dt, tt.ticks, tt.d0); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
