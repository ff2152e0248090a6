package integrators

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Default is the integrator used when none is named.
const Default = "rk4"

// ByName returns a fresh integrator. An empty name selects Default.
func ByName[V dynamo.Vector[V]](name string) (dynamo.Integrator[V], error) {
	switch name {
	case "", "rk4":
		return NewRK4[V](), nil
	case "euler":
		return NewEuler[V](), nil
	case "verlet":
		return NewVerlet[V](), nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
}

func Names() []string {
	return []string{"euler", "rk4", "verlet"}
}
