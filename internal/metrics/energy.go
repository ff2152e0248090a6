package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Energy reports the total energy of the most recent frame.
type Energy[V dynamo.Vector[V]] struct {
	name    string
	gravity *physics.Gravity[V]
	current float64
}

func NewEnergy[V dynamo.Vector[V]](g float64) *Energy[V] {
	return &Energy[V]{
		name:    "energy",
		gravity: physics.NewGravity[V](g),
	}
}

func (e *Energy[V]) Name() string { return e.name }

func (e *Energy[V]) Observe(f dynamo.Frame[V]) {
	e.current = physics.Energy(e.gravity, f.Bodies)
}

func (e *Energy[V]) Value() float64 { return e.current }

func (e *Energy[V]) Reset() { e.current = 0 }

// EnergyDrift tracks the largest relative change in total energy.
// Merges are inelastic, so the baseline restarts on every frame that
// follows a merge.
type EnergyDrift[V dynamo.Vector[V]] struct {
	name          string
	gravity       *physics.Gravity[V]
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift[V dynamo.Vector[V]](g float64) *EnergyDrift[V] {
	return &EnergyDrift[V]{
		name:    "energy_drift",
		gravity: physics.NewGravity[V](g),
	}
}

func (e *EnergyDrift[V]) Name() string { return e.name }

func (e *EnergyDrift[V]) Observe(f dynamo.Frame[V]) {
	energy := physics.Energy(e.gravity, f.Bodies)

	if e.samples == 0 || f.Merged {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift[V]) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift[V]) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
