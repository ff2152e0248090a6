package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// MassConservation is the largest relative deviation of total mass from
// the first observed frame. Merges must keep it at rounding level.
type MassConservation[V dynamo.Vector[V]] struct {
	name     string
	initial  float64
	maxDelta float64
	samples  int
}

func NewMassConservation[V dynamo.Vector[V]]() *MassConservation[V] {
	return &MassConservation[V]{name: "mass_error"}
}

func (m *MassConservation[V]) Name() string { return m.name }

func (m *MassConservation[V]) Observe(f dynamo.Frame[V]) {
	total := dynamo.TotalMass(f.Bodies)
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++
	if m.initial > 0 {
		m.maxDelta = math.Max(m.maxDelta, math.Abs(total-m.initial)/m.initial)
	}
}

func (m *MassConservation[V]) Value() float64 { return m.maxDelta }

func (m *MassConservation[V]) Reset() {
	m.initial = 0
	m.maxDelta = 0
	m.samples = 0
}

// MomentumDrift is the largest |P - P0| seen, where P is the total momentum.
type MomentumDrift[V dynamo.Vector[V]] struct {
	name     string
	initial  V
	maxDrift float64
	samples  int
}

func NewMomentumDrift[V dynamo.Vector[V]]() *MomentumDrift[V] {
	return &MomentumDrift[V]{name: "momentum_drift"}
}

func (m *MomentumDrift[V]) Name() string { return m.name }

func (m *MomentumDrift[V]) Observe(f dynamo.Frame[V]) {
	p := dynamo.TotalMomentum(f.Bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, dynamo.Distance(p, m.initial))
}

func (m *MomentumDrift[V]) Value() float64 { return m.maxDrift }

func (m *MomentumDrift[V]) Reset() {
	var zero V
	m.initial = zero
	m.maxDrift = 0
	m.samples = 0
}

// Merges counts frames in which a merge happened.
type Merges[V dynamo.Vector[V]] struct {
	name  string
	count int
}

func NewMerges[V dynamo.Vector[V]]() *Merges[V] {
	return &Merges[V]{name: "merges"}
}

func (m *Merges[V]) Name() string { return m.name }

func (m *Merges[V]) Observe(f dynamo.Frame[V]) {
	if f.Merged {
		m.count++
	}
}

func (m *Merges[V]) Value() float64 { return float64(m.count) }
func (m *Merges[V]) Reset()         { m.count = 0 }

// Standard returns the metric set attached to every run.
func Standard[V dynamo.Vector[V]](g float64) []dynamo.Metric[V] {
	return []dynamo.Metric[V]{
		NewEnergy[V](g),
		NewEnergyDrift[V](g),
		NewMassConservation[V](),
		NewMomentumDrift[V](),
		NewMerges[V](),
	}
}
