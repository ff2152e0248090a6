package sim

import "github.com/san-kum/gravsim/internal/dynamo"

const (
	// DefaultUnit is the number of display pixels per distance unit.
	DefaultUnit = 10.0
	// DefaultMargin extends the visible half-extent so bodies just off the
	// edge keep the session alive.
	DefaultMargin = 2.0
)

// ScreenBounds2 converts a w x h pixel display into a per-axis half-extent
// in simulation units: extent/unit/2 + margin.
func ScreenBounds2(w, h, unit, margin float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: w/unit/2 + margin,
		Y: h/unit/2 + margin,
	}
}

// ScreenBounds3 is ScreenBounds2 with a depth axis.
func ScreenBounds3(w, h, d, unit, margin float64) dynamo.Vec3 {
	return dynamo.Vec3{
		X: w/unit/2 + margin,
		Y: h/unit/2 + margin,
		Z: d/unit/2 + margin,
	}
}

// IsAnyBodyInBounds reports whether at least one body lies inside half on
// every axis. The test is per axis, not a bounding sphere. An empty slice
// is never in bounds.
func IsAnyBodyInBounds[V dynamo.Vector[V]](bodies []dynamo.Body[V], half V) bool {
	for i := range bodies {
		if bodies[i].Pos.InBox(half) {
			return true
		}
	}
	return false
}
