package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is the set of fixed-dimension tuples the kernel is generic over.
// Every operation is pure; callers write v = v.Add(w) for an in-place update.
type Vector[V any] interface {
	Vec2 | Vec3
	Add(w V) V
	Sub(w V) V
	Scale(k float64) V
	Dot(w V) float64
	Norm() float64
	// InBox reports whether |v_k| <= half_k holds on every axis.
	InBox(half V) bool
	Components() []float64
	Dim() int
}

// Distance returns the Euclidean norm of a-b.
func Distance[V Vector[V]](a, b V) float64 {
	return a.Sub(b).Norm()
}

// IsFinite reports whether no component is NaN or Inf.
func IsFinite[V Vector[V]](v V) bool {
	for _, c := range v.Components() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FromComponents builds a vector of V's dimension from c.
// It returns false when len(c) does not match.
func FromComponents[V Vector[V]](c []float64) (V, bool) {
	var zero V
	if len(c) != zero.Dim() {
		return zero, false
	}
	var out any
	switch any(zero).(type) {
	case Vec2:
		out = Vec2{X: c[0], Y: c[1]}
	case Vec3:
		out = Vec3{X: c[0], Y: c[1], Z: c[2]}
	}
	return out.(V), true
}

// Vec2 is a planar vector.
type Vec2 r2.Vec

func (v Vec2) Add(w Vec2) Vec2       { return Vec2(r2.Add(r2.Vec(v), r2.Vec(w))) }
func (v Vec2) Sub(w Vec2) Vec2       { return Vec2(r2.Sub(r2.Vec(v), r2.Vec(w))) }
func (v Vec2) Scale(k float64) Vec2  { return Vec2(r2.Scale(k, r2.Vec(v))) }
func (v Vec2) Dot(w Vec2) float64    { return r2.Dot(r2.Vec(v), r2.Vec(w)) }
func (v Vec2) Norm() float64         { return r2.Norm(r2.Vec(v)) }
func (v Vec2) Components() []float64 { return []float64{v.X, v.Y} }
func (v Vec2) Dim() int              { return 2 }

func (v Vec2) InBox(half Vec2) bool {
	return math.Abs(v.X) <= half.X && math.Abs(v.Y) <= half.Y
}

// Vec3 is a spatial vector.
type Vec3 r3.Vec

func (v Vec3) Add(w Vec3) Vec3       { return Vec3(r3.Add(r3.Vec(v), r3.Vec(w))) }
func (v Vec3) Sub(w Vec3) Vec3       { return Vec3(r3.Sub(r3.Vec(v), r3.Vec(w))) }
func (v Vec3) Scale(k float64) Vec3  { return Vec3(r3.Scale(k, r3.Vec(v))) }
func (v Vec3) Dot(w Vec3) float64    { return r3.Dot(r3.Vec(v), r3.Vec(w)) }
func (v Vec3) Norm() float64         { return r3.Norm(r3.Vec(v)) }
func (v Vec3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }
func (v Vec3) Dim() int              { return 3 }

func (v Vec3) InBox(half Vec3) bool {
	return math.Abs(v.X) <= half.X && math.Abs(v.Y) <= half.Y && math.Abs(v.Z) <= half.Z
}
