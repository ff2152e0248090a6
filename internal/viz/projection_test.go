package viz

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestPlanarProject(t *testing.T) {
	p := NewPlanar(dynamo.Vec2{X: 10, Y: 10})

	tests := []struct {
		name   string
		pos    []float64
		x, y   int
		inside bool
	}{
		{"origin", []float64{0, 0}, 50, 50, true},
		{"upper right", []float64{5, 5}, 75, 25, true},
		{"lower left", []float64{-5, -5}, 25, 75, true},
		{"right edge", []float64{10, 0}, 100, 50, false},
		{"too short", []float64{1}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, _, ok := p.Project(tt.pos, 100, 100)
			if ok != tt.inside {
				t.Fatalf("ok = %v, want %v", ok, tt.inside)
			}
			if ok && (x != tt.x || y != tt.y) {
				t.Errorf("got (%d,%d), want (%d,%d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestPlanarFitsNarrowAxis(t *testing.T) {
	p := NewPlanar(dynamo.Vec2{X: 10, Y: 20})
	x, y, _, ok := p.Project([]float64{0, 20}, 100, 80)
	if !ok || y != 0 {
		t.Fatalf("top of the box should land on row 0, got (%d,%d) ok=%v", x, y, ok)
	}
	if x != 50 {
		t.Errorf("x = %d, want 50", x)
	}
}

func TestPlanarZoom(t *testing.T) {
	p := NewPlanar(dynamo.Vec2{X: 10, Y: 10})
	p.ZoomIn()
	x, _, _, _ := p.Project([]float64{5, 0}, 100, 100)
	if x != 80 {
		t.Errorf("zoomed x = %d, want 80", x)
	}
	for i := 0; i < 100; i++ {
		p.ZoomOut()
	}
	if p.Zoom != minZoom {
		t.Errorf("zoom = %v, want clamp at %v", p.Zoom, minZoom)
	}
}

func TestCameraProject(t *testing.T) {
	c := NewCamera(10)

	x, y, _, ok := c.Project([]float64{0, 0, 0}, 100, 100)
	if !ok || x != 50 || y != 50 {
		t.Fatalf("origin -> (%d,%d) ok=%v", x, y, ok)
	}

	x, y, _, ok = c.Project([]float64{5, 0, 0}, 100, 100)
	if !ok || x != 75 || y != 50 {
		t.Errorf("(5,0,0) -> (%d,%d) ok=%v, want (75,50)", x, y, ok)
	}

	if _, _, _, ok := c.Project([]float64{0, 0, 40}, 100, 100); ok {
		t.Error("point behind the eye reported visible")
	}
	if _, _, _, ok := c.Project([]float64{1, 2}, 100, 100); ok {
		t.Error("2D position accepted by camera")
	}
}

func TestCameraPerspective(t *testing.T) {
	c := NewCamera(10)
	near, _, _, _ := c.Project([]float64{2, 0, 10}, 100, 100)
	far, _, _, _ := c.Project([]float64{2, 0, -10}, 100, 100)
	if near-50 <= far-50 {
		t.Errorf("nearer point should project further from centre: near=%d far=%d", near, far)
	}
}

func TestCameraRotation(t *testing.T) {
	c := NewCamera(10)
	c.RotateY(math.Pi / 2)

	x, y, depth, ok := c.Project([]float64{5, 0, 0}, 100, 100)
	if !ok || x != 50 || y != 50 {
		t.Errorf("rotated point -> (%d,%d) ok=%v, want centre", x, y, ok)
	}
	if math.Abs(depth+0.5) > 1e-9 {
		t.Errorf("depth = %v, want -0.5", depth)
	}

	r := c.RotatePoint(dynamo.Vec3{X: 1, Y: 2, Z: 3})
	if math.Abs(r.Norm()-math.Sqrt(14)) > 1e-12 {
		t.Errorf("rotation changed length: %v", r.Norm())
	}
}

func TestDrawAxes(t *testing.T) {
	cv := NewCanvas(20, 10)
	DrawAxes(cv, NewCamera(10), 5)
	w, h := cv.Dots()
	if !cv.IsSet(w/2, h/2) {
		t.Error("origin not drawn")
	}
	if !cv.IsSet(w/2+int(math.Round(0.5*float64(min(w, h))/2)), h/2) {
		t.Error("x axis end not drawn")
	}
}
