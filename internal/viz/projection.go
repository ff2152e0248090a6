package viz

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Projector maps world positions to canvas dots. ok is false for points
// that fall off the canvas or behind the camera.
type Projector interface {
	Project(pos []float64, w, h int) (x, y int, depth float64, ok bool)
	ZoomIn()
	ZoomOut()
}

const (
	minZoom = 0.1
	maxZoom = 10
)

// Planar looks straight down the z axis. The rectangle
// [-HalfX, HalfX] x [-HalfY, HalfY] fills the canvas at zoom 1.
type Planar struct {
	HalfX, HalfY float64
	Zoom         float64
}

func NewPlanar(half dynamo.Vec2) *Planar {
	return &Planar{HalfX: half.X, HalfY: half.Y, Zoom: 1}
}

func (p *Planar) ZoomIn()  { p.Zoom = math.Min(maxZoom, p.Zoom*1.2) }
func (p *Planar) ZoomOut() { p.Zoom = math.Max(minZoom, p.Zoom/1.2) }

func (p *Planar) Project(pos []float64, w, h int) (int, int, float64, bool) {
	if len(pos) < 2 || p.HalfX <= 0 || p.HalfY <= 0 {
		return 0, 0, 0, false
	}
	s := math.Min(float64(w)/(2*p.HalfX), float64(h)/(2*p.HalfY)) * p.Zoom
	x := int(math.Round(pos[0]*s)) + w/2
	y := int(math.Round(-pos[1]*s)) + h/2
	return x, y, 0, x >= 0 && x < w && y >= 0 && y < h
}

// Camera is a perspective view of a scene of radius Extent centred on the
// origin. Distance is the eye distance measured in scene radii.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Extent           float64
	Distance         float64
}

func NewCamera(extent float64) *Camera {
	return &Camera{Zoom: 1, Extent: extent, Distance: 4}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

// RotatePoint rotates p about x, then y, then z.
func (c *Camera) RotatePoint(p dynamo.Vec3) dynamo.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

func (c *Camera) Project(pos []float64, w, h int) (int, int, float64, bool) {
	if len(pos) < 3 || c.Extent <= 0 {
		return 0, 0, 0, false
	}
	p := c.RotatePoint(dynamo.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}).Scale(1 / c.Extent)
	const near = 0.05
	if p.Z >= c.Distance-near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - p.Z)
	s := float64(min(w, h)) / 2 * c.Zoom
	x := int(math.Round(p.X*persp*s)) + w/2
	y := int(math.Round(-p.Y*persp*s)) + h/2
	return x, y, p.Z, x >= 0 && x < w && y >= 0 && y < h
}

// DrawAxes draws the three world axes out to length from the origin.
func DrawAxes(cv *Canvas, cam *Camera, length float64) {
	w, h := cv.Dots()
	ox, oy, _, ok := cam.Project([]float64{0, 0, 0}, w, h)
	if !ok {
		return
	}
	for _, end := range [][]float64{{length, 0, 0}, {0, length, 0}, {0, 0, length}} {
		x, y, _, vis := cam.Project(end, w, h)
		if vis {
			cv.DrawLine(ox, oy, x, y)
		}
	}
}
