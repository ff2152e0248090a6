package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	DefaultDimension = 2
	DefaultWidth     = 800.0
	DefaultHeight    = 800.0
	DefaultDepth     = 800.0
)

type Config struct {
	Dimension  int          `yaml:"dimension"`
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	G          float64      `yaml:"g"`
	Tolerance  float64      `yaml:"tolerance"`
	MaxTicks   int          `yaml:"max_ticks"`
	Collision  string       `yaml:"collision"`
	Input      string       `yaml:"input,omitempty"`
	Preset     string       `yaml:"preset,omitempty"`
	Display    Display      `yaml:"display"`
	Bodies     []BodyConfig `yaml:"bodies,omitempty"`
}

// Display describes the region a renderer shows. It also bounds the
// session: ticking stops once every body is outside it.
type Display struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
	Unit   float64 `yaml:"unit"`
	Margin float64 `yaml:"margin"`
}

// BodyConfig is one body in a config file or preset. Pos and Vel carry
// two or three components to match Dimension.
type BodyConfig struct {
	Mass float64   `yaml:"mass"`
	Pos  []float64 `yaml:"pos,flow"`
	Vel  []float64 `yaml:"vel,flow"`
}

const (
	CollisionApproach = "approach"
	CollisionSwept    = "swept"
)

func DefaultConfig() *Config {
	return &Config{
		Dimension:  DefaultDimension,
		Integrator: integrators.Default,
		Dt:         dynamo.DefaultDt,
		G:          dynamo.DefaultG,
		Tolerance:  dynamo.DefaultTolerance,
		Collision:  CollisionApproach,
		Display: Display{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Depth:  DefaultDepth,
			Unit:   sim.DefaultUnit,
			Margin: sim.DefaultMargin,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dimension != 2 && c.Dimension != 3 {
		return fmt.Errorf("dimension must be 2 or 3, got %d", c.Dimension)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: got %v", dynamo.ErrBadTimestep, c.Dt)
	}
	if c.Integrator != "" && !slices.Contains(integrators.Names(), c.Integrator) {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownIntegrator, c.Integrator)
	}
	switch c.Collision {
	case "", CollisionApproach:
	case CollisionSwept:
		if c.Dimension != 2 {
			return fmt.Errorf("collision %q is planar only", CollisionSwept)
		}
	default:
		return fmt.Errorf("unknown collision rule %q", c.Collision)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must be non-negative, got %d", c.MaxTicks)
	}
	d := c.Display
	if !(d.Unit > 0) || !(d.Width > 0) || !(d.Height > 0) {
		return fmt.Errorf("display unit, width and height must be positive")
	}
	if c.Dimension == 3 && !(d.Depth > 0) {
		return fmt.Errorf("display depth must be positive in 3D")
	}
	if d.Margin < 0 {
		return fmt.Errorf("display margin must be non-negative, got %v", d.Margin)
	}
	for i, b := range c.Bodies {
		if len(b.Pos) != c.Dimension || len(b.Vel) != c.Dimension {
			return fmt.Errorf("body %d: %w", i, dynamo.ErrDimensionMismatch)
		}
	}
	return nil
}

// Session returns the kernel settings held by c.
func (c *Config) Session() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.G = c.G
	cfg.Tolerance = c.Tolerance
	cfg.MaxTicks = c.MaxTicks
	return cfg
}

func (c *Config) Bounds2() dynamo.Vec2 {
	d := c.Display
	return sim.ScreenBounds2(d.Width, d.Height, d.Unit, d.Margin)
}

func (c *Config) Bounds3() dynamo.Vec3 {
	d := c.Display
	return sim.ScreenBounds3(d.Width, d.Height, d.Depth, d.Unit, d.Margin)
}

// HalfExtent is the in-bounds half-extent for the configured dimension.
func (c *Config) HalfExtent() []float64 {
	if c.Dimension == 3 {
		return c.Bounds3().Components()
	}
	return c.Bounds2().Components()
}

// Bodies converts body configs into kernel bodies of dimension V.
func Bodies[V dynamo.Vector[V]](in []BodyConfig) ([]dynamo.Body[V], error) {
	out := make([]dynamo.Body[V], 0, len(in))
	for i, b := range in {
		pos, ok := dynamo.FromComponents[V](b.Pos)
		if !ok {
			return nil, fmt.Errorf("body %d position: %w", i, dynamo.ErrDimensionMismatch)
		}
		vel, ok := dynamo.FromComponents[V](b.Vel)
		if !ok {
			return nil, fmt.Errorf("body %d velocity: %w", i, dynamo.ErrDimensionMismatch)
		}
		body := dynamo.Body[V]{Mass: b.Mass, Pos: pos, Vel: vel}
		if err := body.Valid(); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		out = append(out, body)
	}
	return out, nil
}

// FromBodies is the inverse of Bodies.
func FromBodies[V dynamo.Vector[V]](in []dynamo.Body[V]) []BodyConfig {
	out := make([]BodyConfig, len(in))
	for i, b := range in {
		out[i] = BodyConfig{Mass: b.Mass, Pos: b.Pos.Components(), Vel: b.Vel.Components()}
	}
	return out
}
