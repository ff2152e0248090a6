package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dimension != 2 {
		t.Errorf("expected dimension 2, got %d", cfg.Dimension)
	}
	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.Dt != 1.0 || cfg.G != 1.0 {
		t.Errorf("expected dt=1 and G=1, got dt=%v G=%v", cfg.Dt, cfg.G)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	b := cfg.Bounds2()
	if b.X != 42 || b.Y != 42 {
		t.Errorf("expected bounds (42, 42), got %v", b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"dimension", func(c *Config) { c.Dimension = 4 }, nil},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrBadTimestep},
		{"integrator", func(c *Config) { c.Integrator = "rk45" }, dynamo.ErrUnknownIntegrator},
		{"collision", func(c *Config) { c.Collision = "elastic" }, nil},
		{"swept in 3D", func(c *Config) { c.Dimension = 3; c.Collision = CollisionSwept }, nil},
		{"max ticks", func(c *Config) { c.MaxTicks = -1 }, nil},
		{"unit", func(c *Config) { c.Display.Unit = 0 }, nil},
		{"margin", func(c *Config) { c.Display.Margin = -1 }, nil},
		{"body dimension", func(c *Config) {
			c.Bodies = []BodyConfig{{Mass: 1, Pos: []float64{0, 0, 0}, Vel: []float64{0, 0}}}
		}, dynamo.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravsim.yaml")

	cfg := GetPreset("trio3d")
	cfg.MaxTicks = 500
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Dimension != 3 || loaded.MaxTicks != 500 || loaded.Preset != "trio3d" {
		t.Errorf("unexpected config %+v", loaded)
	}
	if len(loaded.Bodies) != 3 || loaded.Bodies[1].Vel[1] != 0.6 {
		t.Errorf("bodies not preserved: %+v", loaded.Bodies)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("dt: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 0.5 {
		t.Errorf("expected dt 0.5, got %v", cfg.Dt)
	}
	if cfg.Integrator != "rk4" || cfg.Display.Unit != 10 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("merge")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
	if len(cfg.Bodies) != 2 || cfg.Bodies[1].Pos[0] != 0.05 {
		t.Errorf("unexpected bodies %+v", cfg.Bodies)
	}

	cfg.Bodies[0].Pos[0] = 99
	if Presets["merge"].Bodies[0].Pos[0] != 0 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestBodies(t *testing.T) {
	in := []BodyConfig{{Mass: 2, Pos: []float64{1, 2, 3}, Vel: []float64{0, 0, -1}}}

	bodies, err := Bodies[dynamo.Vec3](in)
	if err != nil {
		t.Fatalf("Bodies: %v", err)
	}
	if bodies[0].Pos != (dynamo.Vec3{X: 1, Y: 2, Z: 3}) || bodies[0].Vel.Z != -1 {
		t.Errorf("unexpected body %+v", bodies[0])
	}

	if _, err := Bodies[dynamo.Vec2](in); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	back := FromBodies(bodies)
	if back[0].Mass != 2 || len(back[0].Pos) != 3 {
		t.Errorf("FromBodies = %+v", back)
	}

	bad := []BodyConfig{{Mass: -1, Pos: []float64{0, 0}, Vel: []float64{0, 0}}}
	if _, err := Bodies[dynamo.Vec2](bad); !errors.Is(err, dynamo.ErrNonPositiveMass) {
		t.Errorf("expected ErrNonPositiveMass, got %v", err)
	}
}
