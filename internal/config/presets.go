package config

import "sort"

// Presets are built-in starting configurations, keyed by name.
var Presets = map[string]*Config{
	"binary": {
		Dimension: 2, Integrator: "rk4", Dt: 0.1, G: 1, MaxTicks: 2000,
		Display: Display{Width: 800, Height: 800, Unit: 10, Margin: 2},
		Bodies: []BodyConfig{
			{Mass: 1, Pos: []float64{-5, 0}, Vel: []float64{0, -0.2236068}},
			{Mass: 1, Pos: []float64{5, 0}, Vel: []float64{0, 0.2236068}},
		},
	},
	"figure8": {
		Dimension: 2, Integrator: "rk4", Dt: 0.01, G: 1, MaxTicks: 2000,
		Display: Display{Width: 800, Height: 800, Unit: 200, Margin: 2},
		Bodies: []BodyConfig{
			{Mass: 1, Pos: []float64{0.97000436, -0.24308753}, Vel: []float64{0.466203685, 0.43236573}},
			{Mass: 1, Pos: []float64{-0.97000436, 0.24308753}, Vel: []float64{0.466203685, 0.43236573}},
			{Mass: 1, Pos: []float64{0, 0}, Vel: []float64{-0.93240737, -0.86473146}},
		},
	},
	// The pair merges on the second tick, after the first one has thrown
	// it apart; the wide display keeps it in bounds until then.
	"merge": {
		Dimension: 2, Integrator: "rk4", Dt: 1, G: 1, MaxTicks: 10,
		Display: Display{Width: 800, Height: 800, Unit: 2, Margin: 2},
		Bodies: []BodyConfig{
			{Mass: 1, Pos: []float64{0, 0}, Vel: []float64{0, 0}},
			{Mass: 1, Pos: []float64{0.05, 0}, Vel: []float64{0, 0}},
		},
	},
	"trio3d": {
		Dimension: 3, Integrator: "rk4", Dt: 0.05, G: 1, MaxTicks: 2000,
		Display: Display{Width: 800, Height: 800, Depth: 800, Unit: 10, Margin: 2},
		Bodies: []BodyConfig{
			{Mass: 3, Pos: []float64{0, 0, 0}, Vel: []float64{0, 0, 0}},
			{Mass: 0.5, Pos: []float64{8, 0, 0}, Vel: []float64{0, 0.6, 0.1}},
			{Mass: 0.5, Pos: []float64{-8, 0, 1}, Vel: []float64{0, -0.6, -0.1}},
		},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in,
// or nil when there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Dimension = p.Dimension
	cfg.Integrator = p.Integrator
	cfg.Dt = p.Dt
	cfg.G = p.G
	cfg.MaxTicks = p.MaxTicks
	cfg.Display = p.Display
	if cfg.Display.Depth == 0 {
		cfg.Display.Depth = DefaultDepth
	}
	cfg.Preset = name
	cfg.Bodies = make([]BodyConfig, len(p.Bodies))
	for i, b := range p.Bodies {
		cfg.Bodies[i] = BodyConfig{
			Mass: b.Mass,
			Pos:  append([]float64(nil), b.Pos...),
			Vel:  append([]float64(nil), b.Vel...),
		}
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
