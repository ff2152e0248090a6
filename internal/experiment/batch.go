package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

// Scenario is a batch of independent runs described in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides any
// field that is set.
type ScenarioStep struct {
	Name       string  `yaml:"name"`
	Preset     string  `yaml:"preset"`
	Input      string  `yaml:"input"`
	Dimension  int     `yaml:"dimension"`
	Integrator string  `yaml:"integrator"`
	Collision  string  `yaml:"collision"`
	Dt         float64 `yaml:"dt"`
	G          float64 `yaml:"g"`
	MaxTicks   int     `yaml:"max_ticks"`
}

// StepResult pairs a step with its outcome.
type StepResult struct {
	Name    string
	Result  *dynamo.Result
	LoadErr error
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Config resolves the step into a full configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Input != "" {
		cfg.Input = s.Input
		cfg.Bodies = nil
	}
	if s.Dimension != 0 {
		cfg.Dimension = s.Dimension
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Collision != "" {
		cfg.Collision = s.Collision
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.G != 0 {
		cfg.G = s.G
	}
	if s.MaxTicks != 0 {
		cfg.MaxTicks = s.MaxTicks
	}
	return cfg, nil
}

// RunScenario builds every step up front, then runs them concurrently.
// A step that fails to build aborts the scenario before anything runs.
func RunScenario(ctx context.Context, scenario *Scenario, reg *Registry) ([]StepResult, error) {
	out := make([]StepResult, len(scenario.Steps))
	ens := sim.NewEnsemble()

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := New(cfg, reg)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		out[i] = StepResult{Name: name, LoadErr: exp.LoadErr()}
		ens.Add(exp.Runner())
	}

	results, err := ens.Run(ctx)
	for i := range out {
		out[i].Result = results[i]
	}
	return out, err
}

// Sweep varies one setting of Base across a linear range.
type Sweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value  float64
	Result *dynamo.Result
}

// SetParam sets the named numeric setting of cfg. The names are the ones
// Sweep and the grid search accept: dt, g, tolerance and margin.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "dt":
		cfg.Dt = v
	case "g":
		cfg.G = v
	case "tolerance":
		cfg.Tolerance = v
	case "margin":
		cfg.Display.Margin = v
	default:
		return fmt.Errorf("unknown parameter %q (want dt, g, tolerance or margin)", name)
	}
	return nil
}

func RunSweep(ctx context.Context, sweep *Sweep, reg *Registry) ([]SweepResult, error) {
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.Steps)
	}

	step := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	out := make([]SweepResult, sweep.Steps)
	ens := sim.NewEnsemble()

	for i := 0; i < sweep.Steps; i++ {
		v := sweep.Min + float64(i)*step
		cfg := *sweep.Base
		if err := SetParam(&cfg, sweep.Param, v); err != nil {
			return nil, err
		}
		exp, err := New(&cfg, reg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		out[i].Value = v
		ens.Add(exp.Runner())
	}

	results, err := ens.Run(ctx)
	for i := range out {
		out[i].Result = results[i]
	}
	return out, err
}

// MonteCarlo perturbs every initial position of Base uniformly within
// +/-Perturbation on each axis and runs Trials sessions of MaxTicks.
type MonteCarlo struct {
	Base         *config.Config
	Perturbation float64
	Trials       int
	Seed         int64
}

type MonteCarloResult struct {
	Trial  int
	Result *dynamo.Result
	// Bounded is true when the trial used its whole tick budget with at
	// least one body still in bounds.
	Bounded bool
}

func RunMonteCarlo(ctx context.Context, mc *MonteCarlo, reg *Registry) ([]MonteCarloResult, error) {
	if mc.Base.MaxTicks <= 0 {
		return nil, fmt.Errorf("monte carlo needs a positive max_ticks")
	}
	if mc.Base.Input != "" {
		return nil, fmt.Errorf("monte carlo perturbs inline bodies, not input files")
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	out := make([]MonteCarloResult, mc.Trials)
	runners := make([]Runner, mc.Trials)
	ens := sim.NewEnsemble()

	for trial := 0; trial < mc.Trials; trial++ {
		cfg := *mc.Base
		cfg.Bodies = make([]config.BodyConfig, len(mc.Base.Bodies))
		for i, b := range mc.Base.Bodies {
			pos := make([]float64, len(b.Pos))
			for k, p := range b.Pos {
				pos[k] = p + (rng.Float64()-0.5)*2*mc.Perturbation
			}
			cfg.Bodies[i] = config.BodyConfig{Mass: b.Mass, Pos: pos, Vel: b.Vel}
		}

		exp, err := New(&cfg, reg)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		runners[trial] = exp.Runner()
		ens.Add(exp.Runner())
	}

	results, err := ens.Run(ctx)
	for i := range out {
		out[i] = MonteCarloResult{
			Trial:   i,
			Result:  results[i],
			Bounded: results[i].Ticks == mc.Base.MaxTicks && runners[i].InBounds(),
		}
	}
	return out, err
}

// MonteCarloStats counts bounded and escaped trials.
func MonteCarloStats(results []MonteCarloResult) (bounded, escaped int) {
	for _, r := range results {
		if r.Bounded {
			bounded++
		} else {
			escaped++
		}
	}
	return
}
