package experiment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
)

const scenarioYAML = `name: smoke
description: merge and orbit side by side
steps:
  - name: merge
    preset: merge
  - name: binary-euler
    preset: binary
    integrator: euler
    max_ticks: 40
  - preset: trio3d
    max_ticks: 25
`

func TestScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	results, err := RunScenario(context.Background(), sc, NewRegistry())
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if results[0].Name != "merge" || results[0].Result.Merges != 1 {
		t.Errorf("merge step: %+v", results[0].Result)
	}
	if results[1].Result.Ticks != 40 {
		t.Errorf("binary step ran %d ticks", results[1].Result.Ticks)
	}
	if results[2].Name != "step-3" || results[2].Result.Ticks != 25 {
		t.Errorf("trio step: %s %+v", results[2].Name, results[2].Result)
	}
}

func TestScenarioStepConfig(t *testing.T) {
	cfg, err := ScenarioStep{Preset: "figure8", Dt: 0.02, Integrator: "verlet"}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dt != 0.02 || cfg.Integrator != "verlet" || len(cfg.Bodies) != 3 {
		t.Errorf("unexpected config %+v", cfg)
	}

	cfg, err = ScenarioStep{Preset: "binary", Input: "bodies.txt"}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input != "bodies.txt" || cfg.Bodies != nil {
		t.Errorf("input should replace preset bodies: %+v", cfg)
	}

	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestScenarioBuildError(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Preset: "binary"}, {Preset: "binary", Integrator: "rk45"}}}
	if _, err := RunScenario(context.Background(), sc, nil); err == nil {
		t.Error("expected build error")
	}
}

func TestSweep(t *testing.T) {
	base := config.GetPreset("binary")
	base.MaxTicks = 20

	results, err := RunSweep(context.Background(), &Sweep{Base: base, Param: "dt", Min: 0.05, Max: 0.2, Steps: 4}, nil)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		want := 20 * r.Value
		if r.Result.Ticks != 20 || r.Result.Time < want-1e-9 || r.Result.Time > want+1e-9 {
			t.Errorf("sweep %d: dt=%v ticks=%d time=%v", i, r.Value, r.Result.Ticks, r.Result.Time)
		}
	}
	if base.Dt != 0.1 {
		t.Errorf("sweep mutated the base config: dt=%v", base.Dt)
	}

	if _, err := RunSweep(context.Background(), &Sweep{Base: base, Param: "mass", Min: 1, Max: 2, Steps: 2}, nil); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestMonteCarlo(t *testing.T) {
	base := config.GetPreset("binary")
	base.MaxTicks = 30

	results, err := RunMonteCarlo(context.Background(), &MonteCarlo{Base: base, Perturbation: 0.01, Trials: 5, Seed: 7}, nil)
	if err != nil {
		t.Fatalf("RunMonteCarlo: %v", err)
	}
	bounded, escaped := MonteCarloStats(results)
	if bounded != 5 || escaped != 0 {
		t.Errorf("expected all bounded, got %d bounded %d escaped", bounded, escaped)
	}
	if base.Bodies[0].Pos[0] != -5 {
		t.Errorf("monte carlo mutated the base bodies: %v", base.Bodies[0].Pos)
	}

	base.MaxTicks = 0
	if _, err := RunMonteCarlo(context.Background(), &MonteCarlo{Base: base, Trials: 1}, nil); err == nil {
		t.Error("expected error without a tick budget")
	}
}
