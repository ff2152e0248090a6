package optim

import (
	"context"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
)

func TestGridSearchPicksSmallestDrift(t *testing.T) {
	base := config.GetPreset("binary")
	base.MaxTicks = 200

	gs, err := NewGridSearch([]string{"dt"}, [][]float64{{2, 0.5, 1}})
	if err != nil {
		t.Fatal(err)
	}
	best, err := gs.Search(context.Background(), base, experiment.NewRegistry(), "energy_drift")
	if err != nil {
		t.Fatal(err)
	}
	if best.Tried != 3 || best.Failed != 0 {
		t.Errorf("tried=%d failed=%d", best.Tried, best.Failed)
	}
	if best.Params["dt"] != 0.5 {
		t.Errorf("best dt = %v, want 0.5", best.Params["dt"])
	}
	if base.Dt != config.Presets["binary"].Dt {
		t.Error("search modified the base config")
	}
}

func TestGridSearchCountsFailures(t *testing.T) {
	base := config.GetPreset("binary")
	base.MaxTicks = 10

	gs, err := NewGridSearch([]string{"dt", "g"}, [][]float64{{0, 0.1}, {1}})
	if err != nil {
		t.Fatal(err)
	}
	best, err := gs.Search(context.Background(), base, experiment.NewRegistry(), "energy_drift")
	if err != nil {
		t.Fatal(err)
	}
	if best.Tried != 2 || best.Failed != 1 {
		t.Errorf("tried=%d failed=%d, want 2 and 1", best.Tried, best.Failed)
	}
	if best.Params["dt"] != 0.1 || best.Params["g"] != 1 {
		t.Errorf("best = %v", best.Params)
	}
}

func TestGridSearchErrors(t *testing.T) {
	if _, err := NewGridSearch([]string{"dt"}, nil); err == nil {
		t.Error("mismatched lists accepted")
	}
	if _, err := NewGridSearch([]string{"dt"}, [][]float64{{}}); err == nil {
		t.Error("empty value list accepted")
	}

	base := config.GetPreset("binary")
	base.MaxTicks = 5
	gs, _ := NewGridSearch([]string{"spin"}, [][]float64{{1}})
	if _, err := gs.Search(context.Background(), base, nil, "energy_drift"); err == nil {
		t.Error("unknown parameter accepted")
	}

	gs, _ = NewGridSearch([]string{"dt"}, [][]float64{{0.1}})
	if _, err := gs.Search(context.Background(), base, nil, "nope"); err == nil {
		t.Error("unknown metric accepted")
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gs, _ := NewGridSearch([]string{"dt"}, [][]float64{{0.1}})
	if _, err := gs.Search(ctx, config.GetPreset("binary"), nil, "energy_drift"); err == nil {
		t.Error("cancelled search returned no error")
	}
}
