// Package optim searches session settings for the best value of a metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
)

// GridSearch tries every combination of the listed values and keeps the
// one with the smallest metric. Parameter names are those accepted by
// experiment.SetParam.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("need one value list per parameter (%d params, %d lists)", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Best is the winning combination of a search.
type Best struct {
	Params map[string]float64
	Value  float64
	Tried  int
	Failed int
}

// Search runs base once per combination. Combinations whose session cannot
// be built or stops with an error count as failed and never win; a NaN
// metric never wins either.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, reg *experiment.Registry, metricName string) (*Best, error) {
	best := &Best{Value: math.Inf(1)}
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), base, reg, metricName, best); err != nil {
		return nil, err
	}
	if best.Params == nil {
		return best, errors.New("no combination produced a usable result")
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	reg *experiment.Registry,
	metricName string,
	best *Best,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		best.Tried++
		cfg := *base
		for name, v := range current {
			if err := experiment.SetParam(&cfg, name, v); err != nil {
				return err
			}
		}
		exp, err := experiment.New(&cfg, reg)
		if err != nil {
			best.Failed++
			return nil
		}
		result, err := exp.Run(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			best.Failed++
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("unknown metric %q", metricName)
		}
		if val < best.Value {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, reg, metricName, best); err != nil {
			return err
		}
	}
	return nil
}
