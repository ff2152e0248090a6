package sim

import (
	"context"
	"sync"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Runnable is a session of either dimension.
type Runnable interface {
	Run(ctx context.Context, shouldContinue func() bool) (int, error)
	Result() *dynamo.Result
}

// Ensemble runs independent sessions side by side. Every session owns its
// own store, so each one still ticks on a single goroutine.
type Ensemble struct {
	runs []Runnable
}

func NewEnsemble(runs ...Runnable) *Ensemble {
	return &Ensemble{runs: runs}
}

func (e *Ensemble) Add(r Runnable) { e.runs = append(e.runs, r) }
func (e *Ensemble) Len() int       { return len(e.runs) }

// Run drives every session to completion and returns their results in
// order. The first error encountered is returned alongside all results.
func (e *Ensemble) Run(ctx context.Context) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(e.runs))
	errs := make([]error, len(e.runs))

	var wg sync.WaitGroup
	for i, r := range e.runs {
		wg.Add(1)
		go func(idx int, r Runnable) {
			defer wg.Done()
			_, errs[idx] = r.Run(ctx, nil)
			results[idx] = r.Result()
		}(i, r)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
