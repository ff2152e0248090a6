package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

// Session owns one body store and drives it tick by tick.
//
// Each tick runs in a fixed order: the in-bounds check, then at most one
// merge, then one integrator step over the surviving bodies. A Session is
// not safe for concurrent use; renderers read Snapshot copies.
type Session[V dynamo.Vector[V]] struct {
	store      *dynamo.Store[V]
	field      dynamo.Field[V]
	integrator dynamo.Integrator[V]
	collider   *physics.Collider[V]
	bounds     V
	cfg        dynamo.Config

	ticks  int
	merges int
	last   physics.Event
	merged bool
	err    error

	metrics   []dynamo.Metric[V]
	observers []dynamo.Observer[V]
}

// New builds a session over store. A nil integrator selects RK4 and a nil
// collider selects the default approach rule.
func New[V dynamo.Vector[V]](store *dynamo.Store[V], integ dynamo.Integrator[V], collider *physics.Collider[V], bounds V, cfg dynamo.Config) (*Session[V], error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if store == nil {
		store = dynamo.NewStore[V](nil)
	}
	if cfg.ValidateState {
		if err := store.Validate(); err != nil {
			return nil, err
		}
	}
	if integ == nil {
		integ = integrators.NewRK4[V]()
	}
	if collider == nil {
		collider = physics.NewCollider[V](nil)
	}
	return &Session[V]{
		store:      store,
		field:      physics.NewGravity[V](cfg.G),
		integrator: integ,
		collider:   collider,
		bounds:     bounds,
		cfg:        cfg,
	}, nil
}

func validateConfig(cfg dynamo.Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: got %v", dynamo.ErrBadTimestep, cfg.Dt)
	}
	if math.IsNaN(cfg.G) || math.IsInf(cfg.G, 0) {
		return fmt.Errorf("gravitational constant must be finite, got %v", cfg.G)
	}
	if cfg.MaxTicks < 0 {
		return fmt.Errorf("max ticks must be non-negative, got %d", cfg.MaxTicks)
	}
	return nil
}

// AddMetric resets m, seeds it with the current state and observes every
// subsequent tick with it. The seed frame never reports a merge.
func (s *Session[V]) AddMetric(m dynamo.Metric[V]) {
	m.Reset()
	f := s.Snapshot()
	f.Merged, f.Absorbed = false, 0
	m.Observe(f)
	s.metrics = append(s.metrics, m)
}

func (s *Session[V]) AddObserver(o dynamo.Observer[V]) { s.observers = append(s.observers, o) }

// Tick advances the session by one step and reports whether the step ran.
// It returns false once every body has left the bounds, the tick limit is
// reached, or a previous tick produced an invalid state.
func (s *Session[V]) Tick() bool {
	if s.err != nil {
		return false
	}
	if s.cfg.MaxTicks > 0 && s.ticks >= s.cfg.MaxTicks {
		return false
	}
	if !IsAnyBodyInBounds(s.store.Bodies(), s.bounds) {
		return false
	}

	s.last, s.merged = s.collider.Resolve(s.store, s.cfg.Dt)
	if s.merged {
		s.merges++
	}
	s.integrator.Step(s.field, s.store.Bodies(), s.cfg.Dt)
	s.ticks++

	if s.cfg.ValidateState {
		if err := s.store.Validate(); err != nil {
			s.err = &dynamo.SimulationError{Tick: s.ticks, Time: s.Elapsed(), Wrapped: err}
			return false
		}
	}

	if len(s.metrics) > 0 || len(s.observers) > 0 {
		f := s.Snapshot()
		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, o := range s.observers {
			o.OnTick(f)
		}
	}
	return true
}

// Run ticks until the session ends, shouldContinue returns false, or ctx is
// cancelled. It returns the total number of ticks executed so far.
func (s *Session[V]) Run(ctx context.Context, shouldContinue func() bool) (int, error) {
	for {
		select {
		case <-ctx.Done():
			return s.ticks, ctx.Err()
		default:
		}
		if shouldContinue != nil && !shouldContinue() {
			break
		}
		if !s.Tick() {
			break
		}
	}
	return s.ticks, s.err
}

// Snapshot returns a copy of the live bodies and the elapsed time.
func (s *Session[V]) Snapshot() dynamo.Frame[V] {
	f := dynamo.Frame[V]{
		Tick:   s.ticks,
		Time:   s.Elapsed(),
		Bodies: s.store.Snapshot(),
		Merged: s.merged,
	}
	if s.merged {
		f.Absorbed = s.last.Absorbed
	}
	return f
}

// State is Snapshot in dimension-free form.
func (s *Session[V]) State() dynamo.FrameState { return s.Snapshot().State() }

// Elapsed is ticks * dt.
func (s *Session[V]) Elapsed() float64 { return float64(s.ticks) * s.cfg.Dt }

func (s *Session[V]) Ticks() int                       { return s.ticks }
func (s *Session[V]) Merges() int                      { return s.merges }
func (s *Session[V]) Len() int                         { return s.store.Len() }
func (s *Session[V]) Bounds() V                        { return s.bounds }
func (s *Session[V]) Config() dynamo.Config            { return s.cfg }
func (s *Session[V]) Integrator() dynamo.Integrator[V] { return s.integrator }

// Err returns the error that stopped the session, if any.
func (s *Session[V]) Err() error { return s.err }

// InBounds reports whether the next Tick would pass the bounds check.
func (s *Session[V]) InBounds() bool {
	return IsAnyBodyInBounds(s.store.Bodies(), s.bounds)
}

// Energy is the total kinetic plus potential energy of the live bodies.
func (s *Session[V]) Energy() float64 {
	return physics.Energy(physics.NewGravity[V](s.cfg.G), s.store.Bodies())
}

// Result summarises the session so far.
func (s *Session[V]) Result() *dynamo.Result {
	r := &dynamo.Result{
		Ticks:     s.ticks,
		Time:      s.Elapsed(),
		Merges:    s.merges,
		Remaining: s.store.Len(),
		Metrics:   make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}
