package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/storage"
)

// Runner is a session of either dimension, as seen by the CLI and viewer.
type Runner interface {
	Tick() bool
	Run(ctx context.Context, shouldContinue func() bool) (int, error)
	InBounds() bool
	State() dynamo.FrameState
	Result() *dynamo.Result
	Ticks() int
	Elapsed() float64
	Merges() int
	Len() int
	Energy() float64
	Err() error
}

type Experiment struct {
	cfg     *config.Config
	runner  Runner
	loadErr error
	observe func(func(dynamo.FrameState))
}

// New loads the initial bodies named by cfg and builds a session for them.
// Bodies come from cfg.Input when set, otherwise from cfg.Bodies.
//
// A partially readable input file is not an error: the bodies read before
// the bad line are simulated and the parse error is kept in LoadErr.
func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}
	e := &Experiment{cfg: cfg}

	switch cfg.Dimension {
	case 3:
		bodies, err := loadBodies[dynamo.Vec3](cfg, &e.loadErr)
		if err != nil {
			return nil, err
		}
		s, err := reg.Spatial(cfg, bodies)
		if err != nil {
			return nil, err
		}
		e.runner = s
		e.observe = func(fn func(dynamo.FrameState)) {
			s.AddObserver(dynamo.ObserverFunc[dynamo.Vec3](func(f dynamo.Frame[dynamo.Vec3]) { fn(f.State()) }))
		}
	default:
		bodies, err := loadBodies[dynamo.Vec2](cfg, &e.loadErr)
		if err != nil {
			return nil, err
		}
		s, err := reg.Planar(cfg, bodies)
		if err != nil {
			return nil, err
		}
		e.runner = s
		e.observe = func(fn func(dynamo.FrameState)) {
			s.AddObserver(dynamo.ObserverFunc[dynamo.Vec2](func(f dynamo.Frame[dynamo.Vec2]) { fn(f.State()) }))
		}
	}
	return e, nil
}

func loadBodies[V dynamo.Vector[V]](cfg *config.Config, loadErr *error) ([]dynamo.Body[V], error) {
	if cfg.Input == "" {
		return config.Bodies[V](cfg.Bodies)
	}
	// A file that cannot be read loads as zero bodies; the session then
	// ends before its first tick.
	bodies, err := storage.ReadFile[V](cfg.Input)
	if err != nil {
		*loadErr = fmt.Errorf("%s: %w", cfg.Input, err)
	}
	return bodies, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }
func (e *Experiment) Runner() Runner         { return e.runner }

// LoadErr reports why the input file was unreadable or only partly loaded.
func (e *Experiment) LoadErr() error { return e.loadErr }

// Observe registers fn to receive every frame after it is ticked.
func (e *Experiment) Observe(fn func(dynamo.FrameState)) { e.observe(fn) }

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	_, err := e.runner.Run(ctx, nil)
	return e.runner.Result(), err
}

func (e *Experiment) Result() *dynamo.Result { return e.runner.Result() }
