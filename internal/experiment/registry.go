package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// Registry maps names in a Config to kernel components.
type Registry struct {
	planar  map[string]func(tol float64) physics.Detector[dynamo.Vec2]
	spatial map[string]func(tol float64) physics.Detector[dynamo.Vec3]
}

func NewRegistry() *Registry {
	r := &Registry{
		planar:  make(map[string]func(float64) physics.Detector[dynamo.Vec2]),
		spatial: make(map[string]func(float64) physics.Detector[dynamo.Vec3]),
	}

	r.planar[config.CollisionApproach] = func(float64) physics.Detector[dynamo.Vec2] {
		return physics.ApproachRule[dynamo.Vec2]{}
	}
	r.planar[config.CollisionSwept] = func(tol float64) physics.Detector[dynamo.Vec2] {
		return physics.SweptRule{Tolerance: tol}
	}
	r.spatial[config.CollisionApproach] = func(float64) physics.Detector[dynamo.Vec3] {
		return physics.ApproachRule[dynamo.Vec3]{}
	}

	return r
}

func (r *Registry) ListIntegrators() []string { return integrators.Names() }

// ListCollisionRules returns the rule names available for dim.
func (r *Registry) ListCollisionRules(dim int) []string {
	var names []string
	if dim == 3 {
		for name := range r.spatial {
			names = append(names, name)
		}
	} else {
		for name := range r.planar {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Planar(cfg *config.Config, bodies []dynamo.Body[dynamo.Vec2]) (*sim.Session[dynamo.Vec2], error) {
	mk, ok := r.planar[collisionName(cfg)]
	if !ok {
		return nil, fmt.Errorf("unknown collision rule: %s", cfg.Collision)
	}
	return build(cfg, bodies, mk(cfg.Tolerance), cfg.Bounds2())
}

func (r *Registry) Spatial(cfg *config.Config, bodies []dynamo.Body[dynamo.Vec3]) (*sim.Session[dynamo.Vec3], error) {
	mk, ok := r.spatial[collisionName(cfg)]
	if !ok {
		return nil, fmt.Errorf("unknown collision rule for 3D: %s", cfg.Collision)
	}
	return build(cfg, bodies, mk(cfg.Tolerance), cfg.Bounds3())
}

func collisionName(cfg *config.Config) string {
	if cfg.Collision == "" {
		return config.CollisionApproach
	}
	return cfg.Collision
}

func build[V dynamo.Vector[V]](cfg *config.Config, bodies []dynamo.Body[V], det physics.Detector[V], bounds V) (*sim.Session[V], error) {
	integ, err := integrators.ByName[V](cfg.Integrator)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(dynamo.NewStore(bodies), integ, physics.NewCollider(det), bounds, cfg.Session())
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Standard[V](cfg.G) {
		s.AddMetric(m)
	}
	return s, nil
}
