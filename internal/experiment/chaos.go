package experiment

import (
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Lyapunov loads the bodies named by cfg and estimates their largest
// Lyapunov exponent over ticks steps of cfg.Dt. Partially loaded input is
// used as read, the same way New does.
func Lyapunov(cfg *config.Config, ticks int, d0 float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	var loadErr error
	if cfg.Dimension == 3 {
		bodies, err := loadBodies[dynamo.Vec3](cfg, &loadErr)
		if err != nil {
			return 0, err
		}
		return analysis.Lyapunov(bodies, cfg.Integrator, cfg.G, cfg.Dt, ticks, d0)
	}
	bodies, err := loadBodies[dynamo.Vec2](cfg, &loadErr)
	if err != nil {
		return 0, err
	}
	return analysis.Lyapunov(bodies, cfg.Integrator, cfg.G, cfg.Dt, ticks, d0)
}
