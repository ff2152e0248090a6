// Package analysis characterises n-body configurations.
//
//   - [Lyapunov]: largest Lyapunov exponent via twin-trajectory separation
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.Lyapunov(bodies, "rk4", 1, 0.01, 5000, 1e-8)
//	if err == nil && lambda > 0 {
//	    // configuration is chaotic
//	}
package analysis
