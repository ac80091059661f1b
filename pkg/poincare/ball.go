// Package poincare implements operations on the Poincaré ball model of
// hyperbolic space: Möbius addition, exponential and logarithmic maps,
// Riemannian gradients, parallel transport, geodesic distance and the
// Fréchet mean.
//
// A point is a []float64 of any length lying in the open ball
// {x : c·‖x‖² < 1} for curvature c > 0. Every function is pure: inputs are
// never modified, results are freshly allocated, and no state is kept
// between calls, so all of them are safe for concurrent use.
package poincare

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultCurvature is the curvature used when callers have no reason to pick another.
	DefaultCurvature = 1.0
	// DefaultClipRadius is the fraction of the ball radius 1/√c that
	// ProjectToBall keeps points within.
	DefaultClipRadius = 0.999995

	// eps guards divisions and zero-norm checks.
	eps = 1e-15
	// atanhLimit clamps atanh arguments away from 1.
	atanhLimit = 1 - 1e-15
)

func dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

func normSq(v []float64) float64 {
	return floats.Dot(v, v)
}

func norm(v []float64) float64 {
	return math.Sqrt(math.Max(normSq(v), 0))
}

func scaled(s float64, v []float64) []float64 {
	return floats.ScaleTo(make([]float64, len(v)), s, v)
}

func negated(v []float64) []float64 {
	return scaled(-1, v)
}

func clone(v []float64) []float64 {
	return append(make([]float64, 0, len(v)), v...)
}

// lambda is the conformal factor 2/(1 − c‖x‖²), floored to stay finite at
// the boundary.
func lambda(x []float64, c float64) float64 {
	return 2 / math.Max(1-c*normSq(x), eps)
}

// ConformalFactor returns λ_x = 2/(1 − c‖x‖²), the ratio between hyperbolic
// and Euclidean tangent-vector lengths at x.
func ConformalFactor(x []float64, c float64) (float64, error) {
	if !(c > 0) {
		return 0, curvatureError("conformal_factor", c)
	}
	return lambda(x, c), nil
}

// InBall reports whether x lies strictly inside the ball of curvature c.
func InBall(x []float64, c float64) bool {
	if !(c > 0) {
		return false
	}
	return c*normSq(x) < 1
}

// ProjectToBall returns a copy of x, rescaled along its own direction to
// norm clipR/√c when it lies farther out than that. Points already inside
// the safety radius, and near-zero vectors, are returned unchanged.
// clipR outside (0, 1) falls back to DefaultClipRadius.
func ProjectToBall(x []float64, c, clipR float64) ([]float64, error) {
	if !(c > 0) {
		return nil, curvatureError("project_to_ball", c)
	}
	return projectToBall(x, c, clipR), nil
}

// projectToBall is ProjectToBall for callers that have already checked c.
func projectToBall(x []float64, c, clipR float64) []float64 {
	if !(clipR > 0 && clipR < 1) {
		clipR = DefaultClipRadius
	}
	n := norm(x)
	maxN := clipR / math.Sqrt(c)
	if n <= maxN || n <= eps {
		return clone(x)
	}
	return scaled(maxN/n, x)
}
