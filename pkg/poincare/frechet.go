package poincare

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultMaxIter bounds the number of Fréchet mean iterations.
	DefaultMaxIter = 64
	// DefaultTolerance is the gradient norm at which the Fréchet mean is considered converged.
	DefaultTolerance = 1e-8
)

type frechetOptions struct {
	maxIter int
	tol     float64
	clipR   float64
	logger  *zap.Logger
}

// FrechetOption configures FrechetMean and EstimateFrechetMean.
type FrechetOption func(*frechetOptions)

// WithMaxIter sets the iteration budget. At least one iteration always runs.
func WithMaxIter(n int) FrechetOption {
	return func(o *frechetOptions) { o.maxIter = n }
}

// WithTolerance sets the gradient norm below which iteration stops.
func WithTolerance(tol float64) FrechetOption {
	return func(o *frechetOptions) {
		if tol >= 0 {
			o.tol = tol
		}
	}
}

// WithClipRadius overrides the safety radius fraction used to re-project the
// estimate after every step. Values outside (0, 1) are ignored.
func WithClipRadius(r float64) FrechetOption {
	return func(o *frechetOptions) {
		if r > 0 && r < 1 {
			o.clipR = r
		}
	}
}

// WithLogger sets a logger for per-iteration debug output.
func WithLogger(l *zap.Logger) FrechetOption {
	return func(o *frechetOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Estimate is the outcome of a Fréchet mean computation.
type Estimate struct {
	Mean []float64
	// Iterations is the number of gradient evaluations performed.
	Iterations int
	// GradNorm is the norm of the last mean log-map gradient.
	GradNorm float64
	// Converged is false when the iteration budget ran out first.
	Converged bool
}

// FrechetMean returns the point minimising the sum of squared geodesic
// distances to points (the Karcher mean). See EstimateFrechetMean.
func FrechetMean(points [][]float64, c float64, opts ...FrechetOption) ([]float64, error) {
	est, err := EstimateFrechetMean(points, c, opts...)
	if err != nil {
		return nil, err
	}
	return est.Mean, nil
}

// EstimateFrechetMean runs Riemannian gradient descent from points[0]: each
// round averages the log maps of all points at the current estimate, stops
// once that gradient's norm is within tolerance, and otherwise moves along
// it with the exponential map and re-projects into the ball. Running out of
// iterations is not an error; the latest estimate is returned with
// Converged set to false.
func EstimateFrechetMean(points [][]float64, c float64, opts ...FrechetOption) (*Estimate, error) {
	const op = "frechet_mean"
	if len(points) == 0 {
		return nil, &Error{Op: op, Kind: EmptyInput, Msg: "no points"}
	}
	if !(c > 0) {
		return nil, curvatureError(op, c)
	}
	dim := len(points[0])
	for _, p := range points[1:] {
		if len(p) != dim {
			return nil, dimensionError(op, dim, len(p))
		}
	}

	o := frechetOptions{
		maxIter: DefaultMaxIter,
		tol:     DefaultTolerance,
		clipR:   DefaultClipRadius,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	maxIter := max(o.maxIter, 1)
	threshold := math.Max(o.tol, eps)
	inv := 1 / float64(len(points))

	est := &Estimate{Mean: projectToBall(points[0], c, o.clipR)}
	grad := make([]float64, dim)
	for est.Iterations < maxIter {
		est.Iterations++
		for i := range grad {
			grad[i] = 0
		}
		for _, p := range points {
			lg, err := logMap(op, est.Mean, p, c)
			if err != nil {
				return nil, err
			}
			floats.Add(grad, lg)
		}
		floats.Scale(inv, grad)
		est.GradNorm = norm(grad)
		o.logger.Debug("frechet iteration",
			zap.Int("iteration", est.Iterations),
			zap.Float64("grad_norm", est.GradNorm),
		)
		if est.GradNorm <= threshold {
			est.Converged = true
			break
		}
		next, err := expMap(op, est.Mean, grad, c)
		if err != nil {
			return nil, err
		}
		est.Mean = projectToBall(next, c, o.clipR)
	}

	o.logger.Debug("frechet mean done",
		zap.Bool("converged", est.Converged),
		zap.Int("iterations", est.Iterations),
		zap.Float64("grad_norm", est.GradNorm),
		zap.Int("points", len(points)),
	)
	return est, nil
}
