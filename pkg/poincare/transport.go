package poincare

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ParallelTransport moves tangent vector v from the tangent space at x to
// the tangent space at y: (λ_x/λ_y)·gyr[y,−x]v.
func ParallelTransport(x, y, v []float64, c float64) ([]float64, error) {
	if err := checkArgs("parallel_transport", c, x, y, v); err != nil {
		return nil, err
	}
	g, err := gyration("parallel_transport", y, negated(x), v, c)
	if err != nil {
		return nil, err
	}
	return scaled(lambda(x, c)/lambda(y, c), g), nil
}

// Distance returns the geodesic distance (2/√c)·atanh(√c·‖(−x)⊕y‖)
// between two points of the ball.
func Distance(x, y []float64, c float64) (float64, error) {
	if err := checkArgs("distance", c, x, y); err != nil {
		return 0, err
	}
	if floats.Equal(x, y) {
		return 0, nil
	}
	delta, err := mobiusAdd("distance", negated(x), y, c)
	if err != nil {
		return 0, err
	}
	sqrtC := math.Sqrt(c)
	return 2 / sqrtC * math.Atanh(math.Min(sqrtC*norm(delta), atanhLimit)), nil
}
