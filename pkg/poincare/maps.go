package poincare

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ExpMap follows the geodesic from x with initial velocity v for unit time.
// A zero tangent returns x. Long tangents saturate tanh to exactly 1 and
// would land on the boundary; only such results are pulled back, to
// DefaultClipRadius/√c or ‖x‖, whichever is farther out.
func ExpMap(x, v []float64, c float64) ([]float64, error) {
	if err := checkArgs("exp_map", c, x, v); err != nil {
		return nil, err
	}
	return expMap("exp_map", x, v, c)
}

func expMap(op string, x, v []float64, c float64) ([]float64, error) {
	vNorm := norm(v)
	if vNorm < eps {
		return clone(x), nil
	}
	sqrtC := math.Sqrt(c)
	s := math.Tanh(sqrtC*lambda(x, c)*vNorm/2) / (sqrtC * vNorm)
	y, err := mobiusAdd(op, x, scaled(s, v), c)
	if err != nil {
		return nil, err
	}
	if c*normSq(y) < 1 {
		return y, nil
	}
	return projectToBall(y, c, math.Max(DefaultClipRadius, sqrtC*norm(x))), nil
}

// LogMap returns the tangent vector at x pointing to y, the inverse of
// ExpMap. LogMap(x, x, c) is the zero vector.
func LogMap(x, y []float64, c float64) ([]float64, error) {
	if err := checkArgs("log_map", c, x, y); err != nil {
		return nil, err
	}
	return logMap("log_map", x, y, c)
}

func logMap(op string, x, y []float64, c float64) ([]float64, error) {
	if floats.Equal(x, y) {
		return make([]float64, len(x)), nil
	}
	delta, err := mobiusAdd(op, negated(x), y, c)
	if err != nil {
		return nil, err
	}
	dNorm := norm(delta)
	if dNorm < eps {
		return make([]float64, len(x)), nil
	}
	sqrtC := math.Sqrt(c)
	factor := 2 / (lambda(x, c) * sqrtC) * math.Atanh(math.Min(sqrtC*dNorm, atanhLimit))
	return scaled(factor/dNorm, delta), nil
}

// RiemannianGradient converts a Euclidean gradient at x into the Riemannian
// gradient under the Poincaré metric by scaling it with 1/λ_x².
func RiemannianGradient(x, euclideanGrad []float64, c float64) ([]float64, error) {
	if err := checkArgs("riemannian_gradient", c, x, euclideanGrad); err != nil {
		return nil, err
	}
	l := lambda(x, c)
	return scaled(1/(l*l), euclideanGrad), nil
}
