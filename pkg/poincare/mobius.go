package poincare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MobiusAdd returns the gyrovector sum x ⊕ y in the ball of curvature c.
// The zero vector is the identity: MobiusAdd(x, 0, c) == x. The operation is
// neither commutative nor associative.
func MobiusAdd(x, y []float64, c float64) ([]float64, error) {
	if err := checkArgs("mobius_add", c, x, y); err != nil {
		return nil, err
	}
	return mobiusAdd("mobius_add", x, y, c)
}

func mobiusAdd(op string, x, y []float64, c float64) ([]float64, error) {
	xy := dot(x, y)
	x2 := normSq(x)
	y2 := normSq(y)
	left := 1 + 2*c*xy + c*y2
	right := 1 - c*x2
	den := 1 + 2*c*xy + c*c*x2*y2
	if math.Abs(den) < eps {
		return nil, &Error{Op: op, Kind: DegenerateOperation, Msg: fmt.Sprintf("denominator %g", den)}
	}
	out := floats.ScaleTo(make([]float64, len(x)), left/den, x)
	floats.AddScaled(out, right/den, y)
	return out, nil
}

// gyration computes gyr[u,w]z = −(u⊕w) ⊕ (u⊕(w⊕z)), the correction term
// for the non-associativity of Möbius addition.
func gyration(op string, u, w, z []float64, c float64) ([]float64, error) {
	uw, err := mobiusAdd(op, u, w, c)
	if err != nil {
		return nil, err
	}
	wz, err := mobiusAdd(op, w, z, c)
	if err != nil {
		return nil, err
	}
	left, err := mobiusAdd(op, u, wz, c)
	if err != nil {
		return nil, err
	}
	return mobiusAdd(op, negated(uw), left, c)
}
