package poincare

import "fmt"

// ErrorKind classifies a precondition failure.
type ErrorKind int

const (
	// DimensionMismatch means operands differ in length.
	DimensionMismatch ErrorKind = iota + 1
	// InvalidCurvature means c <= 0 (or NaN).
	InvalidCurvature
	// DegenerateOperation means the Möbius addition denominator vanished.
	DegenerateOperation
	// EmptyInput means a point set was empty.
	EmptyInput
)

func (k ErrorKind) String() string {
	switch k {
	case DimensionMismatch:
		return "dimension mismatch"
	case InvalidCurvature:
		return "invalid curvature"
	case DegenerateOperation:
		return "degenerate operation"
	case EmptyInput:
		return "empty input"
	default:
		return "unknown"
	}
}

// Error is returned by every operation in this package. Op names the
// operation that failed, e.g. "mobius_add".
type Error struct {
	Op   string
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return "poincare: " + e.Kind.String()
	}
	if e.Msg == "" {
		return fmt.Sprintf("poincare: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("poincare: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrDimensionMismatch   = &Error{Kind: DimensionMismatch}
	ErrInvalidCurvature    = &Error{Kind: InvalidCurvature}
	ErrDegenerateOperation = &Error{Kind: DegenerateOperation}
	ErrEmptyInput          = &Error{Kind: EmptyInput}
)

func dimensionError(op string, a, b int) error {
	return &Error{Op: op, Kind: DimensionMismatch, Msg: fmt.Sprintf("%d != %d", a, b)}
}

func curvatureError(op string, c float64) error {
	return &Error{Op: op, Kind: InvalidCurvature, Msg: fmt.Sprintf("c must be > 0, got %g", c)}
}

// checkArgs validates that all vectors share the length of the first one
// and that c is a positive curvature.
func checkArgs(op string, c float64, vs ...[]float64) error {
	for _, v := range vs[1:] {
		if len(v) != len(vs[0]) {
			return dimensionError(op, len(vs[0]), len(v))
		}
	}
	if !(c > 0) {
		return curvatureError(op, c)
	}
	return nil
}
