package poincare

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelTransport_SamePoint(t *testing.T) {
	x := []float64{0.3, -0.1, 0.2}
	v := []float64{0.01, 0.5, -0.2}
	out, err := ParallelTransport(x, x, v, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, v, out, 1e-10)
}

func TestParallelTransport_FromOrigin(t *testing.T) {
	out, err := ParallelTransport([]float64{0, 0}, []float64{0.5, 0}, []float64{0.1, 0.2}, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.075, 0.15}, out, 1e-12)
}

func TestParallelTransport_PreservesRiemannianNorm(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		c := 0.5 + rng.Float64()
		x := randomPoint(rng, 4, c, 0.8)
		y := randomPoint(rng, 4, c, 0.8)
		v := randomPoint(rng, 4, 1, 0.5)
		out, err := ParallelTransport(x, y, v, c)
		require.NoError(t, err)
		require.Len(t, out, len(v))
		assert.InDelta(t, lambda(x, c)*norm(v), lambda(y, c)*norm(out), 1e-9)
	}
}

func TestParallelTransport_Shape(t *testing.T) {
	out, err := ParallelTransport([]float64{0.05, -0.02}, []float64{0.02, 0.03}, []float64{0.001, -0.002}, 1)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestDistance(t *testing.T) {
	d, err := Distance([]float64{0, 0}, []float64{0.5, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Acosh(1+2*0.25/0.75), d, 1e-12)
	assert.InDelta(t, math.Log(3), d, 1e-12)

	same, err := Distance([]float64{0.2, 0.1}, []float64{0.2, 0.1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, same)
}

func TestDistance_MatchesClosedForm(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		x := randomPoint(rng, 6, 1, 0.9)
		y := randomPoint(rng, 6, 1, 0.9)
		d, err := Distance(x, y, 1)
		require.NoError(t, err)

		var diff float64
		for j := range x {
			diff += (x[j] - y[j]) * (x[j] - y[j])
		}
		want := math.Acosh(1 + 2*diff/((1-normSq(x))*(1-normSq(y))))
		assert.InDelta(t, want, d, 1e-8)

		back, err := Distance(y, x, 1)
		require.NoError(t, err)
		assert.InDelta(t, d, back, 1e-9)
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 50; i++ {
		x := randomPoint(rng, 3, 2, 0.9)
		y := randomPoint(rng, 3, 2, 0.9)
		z := randomPoint(rng, 3, 2, 0.9)
		xy, err := Distance(x, y, 2)
		require.NoError(t, err)
		yz, err := Distance(y, z, 2)
		require.NoError(t, err)
		xz, err := Distance(x, z, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, xz, xy+yz+1e-9)
	}
}
