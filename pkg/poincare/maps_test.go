package poincare

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPoint returns a point with norm below maxFrac/√c.
func randomPoint(rng *rand.Rand, dim int, c, maxFrac float64) []float64 {
	p := make([]float64, dim)
	for i := range p {
		p[i] = rng.Float64()*2 - 1
	}
	n := norm(p)
	if n == 0 {
		return p
	}
	return scaled(rng.Float64()*maxFrac/(n*math.Sqrt(c)), p)
}

func TestExpMap_AtOrigin(t *testing.T) {
	out, err := ExpMap([]float64{0, 0}, []float64{0.5, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.4621172, out[0], 1e-7)
	assert.InDelta(t, math.Tanh(0.5), out[0], 1e-12)
	assert.Equal(t, 0.0, out[1])
}

func TestExpMap_ZeroTangent(t *testing.T) {
	x := []float64{0.2, -0.4, 0.1}
	out, err := ExpMap(x, []float64{0, 0, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, x, out)
	out[0] = 42
	assert.Equal(t, 0.2, x[0], "result must not alias the input")
}

func TestExpMap_StaysInBall(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, c := range []float64{0.1, 0.5, 1, 2, 10} {
		for i := 0; i < 50; i++ {
			x := randomPoint(rng, 4, c, 0.99)
			v := scaled(float64(i+1)*5, randomPoint(rng, 4, 1, 1))
			out, err := ExpMap(x, v, c)
			require.NoError(t, err)
			assert.Less(t, c*normSq(out), 1.0, "c=%g x=%v v=%v", c, x, v)
		}
	}
}

func TestExpMap_SaturatedTangentIsClipped(t *testing.T) {
	out, err := ExpMap([]float64{0, 0}, []float64{100, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, DefaultClipRadius, out[0], 1e-12)
	assert.Less(t, normSq(out), 1.0)
}

func TestExpMap_BeyondClipRadius(t *testing.T) {
	// x lies between the safety radius and the boundary: still a valid point.
	for _, c := range []float64{1, 4} {
		r := 1 / math.Sqrt(c)
		x := []float64{0.999999 * r, 0}
		for _, v := range [][]float64{{1e-9, 0}, {-1e-9, 0}, {0, 1e-9}} {
			y, err := ExpMap(x, v, c)
			require.NoError(t, err)
			assert.Less(t, c*normSq(y), 1.0)
			if v[0] > 0 {
				assert.Greater(t, y[0], x[0], "c=%g must move outward with v=%v", c, v)
			}
			if v[0] < 0 {
				assert.Less(t, y[0], x[0], "c=%g must move inward with v=%v", c, v)
			}
			back, err := LogMap(x, y, c)
			require.NoError(t, err)
			for j := range v {
				assert.InDelta(t, v[j], back[j], 1e-11, "c=%g v=%v component %d", c, v, j)
			}
		}
	}
}

func TestExpMap_SaturatedBeyondClipRadiusKeepsNorm(t *testing.T) {
	x := []float64{0.999999, 0}
	y, err := ExpMap(x, []float64{100, 0}, 1)
	require.NoError(t, err)
	assert.Less(t, normSq(y), 1.0)
	assert.GreaterOrEqual(t, norm(y), norm(x)*(1-1e-12))
}

func TestLogMap_AtOrigin(t *testing.T) {
	out, err := LogMap([]float64{0, 0}, []float64{0.4621172, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out[0], 1e-6)
	assert.Equal(t, 0.0, out[1])
}

func TestLogMap_SelfIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, c := range []float64{0.5, 1, 3} {
		x := randomPoint(rng, 5, c, 0.9)
		out, err := LogMap(x, x, c)
		require.NoError(t, err)
		assert.Equal(t, make([]float64, 5), out)
	}
}

func TestLogMap_ClampsAtBoundary(t *testing.T) {
	out, err := LogMap([]float64{0, 0}, []float64{1, 0}, 1)
	require.NoError(t, err)
	assert.False(t, math.IsInf(out[0], 0))
	assert.False(t, math.IsNaN(out[0]))
	assert.InDelta(t, math.Atanh(atanhLimit), out[0], 1e-9)
}

func TestExpLog_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, c := range []float64{0.25, 1, 4} {
		for i := 0; i < 100; i++ {
			x := randomPoint(rng, 8, c, 0.8)
			v := randomPoint(rng, 8, 1, 0.3)
			y, err := ExpMap(x, v, c)
			require.NoError(t, err)
			back, err := LogMap(x, y, c)
			require.NoError(t, err)
			vn := norm(v)
			for j := range v {
				assert.InDelta(t, v[j], back[j], 1e-5*math.Max(vn, 1e-3), "c=%g component %d", c, j)
			}
		}
	}
}

func TestExpLog_SmallStep(t *testing.T) {
	x := []float64{0.05, -0.03}
	v := []float64{0.001, 0.002}
	y, err := ExpMap(x, v, 1)
	require.NoError(t, err)
	back, err := LogMap(x, y, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, v, back, 1e-9)
}

func TestLogMap_DistanceMagnitude(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		c := 0.5 + rng.Float64()*2
		x := randomPoint(rng, 3, c, 0.9)
		y := randomPoint(rng, 3, c, 0.9)
		xy, err := LogMap(x, y, c)
		require.NoError(t, err)
		yx, err := LogMap(y, x, c)
		require.NoError(t, err)
		// Riemannian lengths agree; each equals the geodesic distance.
		d, err := Distance(x, y, c)
		require.NoError(t, err)
		assert.InDelta(t, d, lambda(x, c)*norm(xy), 1e-9)
		assert.InDelta(t, d, lambda(y, c)*norm(yx), 1e-9)
	}
}

func TestLogMap_DistanceMagnitudeEqualRadius(t *testing.T) {
	x := []float64{0.3, 0}
	y := []float64{0, -0.3}
	xy, err := LogMap(x, y, 1)
	require.NoError(t, err)
	yx, err := LogMap(y, x, 1)
	require.NoError(t, err)
	assert.InDelta(t, norm(xy), norm(yx), 1e-12)
}

func TestRiemannianGradient(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		g    []float64
		c    float64
		want []float64
	}{
		{"origin", []float64{0, 0}, []float64{1, 1}, 1, []float64{0.25, 0.25}},
		{"interior", []float64{0.5, 0}, []float64{1, -2}, 1, []float64{0.75 * 0.75 / 4, -2 * 0.75 * 0.75 / 4}},
		{"dimension mismatch", []float64{0, 0.5}, []float64{4}, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RiemannianGradient(tt.x, tt.g, tt.c)
			if tt.want == nil {
				assert.ErrorIs(t, err, ErrDimensionMismatch)
				return
			}
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, out, 1e-12)
		})
	}
}

func TestRiemannianGradient_Exact(t *testing.T) {
	out, err := RiemannianGradient([]float64{0, 0}, []float64{1, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25}, out)
}
