package interpolator

import (
	"math"
	"testing"

	"github.com/notargets/gllinterp/gll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestBarycentric(t *testing.T) {
	R, _, err := gll.GLL(6)
	require.NoError(t, err)
	b := NewBarycentric(R)
	assert.Equal(t, 6, b.Len())
	{ // Degree five polynomials are reproduced exactly
		p := func(x float64) float64 { return 1 - 2*x + 0.5*x*x*x - x*x*x*x*x }
		y := make([]float64, len(R))
		for i, r := range R {
			y[i] = p(r)
		}
		for _, x := range []float64{-1, -0.77, -0.1, 0, 0.3333, 0.9, 1} {
			assert.InDelta(t, p(x), b.Evaluate(y, x), 1.e-13, "x = %v", x)
		}
	}
	{ // Nodes return the stored sample exactly
		y := []float64{3, 1, 4, 1, 5, 9}
		for i, r := range R {
			assert.Equal(t, y[i], b.Evaluate(y, r))
		}
	}
	{ // Basis is a partition of unity and the unit vector at nodes
		basis := make([]float64, 6)
		for _, x := range []float64{-0.95, -0.2, 0.01, 0.7} {
			basis = b.Basis(x, basis)
			assert.InDelta(t, 1., floats.Sum(basis), 1.e-14)
		}
		basis = b.Basis(R[2], nil)
		assert.Equal(t, []float64{0, 0, 1, 0, 0, 0}, basis)
	}
	{ // Basis and Evaluate agree
		y := []float64{0.1, -2, 3.5, 0, 1, -1}
		x := 0.123
		basis := b.Basis(x, nil)
		assert.InDelta(t, floats.Dot(basis, y), b.Evaluate(y, x), 1.e-14)
	}
	{ // High order node sets stay well conditioned on the reference element
		R, _, err := gll.GLL(24)
		require.NoError(t, err)
		b := NewBarycentric(R)
		y := make([]float64, len(R))
		for i, r := range R {
			y[i] = math.Sin(3 * r)
		}
		for _, x := range []float64{-0.999, -0.5, 0.25, 0.999} {
			assert.InDelta(t, math.Sin(3*x), b.Evaluate(y, x), 1.e-12)
		}
	}
}

func TestNormalize(t *testing.T) {
	{
		yn, mean, std := normalize([]float64{1, 2, 3, 4})
		assert.InDelta(t, 2.5, mean, 1.e-15)
		assert.InDelta(t, math.Sqrt(1.25), std, 1.e-15)
		assert.InDelta(t, 0., floats.Sum(yn), 1.e-14)
	}
	{ // Constant samples keep a unit scale
		yn, mean, std := normalize([]float64{7, 7, 7})
		assert.Equal(t, 7., mean)
		assert.Equal(t, 1., std)
		assert.Equal(t, []float64{0, 0, 0}, yn)
	}
	{ // Magnitudes whose variance overflows
		yn, mean, std := normalize([]float64{1e308, -1e308, 1e308, -1e308})
		assert.Equal(t, 0., mean)
		assert.Equal(t, 1e308, std)
		assert.Equal(t, []float64{1, -1, 1, -1}, yn)
		yn, mean, std = normalize([]float64{1.5e308, 1.7e308, 1.6e308})
		assert.False(t, math.IsInf(mean, 0) || math.IsNaN(std))
		assert.InDelta(t, 1.6e308, mean, 1e294)
		for _, v := range yn {
			assert.False(t, math.IsNaN(v))
		}
	}
}
