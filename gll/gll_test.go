package gll

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/gllinterp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

func TestGLL(t *testing.T) {
	tol := 1.e-13
	{ // Two point rule is the trapezoid
		X, W, err := GLL(2)
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, 1}, X)
		assert.Equal(t, []float64{1, 1}, W)
	}
	{
		X, W, err := GLL(3)
		require.NoError(t, err)
		assert.True(t, floats.EqualApprox(X, []float64{-1, 0, 1}, tol))
		assert.True(t, floats.EqualApprox(W, []float64{1. / 3, 4. / 3, 1. / 3}, tol))
	}
	{
		X, W, err := GLL(4)
		require.NoError(t, err)
		r5 := 1. / math.Sqrt(5)
		assert.True(t, floats.EqualApprox(X, []float64{-1, -r5, r5, 1}, tol))
		assert.True(t, floats.EqualApprox(W, []float64{1. / 6, 5. / 6, 5. / 6, 1. / 6}, tol))
	}
	{
		X, W, err := GLL(5)
		require.NoError(t, err)
		r := math.Sqrt(3. / 7)
		assert.True(t, floats.EqualApprox(X, []float64{-1, -r, 0, r, 1}, tol))
		assert.True(t, floats.EqualApprox(W, []float64{.1, 49. / 90, 32. / 45, 49. / 90, .1}, tol))
	}
	for n := 2; n < 20; n++ {
		X, W, err := GLL(n)
		require.NoError(t, err)
		assert.Equal(t, n, len(X))
		assert.Equal(t, -1., X[0])
		assert.Equal(t, 1., X[n-1])
		for i := 1; i < n; i++ {
			assert.True(t, X[i] > X[i-1])
		}
		assert.InDelta(t, 2., floats.Sum(W), 1.e-12)
		assert.InDelta(t, 2./float64(n*(n-1)), W[0], 1.e-15)
		// Nodes are symmetric about the origin
		for i := 0; i < n; i++ {
			assert.InDelta(t, -X[i], X[n-1-i], 1.e-13)
		}
	}
	for _, n := range []int{1, 0, -3} {
		_, _, err := GLL(n)
		assert.True(t, errors.Is(err, utils.ErrConfig))
	}
}

func TestGLLExactness(t *testing.T) {
	// An n point GLL rule integrates polynomials of degree 2n-3 exactly
	for n := 2; n < 12; n++ {
		X, W, err := GLL(n)
		require.NoError(t, err)
		for deg := 0; deg <= 2*n-3; deg++ {
			f := func(x float64) float64 { return math.Pow(x, float64(deg)) + 0.5*x }
			var sum float64
			for i := range X {
				sum += W[i] * f(X[i])
			}
			exact := quad.Fixed(f, -1, 1, n+1, quad.Legendre{}, 0)
			assert.InDelta(t, exact, sum, 1.e-12, "n = %d, degree = %d", n, deg)
		}
	}
}

func TestJacobiGQ(t *testing.T) {
	{ // Gauss-Legendre, two points
		X, W, err := JacobiGQ(0, 0, 1)
		require.NoError(t, err)
		r3 := 1. / math.Sqrt(3)
		assert.True(t, floats.EqualApprox(X, []float64{-r3, r3}, 1.e-14))
		assert.True(t, floats.EqualApprox(W, []float64{1, 1}, 1.e-14))
	}
	{ // Single point rule carries the full weight integral
		X, W, err := JacobiGQ(1, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, X)
		assert.InDelta(t, 4./3, W[0], 1.e-14)
	}
	{ // Non-symmetric weight integrates (1-x)(1+x)^2 * x exactly
		X, W, err := JacobiGQ(1, 2, 3)
		require.NoError(t, err)
		var sum float64
		for i := range X {
			sum += W[i] * X[i]
		}
		f := func(x float64) float64 { return (1 - x) * (1 + x) * (1 + x) * x }
		assert.InDelta(t, quad.Fixed(f, -1, 1, 6, quad.Legendre{}, 0), sum, 1.e-13)
		assert.InDelta(t, Gamma0(1, 2), floats.Sum(W), 1.e-13)
	}
	_, _, err := JacobiGQ(0, 0, -1)
	assert.True(t, errors.Is(err, utils.ErrConfig))
}
