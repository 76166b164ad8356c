package gll

import (
	"fmt"
	"math"

	"github.com/notargets/gllinterp/utils"
	"gonum.org/v1/gonum/mat"
)

// GLL returns the n Gauss-Lobatto-Legendre nodes on [-1,1] in increasing
// order, endpoints included, along with their quadrature weights.
func GLL(n int) (X, W []float64, err error) {
	if n < 2 {
		err = fmt.Errorf("%w: GLL order must be at least 2, got %d", utils.ErrConfig, n)
		return
	}
	if n == 2 {
		return []float64{-1, 1}, []float64{1, 1}, nil
	}
	var (
		xint, wint []float64
		wEnd       = 2. / float64(n*(n-1))
	)
	// Interior nodes are the roots of P_{n-2}^{(1,1)}
	if xint, wint, err = JacobiGQ(1, 1, n-3); err != nil {
		return
	}
	X = make([]float64, n)
	W = make([]float64, n)
	X[0], X[n-1] = -1, 1
	W[0], W[n-1] = wEnd, wEnd
	for i := range xint {
		X[i+1] = xint[i]
		W[i+1] = wint[i] / (1 - xint[i]*xint[i])
	}
	return
}

// JacobiGQ computes the N+1 Gauss quadrature points and weights for the
// Jacobi weight (1-x)^alpha*(1+x)^beta using the Golub-Welsch eigenvalue
// formulation. Points are returned in increasing order.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64, err error) {
	var (
		fac    float64
		h1, d0 []float64
		d1     []float64
		VVr    *mat.Dense
	)
	if N < 0 {
		err = fmt.Errorf("%w: JacobiGQ degree must be non-negative, got %d", utils.ErrConfig, N)
		return
	}
	if N == 0 {
		X = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		W = []float64{Gamma0(alpha, beta)}
		return
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: -(alpha^2-beta^2)./(h1+2)./h1
	d0 = make([]float64, N+1)
	fac = beta*beta - alpha*alpha
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	// 1st upper diagonal: 2./(h1+2).*sqrt(i.*(i+alpha+beta).*(i+alpha).*(i+beta)./(h1+1)./(h1+3))
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(NewSymTriDiagonal(d0, d1), true); !ok {
		err = fmt.Errorf("%w: eigenvalue decomposition failed for JacobiGQ(%v, %v, %d)",
			utils.ErrConfig, alpha, beta, N)
		return
	}
	X = eig.Values(nil)

	VVr = mat.NewDense(len(X), len(X), nil)
	eig.VectorsTo(VVr)
	W = make([]float64, len(X))
	g0 := Gamma0(alpha, beta)
	for i, v := range VVr.RawRowView(0) {
		W[i] = v * v * g0
	}
	return
}

// Gamma0 is the integral of the Jacobi weight over [-1,1]
func Gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func NewSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	var (
		n  = len(d0)
		dd = make([]float64, n*n)
	)
	for i := 0; i < n; i++ {
		dd[i+i*n] = d0[i]
		if i < n-1 {
			dd[i+1+i*n] = d1[i]
			dd[i+(i+1)*n] = d1[i]
		}
	}
	Tri = mat.NewSymDense(n, dd)
	return
}
