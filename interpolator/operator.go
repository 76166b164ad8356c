package interpolator

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/gllinterp/grid"
	"github.com/notargets/gllinterp/utils"
)

// Operator assembles the interpolation onto points as a sparse matrix of
// shape (len(points), NodeCount). Row i holds the reference element Lagrange
// basis of the element containing points[i], so applying the operator to
// many data sets sampled on the same grid costs one sparse product each.
//
// Interpolation is linear and reproduces constants, so the operator agrees
// with Interpolate up to rounding; Interpolate remains the reference path.
func (ip *Interpolator1D) Operator(points []float64) (op *sparse.CSR, err error) {
	var (
		g        = ip.Grid
		elements []int
		basis    = make([]float64, g.Lx)
	)
	if elements, err = ip.locate(points); err != nil {
		return
	}
	dok := sparse.NewDOK(len(points), g.NodeCount())
	for i, k := range elements {
		lo, _, _ := g.ElementGLLIndices(k)
		a, b, _ := g.ElementEdges(k)
		basis = ip.ref.Basis(grid.ToReference(points[i], a, b), basis)
		for j, v := range basis {
			if v != 0 {
				dok.Set(i, lo+j, v)
			}
		}
	}
	op = dok.ToCSR()
	return
}

// ApplyOperator multiplies an operator built by Operator with data
func ApplyOperator(op *sparse.CSR, data []float64) (values []float64, err error) {
	nr, nc := op.Dims()
	if len(data) != nc {
		err = fmt.Errorf("%w: have %d samples, operator expects %d",
			utils.ErrValueSize, len(data), nc)
		return
	}
	values = make([]float64, nr)
	op.DoNonZero(func(i, j int, v float64) {
		values[i] += v * data[j]
	})
	return
}
