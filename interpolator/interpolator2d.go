package interpolator

import (
	"fmt"

	"github.com/notargets/gllinterp/grid"
	"github.com/notargets/gllinterp/utils"
	"gonum.org/v1/gonum/mat"
)

// Interpolator2D evaluates data sampled on a Grid2D at arbitrary points.
// Element blocks are normalized by their mean and standard deviation and
// interpolated by two passes of the reference element barycentric
// evaluator: along axis 2 for every row of the block, then along axis 1
// over the row results.
type Interpolator2D struct {
	Grid           *grid.Grid2D
	ref            *Barycentric
	parallelDegree int
}

func NewInterpolator2D(g *grid.Grid2D, opts ...Option) *Interpolator2D {
	o := newOptions(opts)
	return &Interpolator2D{
		Grid:           g,
		ref:            NewBarycentric(g.Axis1.RefGLL()),
		parallelDegree: o.parallelDegree,
	}
}

func (ip *Interpolator2D) ParallelDegree() int { return ip.parallelDegree }

// Interpolate returns the value of data at each point. data must have
// dimensions (NodeCount1, NodeCount2), indexed [axis1][axis2].
func (ip *Interpolator2D) Interpolate(data mat.Matrix, points [][2]float64) (values []float64, err error) {
	var (
		g        = ip.Grid
		nc1, nc2 = g.NodeCounts()
		elements []int
		fits     = make([]*elementFit, g.N1*g.N2) // arena indexed by i*N2+j
		touched  []int
	)
	if nr, nc := data.Dims(); nr != nc1 || nc != nc2 {
		err = fmt.Errorf("%w: data is %dx%d, grid has %dx%d nodes",
			utils.ErrValueSize, nr, nc, nc1, nc2)
		return
	}
	elements = make([]int, len(points))
	for n, p := range points {
		var i, j int
		if i, j, err = g.Locate(p); err != nil {
			return nil, fmt.Errorf("point %d: %w", n, err)
		}
		elements[n] = i*g.N2 + j
	}
	seen := make([]bool, len(fits))
	for _, k := range elements {
		if !seen[k] {
			seen[k] = true
			touched = append(touched, k)
		}
	}
	ip.partitions(len(touched)).Run(func(_, kMin, kMax int) {
		for _, k := range touched[kMin:kMax] {
			fits[k] = ip.fit(data, k/g.N2, k%g.N2)
		}
	})
	values = make([]float64, len(points))
	ip.partitions(len(points)).Run(func(_, kMin, kMax int) {
		var (
			lx     = g.Lx
			bx, by = make([]float64, lx), make([]float64, lx)
		)
		for n := kMin; n < kMax; n++ {
			ef := fits[elements[n]]
			rx := grid.ToReference(points[n][0], ef.edges[0], ef.edges[1])
			ry := grid.ToReference(points[n][1], ef.edges[2], ef.edges[3])
			bx = ip.ref.Basis(rx, bx)
			by = ip.ref.Basis(ry, by)
			var v float64
			for r := 0; r < lx; r++ {
				// row r interpolated along axis 2, then weighted along axis 1
				var f float64
				row := ef.y[r*lx : (r+1)*lx]
				for c, yv := range row {
					f += yv * by[c]
				}
				v += f * bx[r]
			}
			values[n] = ef.denormalize(v)
		}
	})
	return
}

func (ip *Interpolator2D) fit(data mat.Matrix, i, j int) (ef *elementFit) {
	var (
		lx       = ip.Grid.Lx
		ind, _   = ip.Grid.ElementGLLIndices(i, j)
		edges, _ = ip.Grid.ElementEdges(i, j)
		block    = make([]float64, 0, lx*lx)
	)
	for r := ind[0]; r < ind[1]; r++ {
		for c := ind[2]; c < ind[3]; c++ {
			block = append(block, data.At(r, c))
		}
	}
	ef = &elementFit{edges: edges}
	ef.y, ef.mean, ef.std = normalize(block)
	return
}

func (ip *Interpolator2D) partitions(n int) *utils.PartitionMap {
	return utils.NewPartitionMap(parallelDegree(ip.parallelDegree, n), n)
}
