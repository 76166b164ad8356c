package interpolator

import (
	"fmt"

	"github.com/notargets/gllinterp/grid"
	"github.com/notargets/gllinterp/utils"
)

// Interpolator1D evaluates data sampled at the nodes of a Grid1D at
// arbitrary points inside the grid. Each element's samples are normalized
// and interpolated on the reference element [-1,1], which keeps the
// conditioning independent of the element size.
//
// An Interpolator1D is read only after construction and may be shared by
// concurrent callers.
type Interpolator1D struct {
	Grid           *grid.Grid1D
	ref            *Barycentric
	parallelDegree int // Maximum goroutines used per Interpolate call
}

func NewInterpolator1D(g *grid.Grid1D, opts ...Option) *Interpolator1D {
	o := newOptions(opts)
	return &Interpolator1D{
		Grid:           g,
		ref:            NewBarycentric(g.RefGLL()),
		parallelDegree: o.parallelDegree,
	}
}

func (ip *Interpolator1D) ParallelDegree() int { return ip.parallelDegree }

// Interpolate returns the interpolated value of data at each point. data
// holds one sample per grid node. On error no values are returned.
func (ip *Interpolator1D) Interpolate(data, points []float64) (values []float64, err error) {
	var (
		g        = ip.Grid
		elements []int
		fits     = make([]*elementFit, g.N) // arena indexed by element
		touched  []int
	)
	if len(data) != g.NodeCount() {
		err = fmt.Errorf("%w: have %d samples, grid has %d nodes",
			utils.ErrValueSize, len(data), g.NodeCount())
		return
	}
	if elements, err = ip.locate(points); err != nil {
		return
	}
	seen := make([]bool, g.N)
	for _, k := range elements {
		if !seen[k] {
			seen[k] = true
			touched = append(touched, k)
		}
	}
	ip.partitions(len(touched)).Run(func(_, kMin, kMax int) {
		for _, k := range touched[kMin:kMax] {
			fits[k] = ip.fit(data, k)
		}
	})
	values = make([]float64, len(points))
	ip.partitions(len(points)).Run(func(_, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			ef := fits[elements[i]]
			r := grid.ToReference(points[i], ef.edges[0], ef.edges[1])
			values[i] = ef.denormalize(ip.ref.Evaluate(ef.y, r))
		}
	})
	return
}

func (ip *Interpolator1D) locate(points []float64) (elements []int, err error) {
	elements = make([]int, len(points))
	for i, x := range points {
		if elements[i], err = ip.Grid.Locate(x); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return
}

func (ip *Interpolator1D) fit(data []float64, k int) (ef *elementFit) {
	var (
		lo, hi, _ = ip.Grid.ElementGLLIndices(k)
		a, b, _   = ip.Grid.ElementEdges(k)
	)
	ef = &elementFit{edges: [4]float64{a, b}}
	ef.y, ef.mean, ef.std = normalize(data[lo:hi])
	return
}

func (ip *Interpolator1D) partitions(n int) *utils.PartitionMap {
	return utils.NewPartitionMap(parallelDegree(ip.parallelDegree, n), n)
}

// Small batches are not worth the goroutine overhead
const minBucket = 64

func parallelDegree(maxDegree, n int) (np int) {
	np = n / minBucket
	if np > maxDegree {
		np = maxDegree
	}
	if np < 1 {
		np = 1
	}
	return
}
