package grid

import (
	"fmt"
	"sort"

	"github.com/notargets/gllinterp/gll"
	"github.com/notargets/gllinterp/utils"
)

// Grid1D partitions an interval into N elements, each carrying Lx GLL
// nodes. Boundary nodes are shared by adjacent elements, so the global node
// array holds N*(Lx-1)+1 sorted, unique coordinates. A Grid1D is immutable
// after construction.
type Grid1D struct {
	Start, End float64
	N, Lx      int
	edges      []float64
	gll        []float64
	refGLL     []float64
}

// NewGrid1D builds a grid from monotonically increasing element edges
func NewGrid1D(edges []float64, lx int) (g *Grid1D, err error) {
	var R []float64
	if err = utils.CheckIncreasing(edges); err != nil {
		return
	}
	if R, _, err = gll.GLL(lx); err != nil {
		return
	}
	g = &Grid1D{
		Start:  edges[0],
		End:    edges[len(edges)-1],
		N:      len(edges) - 1,
		Lx:     lx,
		edges:  append([]float64{}, edges...),
		refGLL: R,
	}
	if g.gll, err = g.globalNodes(); err != nil {
		return nil, err
	}
	return
}

// NewSimpleGrid1D builds a grid of n uniform elements over [start,end]
func NewSimpleGrid1D(start, end float64, n, lx int) (g *Grid1D, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: element count must be positive, got %d", utils.ErrConfig, n)
		return
	}
	return NewGrid1D(utils.Linspace(start, end, n+1), lx)
}

// globalNodes places element k's nodes at k*(Lx-1) onward, shared boundary
// nodes are written once by the element on their left
func (g *Grid1D) globalNodes() (x []float64, err error) {
	x = make([]float64, g.N*(g.Lx-1)+1)
	for k := 0; k < g.N; k++ {
		copy(x[k*(g.Lx-1):], MapToElement(g.refGLL, g.edges[k], g.edges[k+1]))
	}
	if err = utils.CheckIncreasing(x); err != nil {
		return nil, fmt.Errorf("element nodes collide in floating point, elements too small for their offset: %w", err)
	}
	return
}

// MapToElement maps reference nodes on [-1,1] into [a,b]. The endpoints
// are assigned exactly so neighboring elements share their boundary node.
func MapToElement(R []float64, a, b float64) (x []float64) {
	var (
		n = len(R)
	)
	x = make([]float64, n)
	for i, r := range R {
		x[i] = (r+1)*(b-a)/2 + a
	}
	x[0], x[n-1] = a, b
	return
}

// ToReference maps x in [a,b] onto [-1,1]
func ToReference(x, a, b float64) float64 {
	return (x-a)/(b-a)*2 - 1
}

// Edges returns a copy of the element edge coordinates
func (g *Grid1D) Edges() []float64 { return append([]float64{}, g.edges...) }

// GLL returns the global node array. The slice is shared and must not be modified.
func (g *Grid1D) GLL() []float64 { return g.gll }

// RefGLL returns the reference element nodes. The slice is shared and must not be modified.
func (g *Grid1D) RefGLL() []float64 { return g.refGLL }

func (g *Grid1D) NodeCount() int { return len(g.gll) }

func (g *Grid1D) checkElement(i int) (err error) {
	if i < 0 || i > g.N-1 {
		err = fmt.Errorf("%w: element index %d, grid has %d elements", utils.ErrIndex, i, g.N)
	}
	return
}

func (g *Grid1D) ElementEdges(i int) (a, b float64, err error) {
	if err = g.checkElement(i); err != nil {
		return
	}
	return g.edges[i], g.edges[i+1], nil
}

// ElementGLLIndices returns the half open range of the element's nodes
// within the global node array.
func (g *Grid1D) ElementGLLIndices(i int) (lo, hi int, err error) {
	if err = g.checkElement(i); err != nil {
		return
	}
	npoly := g.Lx - 1
	return i * npoly, i*npoly + g.Lx, nil
}

func (g *Grid1D) ElementGLLPoints(i int) (x []float64, err error) {
	var lo, hi int
	if lo, hi, err = g.ElementGLLIndices(i); err != nil {
		return
	}
	x = g.gll[lo:hi:hi]
	return
}

// Contains reports whether x lies within [Start, End]
func (g *Grid1D) Contains(x float64) bool {
	return x >= g.Start && x <= g.End
}

// Locate returns the element holding x. Elements are half open
// [edge_i, edge_i+1), except that End belongs to the last element.
func (g *Grid1D) Locate(x float64) (k int, err error) {
	if !g.Contains(x) {
		err = fmt.Errorf("%w: %v not in [%v, %v]", utils.ErrDomain, x, g.Start, g.End)
		return
	}
	// first edge strictly greater than x
	k = sort.Search(len(g.edges), func(i int) bool { return g.edges[i] > x }) - 1
	if k < 0 {
		k = 0
	}
	if k > g.N-1 {
		k = g.N - 1
	}
	return
}
