package grid

import (
	"fmt"

	"github.com/notargets/gllinterp/utils"
)

// Grid2D is the tensor product of two Grid1D sharing the same order Lx.
// Axis 1 runs along the first data index, axis 2 along the second.
type Grid2D struct {
	Axis1, Axis2 *Grid1D
	N1, N2, Lx   int
	gll          [][2]float64
}

func NewGrid2D(edges1, edges2 []float64, lx int) (g *Grid2D, err error) {
	var g1, g2 *Grid1D
	if g1, err = NewGrid1D(edges1, lx); err != nil {
		return nil, fmt.Errorf("axis 1: %w", err)
	}
	if g2, err = NewGrid1D(edges2, lx); err != nil {
		return nil, fmt.Errorf("axis 2: %w", err)
	}
	g = &Grid2D{
		Axis1: g1,
		Axis2: g2,
		N1:    g1.N,
		N2:    g2.N,
		Lx:    lx,
	}
	// Cartesian product with axis 1 varying fastest
	g.gll = make([][2]float64, 0, g1.NodeCount()*g2.NodeCount())
	for _, y := range g2.gll {
		for _, x := range g1.gll {
			g.gll = append(g.gll, [2]float64{x, y})
		}
	}
	return
}

func NewSimpleGrid2D(start1, end1, start2, end2 float64, n1, n2, lx int) (g *Grid2D, err error) {
	if n1 < 1 || n2 < 1 {
		err = fmt.Errorf("%w: element counts must be positive, got %d, %d", utils.ErrConfig, n1, n2)
		return
	}
	return NewGrid2D(utils.Linspace(start1, end1, n1+1), utils.Linspace(start2, end2, n2+1), lx)
}

// GLL1 and GLL2 return the per axis global node arrays, shared and read only
func (g *Grid2D) GLL1() []float64 { return g.Axis1.gll }
func (g *Grid2D) GLL2() []float64 { return g.Axis2.gll }

// GLL returns every node of the grid as (x1, x2) pairs with axis 1 varying
// fastest. It is meant for output and plotting, not for indexing data.
func (g *Grid2D) GLL() [][2]float64 { return g.gll }

func (g *Grid2D) NodeCounts() (nc1, nc2 int) {
	return g.Axis1.NodeCount(), g.Axis2.NodeCount()
}

func (g *Grid2D) checkElement(i, j int) (err error) {
	if i < 0 || i > g.N1-1 || j < 0 || j > g.N2-1 {
		err = fmt.Errorf("%w: element index (%d, %d), grid has (%d, %d) elements",
			utils.ErrIndex, i, j, g.N1, g.N2)
	}
	return
}

// ElementEdges returns the element bounds as (a1, b1, a2, b2)
func (g *Grid2D) ElementEdges(i, j int) (edges [4]float64, err error) {
	if err = g.checkElement(i, j); err != nil {
		return
	}
	edges = [4]float64{g.Axis1.edges[i], g.Axis1.edges[i+1], g.Axis2.edges[j], g.Axis2.edges[j+1]}
	return
}

// ElementGLLIndices returns (lo1, hi1, lo2, hi2), the half open node ranges
// of the element along each axis.
func (g *Grid2D) ElementGLLIndices(i, j int) (ind [4]int, err error) {
	if err = g.checkElement(i, j); err != nil {
		return
	}
	npoly := g.Lx - 1
	ind = [4]int{i * npoly, i*npoly + g.Lx, j * npoly, j*npoly + g.Lx}
	return
}

func (g *Grid2D) ElementGLLPoints(i, j int) (x1, x2 []float64, err error) {
	var ind [4]int
	if ind, err = g.ElementGLLIndices(i, j); err != nil {
		return
	}
	x1 = g.Axis1.gll[ind[0]:ind[1]:ind[1]]
	x2 = g.Axis2.gll[ind[2]:ind[3]:ind[3]]
	return
}

// Locate returns the element holding p, using the Grid1D rule per axis
func (g *Grid2D) Locate(p [2]float64) (i, j int, err error) {
	if i, err = g.Axis1.Locate(p[0]); err != nil {
		return
	}
	if j, err = g.Axis2.Locate(p[1]); err != nil {
		return
	}
	return
}
