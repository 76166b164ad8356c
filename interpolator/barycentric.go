package interpolator

import "math"

// Barycentric evaluates the polynomial interpolant through a fixed node set
// using the second (true) barycentric form. The node set and weights are
// computed once; values are supplied per evaluation, so one Barycentric can
// serve any number of data sets concurrently.
type Barycentric struct {
	nodes, weights []float64
}

func NewBarycentric(nodes []float64) (b *Barycentric) {
	var (
		n    = len(nodes)
		wMax float64
	)
	b = &Barycentric{
		nodes:   append([]float64{}, nodes...),
		weights: make([]float64, n),
	}
	for j := 0; j < n; j++ {
		w := 1.
		for k := 0; k < n; k++ {
			if k != j {
				w *= nodes[j] - nodes[k]
			}
		}
		b.weights[j] = 1. / w
		wMax = math.Max(wMax, math.Abs(b.weights[j]))
	}
	// The common factor cancels in the quotient, scaling keeps it near unity
	for j := range b.weights {
		b.weights[j] /= wMax
	}
	return
}

func (b *Barycentric) Len() int { return len(b.nodes) }

// Basis fills dst with the Lagrange basis functions evaluated at x. When x
// coincides with a node the basis is the exact unit vector for that node.
func (b *Barycentric) Basis(x float64, dst []float64) []float64 {
	if len(dst) != len(b.nodes) {
		dst = make([]float64, len(b.nodes))
	}
	for j, xj := range b.nodes {
		if x == xj {
			for k := range dst {
				dst[k] = 0
			}
			dst[j] = 1
			return dst
		}
	}
	var sum float64
	for j, xj := range b.nodes {
		dst[j] = b.weights[j] / (x - xj)
		sum += dst[j]
	}
	for j := range dst {
		dst[j] /= sum
	}
	return dst
}

// Evaluate returns the interpolant through (nodes, y) at x
func (b *Barycentric) Evaluate(y []float64, x float64) float64 {
	var num, den float64
	for j, xj := range b.nodes {
		if x == xj {
			return y[j]
		}
		t := b.weights[j] / (x - xj)
		num += t * y[j]
		den += t
	}
	return num / den
}
