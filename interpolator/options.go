package interpolator

import "github.com/notargets/gllinterp/utils"

type options struct {
	parallelDegree int
}

// Option configures an interpolator at construction
type Option func(*options)

// WithParallelDegree caps the goroutines used by one Interpolate call.
// Values below one mean serial evaluation.
func WithParallelDegree(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallelDegree = n
	}
}

func newOptions(opts []Option) (o options) {
	o.parallelDegree = utils.DefaultParallelDegree()
	for _, opt := range opts {
		opt(&o)
	}
	return
}
