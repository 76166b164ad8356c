package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N equally spaced values from start to end inclusive
func Linspace(start, end float64, N int) (v []float64) {
	switch {
	case N < 1:
		return nil
	case N == 1:
		return []float64{start}
	}
	v = make([]float64, N)
	floats.Span(v, start, end)
	v[N-1] = end
	return
}

// CheckIncreasing returns ErrConfig unless x holds at least two finite,
// strictly increasing values.
func CheckIncreasing(x []float64) (err error) {
	if len(x) < 2 {
		return fmt.Errorf("%w: need at least two edges, have %d", ErrConfig, len(x))
	}
	for i, val := range x {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: edge %d is not finite (%v)", ErrConfig, i, val)
		}
		if i > 0 && val <= x[i-1] {
			return fmt.Errorf("%w: edges not strictly increasing at %d (%v <= %v)",
				ErrConfig, i, val, x[i-1])
		}
	}
	return
}

// Truncate5 drops all digits after the fifth decimal, used to compare the
// endian tag read from single precision storage.
func Truncate5(x float64) float64 {
	return float64(int(x*1e5)) / 1e5
}
