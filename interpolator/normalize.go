package interpolator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// elementFit holds one element's samples shifted by their mean and scaled by
// their population standard deviation, together with the element bounds
// needed to map physical coordinates onto the reference element.
type elementFit struct {
	edges     [4]float64 // a1, b1, a2, b2; 1D fits use the first pair
	mean, std float64
	y         []float64
}

// normalize returns (y - mean)/std for the samples in y. A zero standard
// deviation is replaced by one, leaving constant data at zero. Samples whose
// variance overflows, magnitudes near math.MaxFloat64, are divided by their
// largest magnitude before the moments are taken.
func normalize(y []float64) (yn []float64, mean, std float64) {
	scale := 1.
	mean, std = stat.PopMeanStdDev(y, nil)
	if finite(mean) && finite(std) {
		if std == 0 {
			std = 1.
		}
	} else if scale = floats.Norm(y, math.Inf(1)); finite(scale) && scale > 0 {
		ys := make([]float64, len(y))
		floats.ScaleTo(ys, 1/scale, y)
		if mean, std = stat.PopMeanStdDev(ys, nil); std == 0 {
			std = 1.
		}
		yn = make([]float64, len(y))
		for i, v := range ys {
			yn[i] = (v - mean) / std
		}
		return yn, mean * scale, std * scale
	}
	yn = make([]float64, len(y))
	for i, v := range y {
		yn[i] = (v - mean) / std
	}
	return
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func (ef *elementFit) denormalize(v float64) float64 {
	return v*ef.std + ef.mean
}
