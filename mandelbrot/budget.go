package mandelbrot

import "math"

// MaxIterationCeiling caps the iteration budget no matter how deep the zoom.
const MaxIterationCeiling = 1000

// MaxIterations picks an iteration budget for a zoom level, where scale is 1/(reEnd-reStart).
// https://math.stackexchange.com/questions/16970/a-way-to-determine-the-ideal-number-of-maximum-iterations-for-an-arbitrary-zoom
func MaxIterations(scale float64) int {
	maxIt := math.Round(math.Sqrt(math.Abs(2*math.Sqrt(math.Abs(1-math.Sqrt(5*scale))))) * 66.5)

	if math.IsNaN(maxIt) || maxIt < 1 {
		return 1
	}
	if maxIt > MaxIterationCeiling {
		return MaxIterationCeiling
	}
	return int(maxIt)
}
