package mandelbrot

import "math"

// EscapeRadius is the modulus past which a point is considered to have diverged.
const EscapeRadius = 2.0

// extraSteps are taken after the loop exits to shrink the error of the smoothing term.
const extraSteps = 2

// EscapeResult is the per pixel output of EscapeTime. Iterations is frozen at loop exit.
type EscapeResult struct {
	Iterations   int
	FinalModulus float64
}

// Interior reports whether the point never escaped within maxIt iterations.
func (r EscapeResult) Interior(maxIt int) bool {
	return r.Iterations >= maxIt
}

// EscapeTime iterates z = z*z + c from z = 0 until |z| passes EscapeRadius or maxIt steps were taken. The step
// that reaches the cap is counted, so a point with |c| > 2 escapes on iteration 1.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func EscapeTime(c complex128, maxIt int) EscapeResult {
	x, y := real(c), imag(c)
	x1, y1 := 0.0, 0.0
	iteration := 0

	for {
		x1, y1 = x1*x1-y1*y1+x, 2*x1*y1+y
		iteration++
		if math.Sqrt(x1*x1+y1*y1) > EscapeRadius || iteration >= maxIt {
			break
		}
	}

	// The counter is not advanced for these
	for i := 0; i < extraSteps; i++ {
		x1, y1 = x1*x1-y1*y1+x, 2*x1*y1+y
	}

	return EscapeResult{
		Iterations:   iteration,
		FinalModulus: math.Sqrt(x1*x1 + y1*y1),
	}
}
