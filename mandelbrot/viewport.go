package mandelbrot

import (
	"fmt"
	"math"
)

// Default window onto the complex plane.
const (
	DefaultReStart = -2.15
	DefaultImStart = 1.50
	DefaultReEnd   = 0.85
)

// Viewport is the visible rectangle of the complex plane mapped onto a pixel grid. The imaginary axis runs downward
// from imStart since image rows grow downward. Viewports are values: zooming or panning produces a new one.
type Viewport struct {
	reStart float64
	imStart float64
	reEnd   float64
	step    float64
	width   int
	height  int
}

func NewViewport(reStart float64, imStart float64, reEnd float64, width int, height int) (Viewport, error) {
	if width <= 0 || height <= 0 {
		return Viewport{}, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if !isFinite(reStart) || !isFinite(imStart) || !isFinite(reEnd) {
		return Viewport{}, fmt.Errorf("%w: non-finite bounds (%g, %g, %g)", ErrDegenerateBounds, reStart, imStart, reEnd)
	}
	if reEnd <= reStart {
		return Viewport{}, fmt.Errorf("%w: reStart %g, reEnd %g", ErrDegenerateBounds, reStart, reEnd)
	}

	step := (reEnd - reStart) / float64(width)
	if step <= 0 || !isFinite(step) {
		// The bounds are too close together to be told apart at this width
		return Viewport{}, fmt.Errorf("%w: step underflow between %g and %g", ErrDegenerateBounds, reStart, reEnd)
	}

	return Viewport{
		reStart: reStart,
		imStart: imStart,
		reEnd:   reEnd,
		step:    step,
		width:   width,
		height:  height,
	}, nil
}

func DefaultViewport(width int, height int) (Viewport, error) {
	return NewViewport(DefaultReStart, DefaultImStart, DefaultReEnd, width, height)
}

// WithBounds returns a viewport over the same pixel grid with new bounds. On error v is returned unchanged.
func (v Viewport) WithBounds(reStart float64, imStart float64, reEnd float64) (Viewport, error) {
	next, err := NewViewport(reStart, imStart, reEnd, v.width, v.height)
	if err != nil {
		return v, err
	}
	return next, nil
}

// PixelToComplex converts the (x, y) pixel on the image to the point on the complex plane.
func (v Viewport) PixelToComplex(x int, y int) complex128 {
	return v.PointToComplex(float64(x), float64(y))
}

// PointToComplex is PixelToComplex for positions between pixel centers.
func (v Viewport) PointToComplex(x float64, y float64) complex128 {
	return complex(v.reStart+v.step*x, v.imStart-v.step*y)
}

func (v Viewport) ReStart() float64 { return v.reStart }
func (v Viewport) ImStart() float64 { return v.imStart }
func (v Viewport) ReEnd() float64   { return v.reEnd }
func (v Viewport) Step() float64    { return v.step }
func (v Viewport) Width() int       { return v.width }
func (v Viewport) Height() int      { return v.height }

func (v Viewport) ImEnd() float64 {
	return v.imStart - v.step*float64(v.height)
}

// Scale is the inverse of the visible plane width. Larger values mean a deeper zoom.
func (v Viewport) Scale() float64 {
	return 1 / (v.reEnd - v.reStart)
}

func (v Viewport) String() string {
	output := "{Viewport "
	output += fmt.Sprintf("ReStart: %g ", v.reStart)
	output += fmt.Sprintf("ImStart: %g ", v.imStart)
	output += fmt.Sprintf("ReEnd: %g ", v.reEnd)
	output += fmt.Sprintf("ImEnd: %g ", v.ImEnd())
	output += fmt.Sprintf("Step: %g ", v.step)
	output += fmt.Sprintf("Size: %dx%d}", v.width, v.height)
	return output
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
