package mandelbrot

import (
	"image/color"
	"math"

	"github.com/NeXX451/Mandelbrot/misc"
)

// InteriorColor is used for points that never escape.
var InteriorColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

var logEscapeRadius = math.Log(EscapeRadius)

// SmoothColor maps an escape result onto the palette using the normalized iteration count, blending the two nearest
// palette entries so the image has gradients instead of bands.
func (p Palette) SmoothColor(result EscapeResult, maxIt int) color.RGBA {
	if result.Interior(maxIt) || len(p.colors) == 0 {
		return InteriorColor
	}

	mu := smoothIndex(result) / float64(maxIt) * float64(len(p.colors))

	// whole picks the palette entry, fraction blends toward the next one
	whole := math.Floor(mu)
	fraction := mu - whole

	size := len(p.colors)
	color1 := misc.PositiveModulo(int(whole), size)
	color2 := misc.PositiveModulo(color1+1, size)
	return misc.LinearInterpolationRGB(p.colors[color1], p.colors[color2], fraction)
}

// smoothIndex is iterations + 1 - log(log|z|)/log(2). When the correction term is undefined (|z| <= 1) or blows up
// (|z| overflowed) the correction is dropped and the plain band index iterations + 1 is used.
func smoothIndex(result EscapeResult) float64 {
	band := float64(result.Iterations) + 1
	if !(result.FinalModulus > 1) {
		return band
	}

	nu := math.Log(math.Log(result.FinalModulus)) / logEscapeRadius
	if math.IsNaN(nu) || math.IsInf(nu, 0) {
		return band
	}
	return band - nu
}
