package mandelbrot

import "image/color"

// subPixelOffsets spreads n samples evenly across one pixel, centered on it. A single sample sits on the pixel itself.
func subPixelOffsets(n int) []float64 {
	offsets := make([]float64, n)
	if n > 1 {
		// Using grid super sampling
		for i := 0; i < n; i++ {
			offsets[i] = ((0.5 + float64(i)) / float64(n)) - 0.5
		}
	}
	return offsets
}

// superSampledColor colors an n by n grid of points inside the pixel and averages them.
func superSampledColor(viewport Viewport, palette Palette, maxIt int, column int, row int, offsets []float64) color.RGBA {
	var r, g, b int
	for _, sx := range offsets {
		for _, sy := range offsets {
			c := viewport.PointToComplex(float64(column)+sx, float64(row)+sy)
			sample := palette.SmoothColor(EscapeTime(c, maxIt), maxIt)
			r += int(sample.R)
			g += int(sample.G)
			b += int(sample.B)
		}
	}

	divisor := len(offsets) * len(offsets)
	return color.RGBA{R: uint8(r / divisor), G: uint8(g / divisor), B: uint8(b / divisor), A: 255}
}
