package misc

import (
	"image/color"
)

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

// LerpUint8 blends two channel values and truncates the result.
func LerpUint8(v1 uint8, v2 uint8, fraction float64) uint8 {
	v1f := float64(v1)
	v2f := float64(v2)
	return uint8(LerpFloat64(v1f, v2f, fraction))
}

// LinearInterpolationRGB blends each channel independently. The result is always opaque.
func LinearInterpolationRGB(color1 color.RGBA, color2 color.RGBA, fraction float64) color.RGBA {
	return color.RGBA{
		R: LerpUint8(color1.R, color2.R, fraction),
		G: LerpUint8(color1.G, color2.G, fraction),
		B: LerpUint8(color1.B, color2.B, fraction),
		A: 255,
	}
}

// PositiveModulo is the remainder of a/b in [0, b) for b > 0, also for negative a.
func PositiveModulo(a int, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
