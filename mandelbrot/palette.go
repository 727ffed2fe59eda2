package mandelbrot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an immutable ordered list of opaque colors.
type Palette struct {
	colors []color.RGBA
}

// GeneratePalette builds n colors by walking the hue (and optionally the brightness) in steps of 1/(ln(i+2)*factor).
// The steps shrink as i grows so the first entries cycle quickly and the later ones compress.
func GeneratePalette(n int, settings ColorSettings) (Palette, error) {
	if n < 1 {
		return Palette{}, fmt.Errorf("%w: palette needs at least one color, got %d", ErrInvalidColorSettings, n)
	}
	if err := settings.Verify(); err != nil {
		return Palette{}, err
	}

	colors := make([]color.RGBA, n)
	hue := settings.InitialHue
	brightnessPhase := 0.0
	for i := 0; i < n; i++ {
		logStep := math.Log(float64(i) + 2)
		hue += 1 / (logStep * settings.HueFactor)

		brightness := 1.0
		if settings.BrightnessFactor > 0 {
			brightnessPhase += 1 / (logStep * settings.BrightnessFactor)
			brightness = triangleBrightness(brightnessPhase)
		}

		colors[i] = hsb(hue, 1, brightness)
	}

	return Palette{colors: colors}, nil
}

func (p Palette) Len() int {
	return len(p.colors)
}

func (p Palette) At(i int) color.RGBA {
	return p.colors[i]
}

// Colors returns a copy of the palette entries.
func (p Palette) Colors() []color.RGBA {
	colors := make([]color.RGBA, len(p.colors))
	copy(colors, p.colors)
	return colors
}

// hsb converts a hue given in turns (only the fractional part counts), a saturation and a brightness to rgb.
func hsb(hue float64, saturation float64, brightness float64) color.RGBA {
	c := colorful.Hsv(wrapUnit(hue)*360, saturation, brightness)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// triangleBrightness swings between 1.0 and 0.5 once per unit of phase. It never gets near the interior black.
func triangleBrightness(phase float64) float64 {
	return 1 - 0.5*(1-math.Abs(2*wrapUnit(phase)-1))
}

// wrapUnit keeps the fractional part of f in [0, 1).
func wrapUnit(f float64) float64 {
	return f - math.Floor(f)
}
