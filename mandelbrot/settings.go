package mandelbrot

import (
	"fmt"
	"runtime"
)

const DefaultHueFactor = 100

// ColorSettings are the palette tunables. They are passed into every render rather than kept on the renderer.
// A larger HueFactor slows the hue cycle down, InitialHue is the starting hue in [0, 1) and a BrightnessFactor of 0
// holds brightness at 1.0.
type ColorSettings struct {
	BrightnessFactor float64
	HueFactor        float64
	InitialHue       float64
}

func DefaultColorSettings() ColorSettings {
	return ColorSettings{
		HueFactor:        DefaultHueFactor,
		InitialHue:       0,
		BrightnessFactor: 0,
	}
}

func (cs ColorSettings) Verify() error {
	if !isFinite(cs.HueFactor) || cs.HueFactor <= 0 {
		return fmt.Errorf("%w: hue factor %g must be positive", ErrInvalidColorSettings, cs.HueFactor)
	}
	if !isFinite(cs.InitialHue) || cs.InitialHue < 0 || cs.InitialHue >= 1 {
		return fmt.Errorf("%w: initial hue %g must be in [0, 1)", ErrInvalidColorSettings, cs.InitialHue)
	}
	if !isFinite(cs.BrightnessFactor) || cs.BrightnessFactor < 0 {
		return fmt.Errorf("%w: brightness factor %g must not be negative", ErrInvalidColorSettings, cs.BrightnessFactor)
	}
	return nil
}

func (cs ColorSettings) String() string {
	return fmt.Sprintf("{ColorSettings HueFactor: %g InitialHue: %g BrightnessFactor: %g}", cs.HueFactor, cs.InitialHue, cs.BrightnessFactor)
}

// Bounds of a window onto the complex plane. imEnd is implied by the image aspect ratio.
type Bounds struct {
	ReStart float64
	ImStart float64
	ReEnd   float64
}

// Settings describe a render target. SuperSampling is the number of samples per pixel side, 1 disables it.
type Settings struct {
	Bounds        *Bounds
	Colors        ColorSettings
	Height        int
	SuperSampling int
	Width         int
	Workers       int
}

// Verify fills in defaults for the optional fields. The image size has no default.
func (s *Settings) Verify() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if s.Bounds == nil {
		s.Bounds = &Bounds{ReStart: DefaultReStart, ImStart: DefaultImStart, ReEnd: DefaultReEnd}
	}
	if s.Colors.HueFactor == 0 {
		s.Colors.HueFactor = DefaultHueFactor
	}
	if s.SuperSampling < 1 {
		s.SuperSampling = 1
	}
	if s.Workers < 1 {
		s.Workers = runtime.NumCPU()
	}

	if err := s.Colors.Verify(); err != nil {
		return err
	}
	_, err := s.Viewport()
	return err
}

// Viewport builds the starting viewport described by these settings.
func (s *Settings) Viewport() (Viewport, error) {
	if s.Bounds == nil {
		return DefaultViewport(s.Width, s.Height)
	}
	return NewViewport(s.Bounds.ReStart, s.Bounds.ImStart, s.Bounds.ReEnd, s.Width, s.Height)
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Size: %dx%d\n", s.Width, s.Height)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	output += fmt.Sprintf("Super Sampling: %d\n", s.SuperSampling)
	if s.Bounds != nil {
		output += fmt.Sprintf("Bounds: %+v\n", *s.Bounds)
	}
	output += fmt.Sprintf("Colors: %s\n", s.Colors.String())
	return output
}
