package explorer

import (
	"fmt"
	"math"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
)

const maxHistory = 64

// Backend draws frames for a session. A local renderer and a remote render server both satisfy it.
type Backend interface {
	Render(viewport mandelbrot.Viewport, colors mandelbrot.ColorSettings) (*mandelbrot.Frame, error)
}

// LocalBackend renders in process and follows the session through size changes.
type LocalBackend struct {
	renderer *mandelbrot.Renderer
	workers  int
}

func NewLocalBackend(workers int) *LocalBackend {
	return &LocalBackend{workers: workers}
}

func (lb *LocalBackend) Render(viewport mandelbrot.Viewport, colors mandelbrot.ColorSettings) (*mandelbrot.Frame, error) {
	if lb.renderer == nil || lb.renderer.Width() != viewport.Width() || lb.renderer.Height() != viewport.Height() {
		renderer, err := mandelbrot.NewRenderer(mandelbrot.Settings{Width: viewport.Width(), Height: viewport.Height(), Workers: lb.workers})
		if err != nil {
			return nil, err
		}
		lb.renderer = renderer
	}
	return lb.renderer.Render(viewport, colors)
}

// Session is the state behind the explorer: the current window, the palette tunables and the last frame. Every
// change renders a new frame; a change that fails leaves the previous state and frame in place.
type Session struct {
	backend  Backend
	colors   mandelbrot.ColorSettings
	frame    *mandelbrot.Frame
	history  []mandelbrot.Viewport
	viewport mandelbrot.Viewport
}

func NewSession(backend Backend, viewport mandelbrot.Viewport, colors mandelbrot.ColorSettings) (*Session, error) {
	s := &Session{
		backend: backend,
	}
	if err := s.show(viewport, colors); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Frame() *mandelbrot.Frame          { return s.frame }
func (s *Session) Viewport() mandelbrot.Viewport     { return s.viewport }
func (s *Session) Colors() mandelbrot.ColorSettings { return s.colors }

// Apply runs a viewport command and renders the result.
func (s *Session) Apply(command mandelbrot.Command) error {
	next, err := command.Apply(s.viewport)
	if err != nil {
		return err
	}
	previous := s.viewport
	if err := s.show(next, s.colors); err != nil {
		return err
	}
	s.history = append(s.history, previous)
	if len(s.history) > maxHistory {
		s.history = s.history[1:]
	}
	return nil
}

// Back returns to the viewport before the last command, refit to the current pixel grid. It reports false when
// there is nothing to go back to.
func (s *Session) Back() (bool, error) {
	if len(s.history) == 0 {
		return false, nil
	}
	previous, err := fitViewport(s.history[len(s.history)-1], s.viewport.Width(), s.viewport.Height())
	if err != nil {
		return false, err
	}
	if err := s.show(previous, s.colors); err != nil {
		return false, err
	}
	s.history = s.history[:len(s.history)-1]
	return true, nil
}

// SetColors replaces the palette tunables and renders with them.
func (s *Session) SetColors(colors mandelbrot.ColorSettings) error {
	if err := colors.Verify(); err != nil {
		return err
	}
	return s.show(s.viewport, colors)
}

// Resize keeps the upper left corner and the step where possible and changes the pixel grid.
func (s *Session) Resize(width int, height int) error {
	if width == s.viewport.Width() && height == s.viewport.Height() {
		return nil
	}
	next, err := fitViewport(s.viewport, width, height)
	if err != nil {
		return err
	}
	return s.show(next, s.colors)
}

// fitViewport moves viewport onto a width by height grid with the same upper left corner and step.
func fitViewport(viewport mandelbrot.Viewport, width int, height int) (mandelbrot.Viewport, error) {
	if width == viewport.Width() && height == viewport.Height() {
		return viewport, nil
	}
	reEnd := viewport.ReStart() + viewport.Step()*float64(width)
	return mandelbrot.NewViewport(viewport.ReStart(), viewport.ImStart(), reEnd, width, height)
}

// Save writes the current frame to fileName.
func (s *Session) Save(fileName string) error {
	return misc.SaveImage(fileName, s.frame.Image)
}

// Status is the readout of the current window.
func (s *Session) Status() string {
	return fmt.Sprintf("re %.6g..%.6g im %.6g..%.6g step %.3g scale %.3g it %d hue %g/%.2f bri %g",
		s.viewport.ReStart(), s.viewport.ReEnd(), s.viewport.ImEnd(), s.viewport.ImStart(),
		s.viewport.Step(), s.viewport.Scale(), s.frame.MaxIterations,
		s.colors.HueFactor, s.colors.InitialHue, s.colors.BrightnessFactor)
}

func (s *Session) show(viewport mandelbrot.Viewport, colors mandelbrot.ColorSettings) error {
	frame, err := s.backend.Render(viewport, colors)
	if err != nil {
		return err
	}
	s.viewport = viewport
	s.colors = colors
	s.frame = frame
	return nil
}

// Tunable adjustments bound to keys.

func adjustHueFactor(colors mandelbrot.ColorSettings, delta float64) mandelbrot.ColorSettings {
	colors.HueFactor = math.Max(1, colors.HueFactor+delta)
	return colors
}

func adjustInitialHue(colors mandelbrot.ColorSettings, delta float64) mandelbrot.ColorSettings {
	hue := colors.InitialHue + delta
	colors.InitialHue = hue - math.Floor(hue)
	if colors.InitialHue >= 1 {
		colors.InitialHue = 0
	}
	return colors
}

func adjustBrightnessFactor(colors mandelbrot.ColorSettings, delta float64) mandelbrot.ColorSettings {
	colors.BrightnessFactor = math.Max(0, colors.BrightnessFactor+delta)
	return colors
}
