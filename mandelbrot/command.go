package mandelbrot

import (
	"fmt"
	"image"
)

// Command turns the current viewport into the next one. Front ends translate their input events into commands so
// the engine never sees window or input state.
type Command interface {
	Apply(current Viewport) (Viewport, error)
}

// Reset returns to the default window.
type Reset struct{}

func (Reset) Apply(current Viewport) (Viewport, error) {
	return DefaultViewport(current.Width(), current.Height())
}

// SetBounds jumps to explicit bounds.
type SetBounds struct {
	Bounds Bounds
}

func (sb SetBounds) Apply(current Viewport) (Viewport, error) {
	return current.WithBounds(sb.Bounds.ReStart, sb.Bounds.ImStart, sb.Bounds.ReEnd)
}

// SelectZoom zooms onto a rectangle dragged out between two pixel corners given in any order.
type SelectZoom struct {
	From image.Point
	To   image.Point
}

func (sz SelectZoom) Apply(current Viewport) (Viewport, error) {
	upperLeft, lowerRight := sz.corners()
	if upperLeft.X == lowerRight.X {
		return current, fmt.Errorf("%w: x %d to %d", ErrEmptySelection, sz.From.X, sz.To.X)
	}

	step := current.Step()
	reStart := current.ReStart() + float64(upperLeft.X)*step
	imStart := current.ImStart() - float64(upperLeft.Y)*step
	reEnd := current.ReStart() + float64(lowerRight.X)*step
	return current.WithBounds(reStart, imStart, reEnd)
}

func (sz SelectZoom) corners() (image.Point, image.Point) {
	upperLeft := image.Point{X: min(sz.From.X, sz.To.X), Y: min(sz.From.Y, sz.To.Y)}
	lowerRight := image.Point{X: max(sz.From.X, sz.To.X), Y: max(sz.From.Y, sz.To.Y)}
	return upperLeft, lowerRight
}

// ClickZoom centers the view on a pixel and divides the visible width by Factor. A factor below one zooms out.
type ClickZoom struct {
	At     image.Point
	Factor float64
}

func (cz ClickZoom) Apply(current Viewport) (Viewport, error) {
	if !isFinite(cz.Factor) || cz.Factor <= 0 {
		return current, fmt.Errorf("%w: got %g", ErrInvalidZoomFactor, cz.Factor)
	}

	center := current.PixelToComplex(cz.At.X, cz.At.Y)
	step := current.Step() / cz.Factor
	halfWidth := step * float64(current.Width()) / 2
	halfHeight := step * float64(current.Height()) / 2
	return current.WithBounds(real(center)-halfWidth, imag(center)+halfHeight, real(center)+halfWidth)
}

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	if d < Left || d > Down {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return []string{
		"Left", "Right", "Up", "Down",
	}[d]
}

// Pan shifts the window by ScrollFactor pixels worth of plane in one direction.
type Pan struct {
	Direction    Direction
	ScrollFactor float64
}

func (p Pan) Apply(current Viewport) (Viewport, error) {
	offset := current.Step() * p.ScrollFactor
	reStart, imStart, reEnd := current.ReStart(), current.ImStart(), current.ReEnd()

	switch p.Direction {
	case Left:
		reStart -= offset
		reEnd -= offset
	case Right:
		reStart += offset
		reEnd += offset
	case Up:
		imStart += offset
	case Down:
		imStart -= offset
	default:
		return current, fmt.Errorf("unknown pan direction: %d", p.Direction)
	}
	return current.WithBounds(reStart, imStart, reEnd)
}
