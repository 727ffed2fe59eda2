package mandelbrot

import (
	"fmt"
	"image"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/sync/errgroup"
)

// Frame is one finished render. The caller owns Image once Render returns.
type Frame struct {
	Image         *image.RGBA
	MaxIterations int
	Viewport      Viewport
}

// Renderer draws viewports onto a fixed size render target.
type Renderer struct {
	height        int
	logger        bslogger.Logger
	superSampling int
	width         int
	workers       int
}

func NewRenderer(settings Settings) (*Renderer, error) {
	if settings.Width <= 0 || settings.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, settings.Width, settings.Height)
	}
	workers := settings.Workers
	if workers < 1 {
		workers = 1
	}
	superSampling := settings.SuperSampling
	if superSampling < 1 {
		superSampling = 1
	}

	return &Renderer{
		height:        settings.Height,
		logger:        bslogger.NewLogger("Renderer", bslogger.Normal, nil),
		superSampling: superSampling,
		width:         settings.Width,
		workers:       workers,
	}, nil
}

func (r *Renderer) Width() int   { return r.width }
func (r *Renderer) Height() int  { return r.height }
func (r *Renderer) Workers() int { return r.workers }

// Render draws every pixel of the viewport. The iteration budget and the palette are worked out once per call and
// shared read only by the row workers, each of which writes only its own rows.
func (r *Renderer) Render(viewport Viewport, colors ColorSettings) (*Frame, error) {
	if viewport.Width() != r.width || viewport.Height() != r.height {
		return nil, fmt.Errorf("%w: viewport %dx%d, target %dx%d", ErrSizeMismatch, viewport.Width(), viewport.Height(), r.width, r.height)
	}

	startTime := time.Now()
	maxIt := MaxIterations(viewport.Scale())
	palette, err := GeneratePalette(maxIt, colors)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	offsets := subPixelOffsets(r.superSampling)

	var group errgroup.Group
	group.SetLimit(r.workers)
	for row := 0; row < r.height; row++ {
		row := row
		group.Go(func() error {
			renderRow(img, viewport, palette, maxIt, row, offsets)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	r.logger.Debugf("Rendered %s with %d iterations in %s", viewport.String(), maxIt, time.Since(startTime))

	return &Frame{
		Image:         img,
		MaxIterations: maxIt,
		Viewport:      viewport,
	}, nil
}

func renderRow(img *image.RGBA, viewport Viewport, palette Palette, maxIt int, row int, offsets []float64) {
	for column := 0; column < viewport.Width(); column++ {
		if len(offsets) > 1 {
			img.SetRGBA(column, row, superSampledColor(viewport, palette, maxIt, column, row, offsets))
			continue
		}
		result := EscapeTime(viewport.PixelToComplex(column, row), maxIt)
		img.SetRGBA(column, row, palette.SmoothColor(result, maxIt))
	}
}
