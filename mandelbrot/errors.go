package mandelbrot

import "errors"

var (
	ErrInvalidDimensions    = errors.New("width and height must be positive")
	ErrDegenerateBounds     = errors.New("reEnd must be greater than reStart")
	ErrInvalidColorSettings = errors.New("invalid color settings")
	ErrSizeMismatch         = errors.New("viewport size does not match render target")
	ErrEmptySelection       = errors.New("selection has no width")
	ErrInvalidZoomFactor    = errors.New("zoom factor must be positive")
)
