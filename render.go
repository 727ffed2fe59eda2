package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
)

type renderSettings struct {
	Mandelbrot mandelbrot.Settings
	OutputFile string
}

// newRenderSettings reads a json settings file. An empty file name gives an 800x800 render of the default window.
func newRenderSettings(settingsFile string) (renderSettings, error) {
	s := renderSettings{
		Mandelbrot: mandelbrot.Settings{Width: 800, Height: 800},
	}
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, err
		}
		if err := json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("unable to parse %s - %w", settingsFile, err)
		}
	}
	return s, s.Verify()
}

func (s *renderSettings) Verify() error {
	if err := s.Mandelbrot.Verify(); err != nil {
		return err
	}
	if s.OutputFile == "" {
		s.OutputFile = misc.ImageFileName(time.Now())
	}
	return nil
}

func renderToFile(settings renderSettings, logger bslogger.Logger) error {
	logger.Debug(settings.Mandelbrot.String())

	viewport, err := settings.Mandelbrot.Viewport()
	if err != nil {
		return err
	}
	renderer, err := mandelbrot.NewRenderer(settings.Mandelbrot)
	if err != nil {
		return err
	}

	startTime := time.Now()
	frame, err := renderer.Render(viewport, settings.Mandelbrot.Colors)
	if err != nil {
		return err
	}
	logger.Infof("Rendered %s with %d iterations in %s", viewport.String(), frame.MaxIterations, time.Since(startTime))

	if err := misc.SaveImage(settings.OutputFile, frame.Image); err != nil {
		return err
	}
	logger.Infof("Saved image to %s", settings.OutputFile)
	return nil
}
