package explorer

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
)

const (
	DefaultScrollFactor = 8
	DefaultZoomFactor   = 2
)

// Settings of the explorer. When ServerAddress is set frames are rendered by that server instead of in process.
type Settings struct {
	Bounds        *mandelbrot.Bounds
	Colors        mandelbrot.ColorSettings
	SaveDirectory string
	ScrollFactor  float64
	ServerAddress string
	Workers       int
	ZoomFactor    float64
}

// NewSettings reads a json settings file. An empty file name gives the defaults.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{}
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

func (s *Settings) String() string {
	output := "\nExplorer settings\n"
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Save Directory: %s\n", s.SaveDirectory)
	output += fmt.Sprintf("Scroll Factor: %g\n", s.ScrollFactor)
	output += fmt.Sprintf("Zoom Factor: %g\n", s.ZoomFactor)
	output += fmt.Sprintf("Colors: %s\n", s.Colors.String())
	return output
}

func (s *Settings) Verify() error {
	if s.Bounds == nil {
		s.Bounds = &mandelbrot.Bounds{ReStart: mandelbrot.DefaultReStart, ImStart: mandelbrot.DefaultImStart, ReEnd: mandelbrot.DefaultReEnd}
	}
	if s.Colors.HueFactor == 0 {
		s.Colors.HueFactor = mandelbrot.DefaultHueFactor
	}
	if s.SaveDirectory == "" {
		s.SaveDirectory = "."
	}
	if s.ScrollFactor <= 0 {
		s.ScrollFactor = DefaultScrollFactor
	}
	if s.Workers < 1 {
		s.Workers = runtime.NumCPU()
	}
	if s.ZoomFactor <= 1 {
		s.ZoomFactor = DefaultZoomFactor
	}
	return s.Colors.Verify()
}
