package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
	"github.com/NeXX451/Mandelbrot/server"
)

type Settings struct {
	Mandelbrot    mandelbrot.Settings
	OutputFile    string
	ServerAddress string
}

// NewSettings reads a json settings file. An empty file name gives an 800x800 render of the default window.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{
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

func (s *Settings) String() string {
	output := "\nRemote settings\n"
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Output File: %s\n", s.OutputFile)
	output += s.Mandelbrot.String()
	return output
}

func (s *Settings) Verify() error {
	if err := s.Mandelbrot.Verify(); err != nil {
		return err
	}
	if s.OutputFile == "" {
		s.OutputFile = misc.ImageFileName(time.Now())
	}
	if s.ServerAddress == "" {
		s.ServerAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddressOrLoopback(), server.DefaultPort)
	}
	return nil
}
