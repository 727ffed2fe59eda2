package server

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/NeXX451/Mandelbrot/misc"
)

const (
	DefaultPort             = "51000"
	DefaultMaxWidth         = 4096
	DefaultMaxHeight        = 4096
	DefaultMaxSuperSampling = 4
)

type Settings struct {
	LogFile          string
	MaxHeight        int
	MaxSuperSampling int
	MaxWidth         int
	ServerAddress    string
	Workers          int
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
	output := "\nServer settings\n"
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Max Size: %dx%d\n", s.MaxWidth, s.MaxHeight)
	output += fmt.Sprintf("Max Super Sampling: %d\n", s.MaxSuperSampling)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	output += fmt.Sprintf("Log File: %s\n", s.LogFile)
	return output
}

func (s *Settings) Verify() error {
	// LogFile defaults to no file
	if s.MaxHeight <= 0 {
		s.MaxHeight = DefaultMaxHeight
	}
	if s.MaxSuperSampling < 1 {
		s.MaxSuperSampling = DefaultMaxSuperSampling
	}
	if s.MaxWidth <= 0 {
		s.MaxWidth = DefaultMaxWidth
	}
	if s.ServerAddress == "" {
		s.ServerAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddressOrLoopback(), DefaultPort)
	}
	if s.Workers < 1 {
		s.Workers = runtime.NumCPU()
	}
	return nil
}
