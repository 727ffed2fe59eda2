package mandelbrot

import (
	"errors"
	"math"
	"runtime"
	"testing"
)

func TestColorSettingsVerify(t *testing.T) {
	tests := []struct {
		name     string
		settings ColorSettings
		wantErr  bool
	}{
		{"Defaults", DefaultColorSettings(), false},
		{"All set", ColorSettings{HueFactor: 5, InitialHue: 0.99, BrightnessFactor: 3}, false},
		{"No hue factor", ColorSettings{}, true},
		{"Infinite hue factor", ColorSettings{HueFactor: math.Inf(1)}, true},
		{"Negative initial hue", ColorSettings{HueFactor: 1, InitialHue: -0.1}, true},
		{"Initial hue of one", ColorSettings{HueFactor: 1, InitialHue: 1}, true},
		{"Initial hue not a number", ColorSettings{HueFactor: 1, InitialHue: math.NaN()}, true},
		{"Negative brightness factor", ColorSettings{HueFactor: 1, BrightnessFactor: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Verify()
			if tt.wantErr && !errors.Is(err, ErrInvalidColorSettings) {
				t.Errorf("Expected ErrInvalidColorSettings, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestSettingsVerifyDefaults(t *testing.T) {
	settings := Settings{Width: 800, Height: 600}
	if err := settings.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if settings.Bounds == nil || *settings.Bounds != (Bounds{ReStart: DefaultReStart, ImStart: DefaultImStart, ReEnd: DefaultReEnd}) {
		t.Errorf("Expected default bounds, got %v", settings.Bounds)
	}
	if settings.Colors.HueFactor != DefaultHueFactor {
		t.Errorf("Expected hue factor %d, got %g", DefaultHueFactor, settings.Colors.HueFactor)
	}
	if settings.SuperSampling != 1 {
		t.Errorf("Expected super sampling 1, got %d", settings.SuperSampling)
	}
	if settings.Workers != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), settings.Workers)
	}

	viewport, err := settings.Viewport()
	if err != nil {
		t.Fatalf("Viewport: %v", err)
	}
	if viewport.Step() != 3.0/800 {
		t.Errorf("Expected step %g, got %g", 3.0/800, viewport.Step())
	}
}

func TestSettingsVerifyErrors(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{"No size", Settings{}, ErrInvalidDimensions},
		{"No height", Settings{Width: 10}, ErrInvalidDimensions},
		{"Inverted bounds", Settings{Width: 10, Height: 10, Bounds: &Bounds{ReStart: 1, ReEnd: 0}}, ErrDegenerateBounds},
		{"Bad colors", Settings{Width: 10, Height: 10, Colors: ColorSettings{HueFactor: 1, InitialHue: 2}}, ErrInvalidColorSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.settings.Verify(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
