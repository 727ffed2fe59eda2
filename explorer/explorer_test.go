package explorer

import (
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
)

// newTestExplorer draws onto a 20x11 simulated terminal, a 20x20 pixel grid above the status line.
func newTestExplorer(t *testing.T, settings Settings) (*Explorer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(20, 11)

	e, err := newExplorer(screen, settings, &fakeBackend{})
	if err != nil {
		t.Fatalf("newExplorer: %v", err)
	}
	return e, screen
}

func defaultStart(t *testing.T) mandelbrot.Viewport {
	t.Helper()
	viewport, err := mandelbrot.DefaultViewport(20, 20)
	if err != nil {
		t.Fatalf("DefaultViewport: %v", err)
	}
	return viewport
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func mouse(x int, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

func screenRow(screen tcell.Screen, row int) string {
	columns, _ := screen.Size()
	var text strings.Builder
	for column := 0; column < columns; column++ {
		r, _, _, _ := screen.GetContent(column, row)
		text.WriteRune(r)
	}
	return text.String()
}

func TestNewExplorerFitsTheScreen(t *testing.T) {
	e, _ := newTestExplorer(t, Settings{})
	if got, want := e.session.Viewport(), defaultStart(t); got != want {
		t.Errorf("Expected %s, got %s", want.String(), got.String())
	}
}

func TestExplorerDragSelectsZoom(t *testing.T) {
	e, screen := newTestExplorer(t, Settings{})
	start := e.session.Viewport()

	e.handleMouse(mouse(2, 1, tcell.Button1))
	e.handleMouse(mouse(12, 6, tcell.Button1))
	if !e.dragging {
		t.Fatal("Expected a drag in progress")
	}

	e.draw()
	_, _, style, _ := screen.GetContent(2, 1)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("Expected the selection corner to be drawn reversed")
	}

	e.handleMouse(mouse(12, 6, tcell.ButtonNone))
	want, err := mandelbrot.SelectZoom{From: image.Point{X: 2, Y: 2}, To: image.Point{X: 12, Y: 12}}.Apply(start)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if e.dragging {
		t.Error("Expected the drag to end on release")
	}
	if got := e.session.Viewport(); got != want {
		t.Errorf("Expected %s, got %s", want.String(), got.String())
	}
}

func TestExplorerClickWithoutDragDoesNothing(t *testing.T) {
	e, _ := newTestExplorer(t, Settings{})
	start := e.session.Viewport()

	e.handleMouse(mouse(5, 3, tcell.Button1))
	e.handleMouse(mouse(5, 3, tcell.ButtonNone))

	if got := e.session.Viewport(); got != start {
		t.Errorf("Expected %s, got %s", start.String(), got.String())
	}
	if e.message != "" {
		t.Errorf("Expected no message, got %q", e.message)
	}
	if moved, _ := e.session.Back(); moved {
		t.Error("Expected nothing in the history")
	}
}

func TestExplorerRightClickZooms(t *testing.T) {
	e, _ := newTestExplorer(t, Settings{ZoomFactor: 4})
	start := e.session.Viewport()

	e.handleMouse(mouse(10, 4, tcell.Button2))

	want, err := mandelbrot.ClickZoom{At: image.Point{X: 10, Y: 8}, Factor: 4}.Apply(start)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := e.session.Viewport(); got != want {
		t.Errorf("Expected %s, got %s", want.String(), got.String())
	}
}

func TestExplorerKeys(t *testing.T) {
	start := defaultStart(t)
	pan := func(direction mandelbrot.Direction) mandelbrot.Viewport {
		viewport, err := mandelbrot.Pan{Direction: direction, ScrollFactor: DefaultScrollFactor}.Apply(start)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		return viewport
	}
	zoom := func(factor float64) mandelbrot.Viewport {
		viewport, err := mandelbrot.ClickZoom{At: image.Point{X: 10, Y: 10}, Factor: factor}.Apply(start)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		return viewport
	}

	tests := []struct {
		name string
		key  *tcell.EventKey
		want mandelbrot.Viewport
	}{
		{"Left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), pan(mandelbrot.Left)},
		{"Right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), pan(mandelbrot.Right)},
		{"Up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), pan(mandelbrot.Up)},
		{"Down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), pan(mandelbrot.Down)},
		{"Zoom in", keyRune('+'), zoom(DefaultZoomFactor)},
		{"Zoom out", keyRune('-'), zoom(1.0 / DefaultZoomFactor)},
		{"Reset", keyRune('r'), start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestExplorer(t, Settings{})
			if !e.handleKey(tt.key) {
				t.Fatal("Expected the explorer to keep running")
			}
			if got := e.session.Viewport(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want.String(), got.String())
			}
		})
	}
}

func TestExplorerResetAndBack(t *testing.T) {
	e, screen := newTestExplorer(t, Settings{})
	start := e.session.Viewport()

	e.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	moved := e.session.Viewport()
	e.handleKey(keyRune('r'))
	if got := e.session.Viewport(); got != start {
		t.Errorf("Expected reset to give %s, got %s", start.String(), got.String())
	}

	e.draw()
	if status := screenRow(screen, 10); !strings.HasPrefix(status, "reset | re ") {
		t.Errorf("Expected the status line to report the reset, got %q", status)
	}

	e.handleKey(tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone))
	if got := e.session.Viewport(); got != moved {
		t.Errorf("Expected back to give %s, got %s", moved.String(), got.String())
	}
}

func TestExplorerColorKeys(t *testing.T) {
	e, _ := newTestExplorer(t, Settings{})

	e.handleKey(keyRune('H'))
	e.handleKey(keyRune('I'))
	e.handleKey(keyRune('B'))

	colors := e.session.Colors()
	if colors.HueFactor != mandelbrot.DefaultHueFactor+10 || colors.InitialHue != 0.01 || colors.BrightnessFactor != 10 {
		t.Errorf("Expected hue factor 110, initial hue 0.01 and brightness factor 10, got %s", colors.String())
	}
}

func TestExplorerSave(t *testing.T) {
	dir := t.TempDir()
	e, _ := newTestExplorer(t, Settings{SaveDirectory: dir})

	if !e.handleKey(keyRune('s')) {
		t.Fatal("Expected the explorer to keep running")
	}

	saved, err := filepath.Glob(filepath.Join(dir, "mandelbrot*.png"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("Expected one saved image, got %v", saved)
	}
	if e.message != "saved "+saved[0] {
		t.Errorf("Expected the save to be reported, got %q", e.message)
	}
}

func TestExplorerQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  *tcell.EventKey
	}{
		{"q", keyRune('q')},
		{"Escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"Ctrl-C", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestExplorer(t, Settings{})
			if e.handleKey(tt.key) {
				t.Error("Expected the explorer to stop")
			}
		})
	}
}

func TestExplorerDraw(t *testing.T) {
	e, screen := newTestExplorer(t, Settings{})
	e.draw()

	r, _, _, _ := screen.GetContent(0, 0)
	if r != halfBlock {
		t.Errorf("Expected the half block in the first cell, got %q", r)
	}
	if status := screenRow(screen, 10); !strings.HasPrefix(status, "re -2.15..0.85") {
		t.Errorf("Expected the bounds on the status line, got %q", status)
	}
}

func TestExplorerResize(t *testing.T) {
	e, screen := newTestExplorer(t, Settings{})

	screen.SetSize(30, 6)
	e.resize()

	viewport := e.session.Viewport()
	if viewport.Width() != 30 || viewport.Height() != 10 {
		t.Errorf("Expected a 30x10 grid, got %dx%d", viewport.Width(), viewport.Height())
	}
}

func TestExplorerRun(t *testing.T) {
	e, screen := newTestExplorer(t, Settings{})
	screen.InjectKey(tcell.KeyRune, 'H', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	e.Run()

	if got := e.session.Colors().HueFactor; got != mandelbrot.DefaultHueFactor+10 {
		t.Errorf("Expected hue factor %d, got %g", mandelbrot.DefaultHueFactor+10, got)
	}
}
