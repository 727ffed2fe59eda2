package explorer

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/NeXX451/Mandelbrot/mandelbrot"
	"github.com/NeXX451/Mandelbrot/misc"
)

// Each terminal cell shows two pixels stacked on top of each other.
const (
	halfBlock     = '▀'
	pixelsPerCell = 2
	statusRows    = 1
)

// Explorer draws a session into a terminal and turns key and mouse input into commands.
type Explorer struct {
	message  string
	screen   tcell.Screen
	session  *Session
	settings Settings

	// drag rectangle in pixels while the left button is held
	dragging  bool
	dragStart image.Point
	dragEnd   image.Point
}

func NewExplorer(settings Settings, backend Backend) (*Explorer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	e, err := newExplorer(screen, settings, backend)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return e, nil
}

// newExplorer draws onto a screen that has already been initialized.
func newExplorer(screen tcell.Screen, settings Settings, backend Backend) (*Explorer, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	e := &Explorer{
		screen:   screen,
		settings: settings,
	}

	width, height := e.pixelSize()
	viewport, err := mandelbrot.NewViewport(settings.Bounds.ReStart, settings.Bounds.ImStart, settings.Bounds.ReEnd, width, height)
	if err != nil {
		return nil, err
	}
	e.session, err = NewSession(backend, viewport, settings.Colors)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Run handles events until the user quits. The terminal is restored before returning.
func (e *Explorer) Run() {
	defer e.screen.Fini()

	e.draw()
	for {
		event := e.screen.PollEvent()
		if event == nil {
			return
		}

		switch ev := event.(type) {
		case *tcell.EventKey:
			if !e.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *tcell.EventResize:
			e.screen.Sync()
			e.resize()
		}
		e.draw()
	}
}

func (e *Explorer) handleKey(ev *tcell.EventKey) bool {
	scroll := e.settings.ScrollFactor
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		e.report(e.session.Apply(mandelbrot.Pan{Direction: mandelbrot.Left, ScrollFactor: scroll}), "")
	case tcell.KeyRight:
		e.report(e.session.Apply(mandelbrot.Pan{Direction: mandelbrot.Right, ScrollFactor: scroll}), "")
	case tcell.KeyUp:
		e.report(e.session.Apply(mandelbrot.Pan{Direction: mandelbrot.Up, ScrollFactor: scroll}), "")
	case tcell.KeyDown:
		e.report(e.session.Apply(mandelbrot.Pan{Direction: mandelbrot.Down, ScrollFactor: scroll}), "")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		moved, err := e.session.Back()
		if err == nil && !moved {
			e.message = "nothing to go back to"
			return true
		}
		e.report(err, "")
	case tcell.KeyRune:
		return e.handleRune(ev.Rune())
	}
	return true
}

func (e *Explorer) handleRune(r rune) bool {
	colors := e.session.Colors()
	center := e.center()

	switch r {
	case 'q':
		return false
	case 'r':
		e.report(e.session.Apply(mandelbrot.Reset{}), "reset")
	case '+', '=':
		e.report(e.session.Apply(mandelbrot.ClickZoom{At: center, Factor: e.settings.ZoomFactor}), "")
	case '-':
		e.report(e.session.Apply(mandelbrot.ClickZoom{At: center, Factor: 1 / e.settings.ZoomFactor}), "")
	case 'h':
		e.report(e.session.SetColors(adjustHueFactor(colors, -10)), "")
	case 'H':
		e.report(e.session.SetColors(adjustHueFactor(colors, 10)), "")
	case 'i':
		e.report(e.session.SetColors(adjustInitialHue(colors, -0.01)), "")
	case 'I':
		e.report(e.session.SetColors(adjustInitialHue(colors, 0.01)), "")
	case 'b':
		e.report(e.session.SetColors(adjustBrightnessFactor(colors, -10)), "")
	case 'B':
		e.report(e.session.SetColors(adjustBrightnessFactor(colors, 10)), "")
	case 's':
		fileName := filepath.Join(e.settings.SaveDirectory, misc.ImageFileName(time.Now()))
		e.report(e.session.Save(fileName), fmt.Sprintf("saved %s", fileName))
	}
	return true
}

// handleMouse zooms onto a rectangle dragged with the left button, or around a right click.
func (e *Explorer) handleMouse(ev *tcell.EventMouse) {
	column, row := ev.Position()
	at := image.Point{X: column, Y: row * pixelsPerCell}

	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		if !e.dragging {
			e.dragging = true
			e.dragStart = at
		}
		e.dragEnd = at
	case ev.Buttons()&tcell.Button2 != 0:
		e.report(e.session.Apply(mandelbrot.ClickZoom{At: at, Factor: e.settings.ZoomFactor}), "")
	case ev.Buttons() == tcell.ButtonNone && e.dragging:
		e.dragging = false
		e.dragEnd = at
		if e.dragStart.X == e.dragEnd.X {
			// A click without a drag
			return
		}
		e.report(e.session.Apply(mandelbrot.SelectZoom{From: e.dragStart, To: e.dragEnd}), "")
	}
}

func (e *Explorer) resize() {
	width, height := e.pixelSize()
	e.report(e.session.Resize(width, height), "")
}

func (e *Explorer) report(err error, success string) {
	if err != nil {
		e.message = err.Error()
		return
	}
	e.message = success
}

func (e *Explorer) draw() {
	img := e.session.Frame().Image
	bounds := img.Bounds()
	columns, rows := e.screen.Size()

	for row := 0; row < rows-statusRows; row++ {
		for column := 0; column < columns; column++ {
			top := image.Point{X: column, Y: row * pixelsPerCell}
			bottom := image.Point{X: column, Y: row*pixelsPerCell + 1}
			style := tcell.StyleDefault.
				Foreground(cellColor(img, top, bounds)).
				Background(cellColor(img, bottom, bounds))
			if e.dragging && e.onSelectionEdge(column, row) {
				style = style.Reverse(true)
			}
			e.screen.SetContent(column, row, halfBlock, nil, style)
		}
	}

	status := e.session.Status()
	if e.message != "" {
		status = e.message + " | " + status
	}
	e.drawStatus(status, rows-statusRows, columns)
	e.screen.Show()
}

func (e *Explorer) drawStatus(text string, row int, columns int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(text)
	for column := 0; column < columns; column++ {
		r := ' '
		if column < len(runes) {
			r = runes[column]
		}
		e.screen.SetContent(column, row, r, nil, style)
	}
}

func (e *Explorer) onSelectionEdge(column int, row int) bool {
	left, right := min(e.dragStart.X, e.dragEnd.X), max(e.dragStart.X, e.dragEnd.X)
	top, bottom := min(e.dragStart.Y, e.dragEnd.Y)/pixelsPerCell, max(e.dragStart.Y, e.dragEnd.Y)/pixelsPerCell
	if column < left || column > right || row < top || row > bottom {
		return false
	}
	return column == left || column == right || row == top || row == bottom
}

func (e *Explorer) center() image.Point {
	viewport := e.session.Viewport()
	return image.Point{X: viewport.Width() / 2, Y: viewport.Height() / 2}
}

// pixelSize is the pixel grid that fits the terminal above the status line.
func (e *Explorer) pixelSize() (int, int) {
	columns, rows := e.screen.Size()
	return max(columns, 1), max(rows-statusRows, 1) * pixelsPerCell
}

func cellColor(img *image.RGBA, at image.Point, bounds image.Rectangle) tcell.Color {
	if !at.In(bounds) {
		return tcell.ColorBlack
	}
	c := img.RGBAAt(at.X, at.Y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
