package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"TouchBoard/internal/gesture"
	"TouchBoard/internal/render"
	"TouchBoard/internal/state"
)

// BoardWidget is the drawing surface. Mouse input is translated into
// pointer events for the gesture interpreter and every frame is painted
// into a raster image.
type BoardWidget struct {
	widget.BaseWidget
	interp    *gesture.Interpreter
	style     render.Style
	pointers  pointerTracker
	statusBar *widget.Label

	// OnCleared is called after Clear, e.g. to reset toolbar state.
	OnCleared func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget creates a board painted with style. opts configure the
// gesture interpreter; the redraw callback is installed by the board.
func NewBoardWidget(style render.Style, opts ...gesture.Option) *BoardWidget {
	b := &BoardWidget{
		style:     style,
		statusBar: widget.NewLabel("Ready"),
	}
	opts = append(opts, gesture.WithInvalidate(b.Refresh))
	b.interp = gesture.New(opts...)
	b.ExtendBaseWidget(b)
	return b
}

// Interpreter exposes the gesture interpreter that owns the drawing.
func (b *BoardWidget) Interpreter() *gesture.Interpreter { return b.interp }

// StatusBar returns the label the board reports to.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus shows text in the status bar. Safe to call from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// SetMode selects the drawing tool.
func (b *BoardWidget) SetMode(m state.Mode) {
	b.interp.SetMode(m)
	b.pointers.reset()
	b.SetStatus(fmt.Sprintf("Tool: %s", m))
}

// SetColor selects the colour of new shapes.
func (b *BoardWidget) SetColor(c state.Color) {
	b.interp.SetColor(c)
}

// SetPan toggles dragging of finished figures in poly mode.
func (b *BoardWidget) SetPan(on bool) {
	b.interp.SetPan(on)
}

// Clear removes every shape.
func (b *BoardWidget) Clear() {
	b.interp.Clear()
	b.pointers.reset()
	b.SetStatus("Cleared")
	if b.OnCleared != nil {
		b.OnCleared()
	}
}

// HandlePointerEvent feeds a pointer event to the interpreter and reports
// whether it was consumed.
func (b *BoardWidget) HandlePointerEvent(ev gesture.Event) bool {
	return b.interp.Handle(ev)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		b.HandlePointerEvent(b.pointers.press(e.Position))
	case desktop.MouseButtonSecondary:
		if b.interp.Mode() != state.ModePoly {
			return
		}
		if ev, ok := b.pointers.latch(e.Position); ok {
			b.HandlePointerEvent(ev)
		}
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.release(e.Position)
}

func (b *BoardWidget) release(pos fyne.Position) {
	for _, ev := range b.pointers.release(pos) {
		b.HandlePointerEvent(ev)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if ev, ok := b.pointers.move(e.Position); ok {
		b.HandlePointerEvent(ev)
	}
}

// DragEnd finishes a gesture whose button was released off the board,
// where MouseUp is not delivered. After a MouseUp it does nothing.
func (b *BoardWidget) DragEnd() {
	b.release(b.pointers.primary)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(r.paint)
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

// paint renders the current frame at pixel size w×h.
func (r *boardWidgetRenderer) paint(w, h int) image.Image {
	surface := render.NewRaster(w, h)
	if size := r.board.Size(); size.Width > 0 {
		surface.SetScale(float64(w) / float64(size.Width))
	}
	render.Frame(surface, r.board.interp, r.board.style)
	return surface.Image()
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
