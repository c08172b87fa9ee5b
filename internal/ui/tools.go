package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"TouchBoard/internal/config"
	"TouchBoard/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the controls that drive a board.
type Toolbar struct {
	Modes    *widget.Select
	Swatches []*colorSwatch
	Pan      *widget.Check
	Clear    *widget.Button
}

// NewToolbar builds the controls for board. The first swatch becomes the
// current colour.
func NewToolbar(board *BoardWidget, swatches []config.Swatch) *Toolbar {
	tb := &Toolbar{}

	// --- Tool selector ---
	names := make([]string, 0, len(state.Modes))
	for _, m := range state.Modes {
		names = append(names, m.String())
	}
	tb.Modes = widget.NewSelect(names, func(name string) {
		if m, err := state.ParseMode(name); err == nil {
			board.SetMode(m)
		}
	})
	tb.Modes.SetSelected(board.Interpreter().Mode().String())

	// --- Color Palette ---
	for _, sw := range swatches {
		tb.Swatches = append(tb.Swatches, newColorSwatch(sw.Color, board.SetColor))
	}
	if len(swatches) > 0 {
		board.SetColor(swatches[0].Color)
	}

	// --- Pan toggle and reset ---
	tb.Pan = widget.NewCheck("Pan figures", board.SetPan)
	tb.Clear = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), board.Clear)
	board.OnCleared = func() {
		tb.Pan.SetChecked(false)
	}

	return tb
}

// Object lays the toolbar out in one row.
func (tb *Toolbar) Object() fyne.CanvasObject {
	colorBox := container.NewHBox()
	for _, s := range tb.Swatches {
		colorBox.Add(s)
	}
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb.Modes,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		tb.Pan,
		layout.NewSpacer(),
		tb.Clear,
	)
}
