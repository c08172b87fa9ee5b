// Package render replays a drawing onto a Surface in a fixed layer order.
package render

import (
	"image/color"

	"TouchBoard/internal/state"
)

// Surface is the set of primitives the renderer needs from a drawing target.
type Surface interface {
	// Fill paints the whole surface.
	Fill(c color.Color)
	// Polyline strokes connected segments with round caps and joins.
	Polyline(points []state.Point, c color.Color, width float64)
	// Segment strokes one segment with round caps.
	Segment(a, b state.Point, c color.Color, width float64)
	// FillRect fills an axis-aligned rectangle.
	FillRect(r state.Rect, c color.Color)
	// Dot fills a disc of the given diameter centred on p.
	Dot(p state.Point, c color.Color, diameter float64)
	// FillPolygon fills the closed polygon through points.
	FillPolygon(points []state.Point, c color.Color)
}

// Style holds the constant paint settings of a frame.
type Style struct {
	Background  color.Color
	StrokeWidth float64 // curves and lines
	FigureWidth float64 // dots and segments of multi-touch figures
}

// DefaultStyle returns a white background with 10 unit strokes and 8 unit
// figure strokes.
func DefaultStyle() Style {
	return Style{
		Background:  color.White,
		StrokeWidth: 10,
		FigureWidth: 8,
	}
}
