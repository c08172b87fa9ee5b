package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"TouchBoard/internal/state"
)

// Raster is a Surface that paints into an RGBA image.
type Raster struct {
	dc    *gg.Context
	scale float64
}

var _ Surface = (*Raster)(nil)

// NewRaster creates a w×h raster. Non-positive sizes are clamped to 1.
func NewRaster(w, h int) *Raster {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Raster{dc: gg.NewContext(w, h), scale: 1}
}

// SetScale sets how many pixels one surface unit covers. Coordinates and
// widths are both scaled. Non-positive scales are ignored.
func (r *Raster) SetScale(s float64) {
	if s > 0 {
		r.scale = s
	}
}

// Image returns the painted pixels.
func (r *Raster) Image() *image.RGBA {
	return r.dc.Image().(*image.RGBA)
}

// Bounds returns the raster size.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.dc.Width(), r.dc.Height())
}

func (r *Raster) Fill(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Polyline(points []state.Point, c color.Color, width float64) {
	if len(points) == 1 {
		r.Dot(points[0], c, width)
		return
	}
	r.path(points)
	r.stroke(c, width)
}

func (r *Raster) Segment(a, b state.Point, c color.Color, width float64) {
	if a == b {
		r.Dot(a, c, width)
		return
	}
	r.path([]state.Point{a, b})
	r.stroke(c, width)
}

func (r *Raster) FillRect(rc state.Rect, c color.Color) {
	k := r.scale
	r.dc.DrawRectangle(rc.Min.X*k, rc.Min.Y*k, rc.Dx()*k, rc.Dy()*k)
	r.dc.SetColor(c)
	r.dc.Fill()
}

func (r *Raster) Dot(p state.Point, c color.Color, diameter float64) {
	k := r.scale
	r.dc.DrawCircle(p.X*k, p.Y*k, diameter*k/2)
	r.dc.SetColor(c)
	r.dc.Fill()
}

func (r *Raster) FillPolygon(points []state.Point, c color.Color) {
	r.path(points)
	r.dc.ClosePath()
	r.dc.SetColor(c)
	r.dc.Fill()
}

// path starts a new sub-path through points.
func (r *Raster) path(points []state.Point) {
	k := r.scale
	r.dc.NewSubPath()
	r.dc.MoveTo(points[0].X*k, points[0].Y*k)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X*k, p.Y*k)
	}
}

// stroke strokes the current path with round caps and joins.
func (r *Raster) stroke(c color.Color, width float64) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width * r.scale)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.dc.Stroke()
}
