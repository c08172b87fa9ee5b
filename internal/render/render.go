package render

import "TouchBoard/internal/state"

// Scene is what a frame is rendered from.
type Scene interface {
	Drawing() *state.Drawing
	InProgress() *state.Figure
}

// Frame draws sc onto s, back to front: background, curves, lines, boxes,
// committed figures, then the figure under construction. It only reads sc.
func Frame(s Surface, sc Scene, st Style) {
	s.Fill(st.Background)

	d := sc.Drawing()
	if d != nil {
		for _, c := range d.Curves() {
			if len(c.Path) > 0 {
				s.Polyline(c.Path, c.Color, st.StrokeWidth)
			}
		}
		for _, l := range d.Lines() {
			s.Segment(l.Start, l.End, l.Color, st.StrokeWidth)
		}
		for _, b := range d.Boxes() {
			s.FillRect(b.Rect(), b.Color)
		}
		for _, f := range d.Figures() {
			Figure(s, f, st)
		}
	}
	if f := sc.InProgress(); f != nil {
		Figure(s, f, st)
	}
}

// Figure draws a multi-touch figure by point count: one point is a dot, two
// points a segment, three or more a filled closed polygon.
func Figure(s Surface, f *state.Figure, st Style) {
	switch n := len(f.Points); {
	case n == 0:
	case n == 1:
		s.Dot(f.Points[0], f.Color, st.FigureWidth)
	case n == 2:
		s.Segment(f.Points[0], f.Points[1], f.Color, st.FigureWidth)
	default:
		s.FillPolygon(f.Points, f.Color)
	}
}
