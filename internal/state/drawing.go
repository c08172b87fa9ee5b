package state

// Drawing holds the committed shapes of one board, one ordered store per
// shape kind. Stores only grow until Clear.
//
// Drawing is not safe for concurrent use; it belongs to the UI thread.
type Drawing struct {
	curves  []*Curve
	lines   []*Line
	boxes   []*Box
	figures []*Figure
}

// NewDrawing creates an empty drawing.
func NewDrawing() *Drawing {
	return &Drawing{}
}

// AddCurve appends c to the curve store.
func (d *Drawing) AddCurve(c *Curve) { d.curves = append(d.curves, c) }

// AddLine appends l to the line store.
func (d *Drawing) AddLine(l *Line) { d.lines = append(d.lines, l) }

// AddBox appends b to the box store.
func (d *Drawing) AddBox(b *Box) { d.boxes = append(d.boxes, b) }

// AddFigure appends f to the figure store.
func (d *Drawing) AddFigure(f *Figure) { d.figures = append(d.figures, f) }

// Curves returns the committed curves in insertion order.
// The returned slice must not be modified.
func (d *Drawing) Curves() []*Curve { return d.curves }

// Lines returns the committed lines in insertion order.
func (d *Drawing) Lines() []*Line { return d.lines }

// Boxes returns the committed boxes in insertion order.
func (d *Drawing) Boxes() []*Box { return d.boxes }

// Figures returns the committed multi-touch figures in insertion order.
func (d *Drawing) Figures() []*Figure { return d.figures }

// Len returns the total number of committed shapes.
func (d *Drawing) Len() int {
	return len(d.curves) + len(d.lines) + len(d.boxes) + len(d.figures)
}

// Empty reports whether every store is empty.
func (d *Drawing) Empty() bool { return d.Len() == 0 }

// Clear empties all four stores.
func (d *Drawing) Clear() {
	d.curves = nil
	d.lines = nil
	d.boxes = nil
	d.figures = nil
}

// TranslateFigures moves every committed figure by (dx, dy).
// Curves, lines and boxes are left in place.
func (d *Drawing) TranslateFigures(dx, dy float64) {
	for _, f := range d.figures {
		f.Translate(dx, dy)
	}
}

// Bounds returns the rectangle covering every committed shape.
// ok is false when the drawing has no points at all.
func (d *Drawing) Bounds() (r Rect, ok bool) {
	add := func(o Rect) {
		if !ok {
			r, ok = o, true
			return
		}
		r = r.Union(o)
	}
	for _, c := range d.curves {
		if b, has := BoundsOf(c.Path); has {
			add(b)
		}
	}
	for _, l := range d.lines {
		add(RectFromCorners(l.Start, l.End))
	}
	for _, b := range d.boxes {
		add(b.Rect())
	}
	for _, f := range d.figures {
		if b, has := BoundsOf(f.Points); has {
			add(b)
		}
	}
	return r, ok
}
