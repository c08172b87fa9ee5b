package state

import (
	"fmt"
	"image/color"
	"strings"
)

// Point is a position on the board in surface coordinates.
type Point struct{ X, Y float64 }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Color is the colour tag carried by every shape. Shapes compare colours by value.
type Color = color.NRGBA

// Curve is a free-hand polyline.
type Curve struct {
	Path  []Point
	Color Color
}

// Line is a straight segment. End follows the pointer until the gesture ends.
type Line struct {
	Start Point
	End   Point
	Color Color
}

// Box is an axis-aligned rectangle spanned by the touch-down point and the
// current pointer position. Use Rect to get the normalized bounds.
type Box struct {
	Origin  Point
	Current Point
	Color   Color
}

// NewBox starts a box at origin. Origin and Current are independent copies.
func NewBox(origin Point, c Color) *Box {
	return &Box{Origin: origin, Current: origin, Color: c}
}

// Rect returns the rectangle with Min holding the smaller coordinates.
func (b *Box) Rect() Rect {
	return RectFromCorners(b.Origin, b.Current)
}

// MaxPointers bounds pointer ids: valid ids are 0 through MaxPointers-1.
const MaxPointers = 32

// Figure is a multi-touch shape. Points are indexed by pointer id.
type Figure struct {
	Points []Point
	Color  Color
}

// NewFigure returns an empty figure in colour c.
func NewFigure(c Color) *Figure {
	return &Figure{Color: c}
}

// Slot returns the point stored for pointer id, growing the sequence with
// zero points until index id exists. Ids outside [0, MaxPointers) return nil.
func (f *Figure) Slot(id int) *Point {
	if id < 0 || id >= MaxPointers {
		return nil
	}
	for id >= len(f.Points) {
		f.Points = append(f.Points, Point{})
	}
	return &f.Points[id]
}

// Set stores p at the slot for pointer id.
func (f *Figure) Set(id int, p Point) {
	if slot := f.Slot(id); slot != nil {
		*slot = p
	}
}

// Translate moves every point of the figure by (dx, dy).
func (f *Figure) Translate(dx, dy float64) {
	for i := range f.Points {
		f.Points[i] = f.Points[i].Add(dx, dy)
	}
}

// Mode selects which shape tool pointer gestures produce.
type Mode int

const (
	ModeCurve Mode = iota
	ModeLine
	ModeBox
	ModePoly
)

// Modes lists every mode in toolbar order.
var Modes = []Mode{ModeCurve, ModeLine, ModeBox, ModePoly}

func (m Mode) String() string {
	switch m {
	case ModeCurve:
		return "curve"
	case ModeLine:
		return "line"
	case ModeBox:
		return "box"
	case ModePoly:
		return "poly"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name (case-insensitive) into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModeCurve, fmt.Errorf("unknown drawing mode %q", s)
}

// Context is the mutable tool state of one drawing surface.
type Context struct {
	Mode  Mode
	Color Color
	Pan   bool
}
