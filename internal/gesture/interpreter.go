// Package gesture turns pointer events into shapes on a state.Drawing.
package gesture

import (
	"log/slog"

	"TouchBoard/internal/state"
)

// handler interprets one event for a mode. It returns false for events
// the mode does not handle.
type handler func(in *Interpreter, ev Event) bool

var handlers = map[state.Mode]handler{
	state.ModeCurve: handleCurve,
	state.ModeLine:  handleLine,
	state.ModeBox:   handleBox,
	state.ModePoly:  handlePoly,
}

// Interpreter owns the drawing of one surface together with its tool
// context and the shape currently under construction. At most one of the
// in-progress references is set at any time.
//
// An Interpreter is driven from a single goroutine, the UI thread.
type Interpreter struct {
	drawing *state.Drawing
	ctx     state.Context
	opts    options
	log     *slog.Logger
	clock   *state.GestureClock
	pan     *PanDetector

	gesture string

	stroke []state.Point // curve stroke so far, nil when no stroke
	curve  *state.Curve  // curve grown in place, ExtendInPlace only
	line   *state.Line
	box    *state.Box
	figure *state.Figure
}

// New creates an interpreter over an empty drawing in curve mode.
func New(opts ...Option) *Interpreter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Interpreter{
		drawing: state.NewDrawing(),
		ctx:     state.Context{Mode: state.ModeCurve, Color: o.color},
		opts:    o,
		log:     o.logger,
		clock:   state.NewGestureClock(),
		pan:     NewPanDetector(o.slop),
	}
}

// Drawing returns the committed shapes.
func (in *Interpreter) Drawing() *state.Drawing { return in.drawing }

// InProgress returns the multi-touch figure under construction, or nil.
func (in *Interpreter) InProgress() *state.Figure { return in.figure }

// ActiveLine returns the line following the pointer, or nil.
func (in *Interpreter) ActiveLine() *state.Line { return in.line }

// ActiveBox returns the box following the pointer, or nil.
func (in *Interpreter) ActiveBox() *state.Box { return in.box }

// Context returns a copy of the tool context.
func (in *Interpreter) Context() state.Context { return in.ctx }

// Mode returns the current drawing mode.
func (in *Interpreter) Mode() state.Mode { return in.ctx.Mode }

// Color returns the current drawing colour.
func (in *Interpreter) Color() state.Color { return in.ctx.Color }

// SetMode switches the tool. A gesture in flight is abandoned: shapes
// already in a store stay as they are, an uncommitted figure is dropped.
func (in *Interpreter) SetMode(m state.Mode) {
	if m == in.ctx.Mode {
		return
	}
	in.abandon()
	in.ctx.Mode = m
	in.log.Debug("mode changed", slog.String("mode", m.String()))
}

// SetColor sets the colour of shapes created from now on.
func (in *Interpreter) SetColor(c state.Color) {
	in.ctx.Color = c
}

// SetPan enables or disables panning of figures in poly mode.
func (in *Interpreter) SetPan(on bool) {
	in.ctx.Pan = on
	in.pan.Reset()
}

// Clear empties every store, drops the shape under construction and
// turns panning off. It always requests a redraw.
func (in *Interpreter) Clear() {
	if r, ok := in.drawing.Bounds(); ok {
		in.log.Debug("drawing cleared",
			slog.Int("shapes", in.drawing.Len()),
			slog.Float64("width", r.Dx()),
			slog.Float64("height", r.Dy()))
	}
	in.drawing.Clear()
	in.abandon()
	in.ctx.Pan = false
	in.invalidate()
}

// Handle interprets ev under the current mode. It returns whether the
// event was consumed; consumed events request a redraw. Events carrying a
// pointer id outside [0, state.MaxPointers) are declined.
func (in *Interpreter) Handle(ev Event) bool {
	if len(ev.Pointers) == 0 && ev.Action != ActionCancel {
		return false
	}
	if err := ev.Validate(); err != nil {
		in.log.Debug("event declined", slog.String("err", err.Error()))
		return false
	}
	if in.ctx.Pan && in.ctx.Mode == state.ModePoly {
		if dx, dy, ok := in.pan.Observe(ev); ok {
			in.drawing.TranslateFigures(dx, dy)
			in.invalidate()
		}
	}
	h, ok := handlers[in.ctx.Mode]
	if !ok || !h(in, ev) {
		return false
	}
	in.invalidate()
	return true
}

func (in *Interpreter) invalidate() {
	if in.opts.invalidate != nil {
		in.opts.invalidate()
	}
}

func (in *Interpreter) begin() {
	in.gesture = in.clock.Next()
	in.log.Debug("gesture started",
		slog.String("gesture", in.gesture),
		slog.String("mode", in.ctx.Mode.String()))
}

func (in *Interpreter) end(a Action) {
	if in.gesture == "" {
		return
	}
	in.log.Debug("gesture ended",
		slog.String("gesture", in.gesture),
		slog.String("action", a.String()))
	in.gesture = ""
}

func (in *Interpreter) abandon() {
	if in.gesture != "" {
		in.log.Debug("gesture abandoned", slog.String("gesture", in.gesture))
	}
	in.gesture = ""
	in.stroke = nil
	in.curve = nil
	in.line = nil
	in.box = nil
	in.figure = nil
	in.pan.Reset()
}
