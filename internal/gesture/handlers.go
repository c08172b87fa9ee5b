package gesture

import (
	"log/slog"
	"slices"

	"TouchBoard/internal/state"
)

func handleCurve(in *Interpreter, ev Event) bool {
	p, _ := ev.Acting()
	switch ev.Action {
	case ActionDown:
		in.begin()
		in.stroke = []state.Point{p.Point()}
		in.curve = nil
	case ActionMove:
		if in.stroke == nil {
			return true
		}
		in.stroke = append(in.stroke, p.Point())
		in.storeStroke()
	case ActionUp, ActionCancel:
		in.end(ev.Action)
		in.stroke = nil
		in.curve = nil
	default:
		return false
	}
	return true
}

// storeStroke records the stroke so far according to the curve policy.
func (in *Interpreter) storeStroke() {
	if in.opts.policy == ExtendInPlace {
		if in.curve == nil {
			in.curve = &state.Curve{Path: slices.Clone(in.stroke), Color: in.ctx.Color}
			in.drawing.AddCurve(in.curve)
			return
		}
		in.curve.Path = append(in.curve.Path, in.stroke[len(in.stroke)-1])
		return
	}
	in.drawing.AddCurve(&state.Curve{Path: slices.Clone(in.stroke), Color: in.ctx.Color})
}

func handleLine(in *Interpreter, ev Event) bool {
	p, _ := ev.Acting()
	switch ev.Action {
	case ActionDown:
		in.begin()
		in.line = &state.Line{Start: p.Point(), End: p.Point(), Color: in.ctx.Color}
		in.drawing.AddLine(in.line)
	case ActionMove:
		if in.line != nil {
			in.line.End = p.Point()
		}
	case ActionUp, ActionCancel:
		in.end(ev.Action)
		in.line = nil
	default:
		return false
	}
	return true
}

func handleBox(in *Interpreter, ev Event) bool {
	p, _ := ev.Acting()
	switch ev.Action {
	case ActionDown:
		in.begin()
		in.box = state.NewBox(p.Point(), in.ctx.Color)
		in.drawing.AddBox(in.box)
	case ActionMove:
		if in.box != nil {
			in.box.Current = p.Point()
		}
	case ActionUp, ActionCancel:
		in.end(ev.Action)
		in.box = nil
	default:
		return false
	}
	return true
}

func handlePoly(in *Interpreter, ev Event) bool {
	p, _ := ev.Acting()
	switch ev.Action {
	case ActionDown:
		if in.figure != nil {
			in.log.Debug("figure replaced before commit", slog.String("gesture", in.gesture))
		}
		in.begin()
		in.figure = state.NewFigure(in.ctx.Color)
		in.figure.Set(p.ID, p.Point())
	case ActionPointerDown:
		if in.figure != nil {
			in.figure.Set(p.ID, p.Point())
		}
	case ActionMove:
		if in.figure == nil {
			return true
		}
		for _, q := range ev.Pointers {
			in.figure.Set(q.ID, q.Point())
		}
	case ActionPointerUp:
		if in.figure == nil {
			return true
		}
		in.figure.Set(p.ID, p.Point())
		if len(ev.Pointers) <= 1 {
			in.commitFigure(ev.Action)
		}
	case ActionUp:
		if in.figure == nil {
			return true
		}
		in.figure.Set(p.ID, p.Point())
		in.commitFigure(ev.Action)
	case ActionCancel:
		in.end(ev.Action)
		in.figure = nil
	default:
		return false
	}
	return true
}

func (in *Interpreter) commitFigure(a Action) {
	in.drawing.AddFigure(in.figure)
	in.log.Debug("figure committed",
		slog.String("gesture", in.gesture),
		slog.Int("points", len(in.figure.Points)))
	in.figure = nil
	in.end(a)
}
