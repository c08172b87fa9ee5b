package gesture

import (
	"fmt"
	"log/slog"
	"strings"

	"TouchBoard/internal/applog"
	"TouchBoard/internal/state"
)

// CurvePolicy decides how moves in curve mode reach the curve store.
type CurvePolicy int

const (
	// AppendPerMove stores a new curve holding the whole stroke so far on
	// every move, so one stroke leaves overlapping prefixes in the store.
	AppendPerMove CurvePolicy = iota
	// ExtendInPlace stores one curve per stroke and grows it on every move.
	ExtendInPlace
)

func (p CurvePolicy) String() string {
	if p == ExtendInPlace {
		return "extend"
	}
	return "append"
}

// ParseCurvePolicy accepts "append" and "extend".
func ParseCurvePolicy(s string) (CurvePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "append":
		return AppendPerMove, nil
	case "extend":
		return ExtendInPlace, nil
	}
	return AppendPerMove, fmt.Errorf("unknown curve policy %q", s)
}

// DefaultTouchSlop is the distance in surface units the focal point must
// travel before a pan starts.
const DefaultTouchSlop = 8.0

type options struct {
	policy     CurvePolicy
	slop       float64
	color      state.Color
	invalidate func()
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		policy: AppendPerMove,
		slop:   DefaultTouchSlop,
		color:  state.Color{A: 0xff},
		logger: applog.Nop(),
	}
}

// Option configures an Interpreter.
type Option func(*options)

// WithCurvePolicy selects the curve accumulation policy.
func WithCurvePolicy(p CurvePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithTouchSlop sets the pan threshold. Negative values are ignored.
func WithTouchSlop(slop float64) Option {
	return func(o *options) {
		if slop >= 0 {
			o.slop = slop
		}
	}
}

// WithColor sets the initial drawing colour.
func WithColor(c state.Color) Option {
	return func(o *options) { o.color = c }
}

// WithInvalidate registers the redraw request callback.
func WithInvalidate(fn func()) Option {
	return func(o *options) { o.invalidate = fn }
}

// WithLogger sets the logger. A nil logger keeps logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
