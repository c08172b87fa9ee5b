package config

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"

	"TouchBoard/internal/state"
)

// ParseColor resolves an SVG colour name ("red", "orange") or a
// "#rrggbb" / "#rrggbbaa" hex string.
func ParseColor(s string) (state.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	c, ok := colornames.Map[s]
	if !ok {
		return state.Color{}, fmt.Errorf("unknown colour %q", s)
	}
	// colornames values are opaque, so RGBA and NRGBA agree.
	return state.Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseHex(s string) (state.Color, error) {
	var c state.Color
	c.A = 0xff
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad length")
	}
	if err != nil {
		return state.Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return c, nil
}
