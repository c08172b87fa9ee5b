package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TouchBoard/internal/gesture"
	"TouchBoard/internal/state"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	swatches, err := cfg.Colors()
	require.NoError(t, err)
	require.Len(t, swatches, 8)
	assert.Equal(t, state.Color{A: 0xff}, swatches[0].Color)
	assert.Equal(t, state.Color{R: 0xff, G: 0xa5, A: 0xff}, swatches[5].Color, "orange")
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(`
curve_policy = "extend"
stroke_width = 4.0
palette = ["red", "#00ff0080"]

[relay]
enabled = true
port = 9000
`)
	require.NoError(t, err)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, gesture.ExtendInPlace, p)
	assert.Equal(t, 4.0, cfg.StrokeWidth)
	assert.Equal(t, 8.0, cfg.FigureWidth)
	assert.True(t, cfg.Relay.Enabled)
	assert.Equal(t, 9000, cfg.Relay.Port)
	assert.True(t, cfg.Relay.Advertise)

	swatches, err := cfg.Colors()
	require.NoError(t, err)
	assert.Equal(t, state.Color{G: 0xff, A: 0x80}, swatches[1].Color)

	st := cfg.Style()
	assert.Equal(t, 4.0, st.StrokeWidth)
}

func TestDecodeRejectsBadValues(t *testing.T) {
	for _, text := range []string{
		`curve_policy = "sideways"`,
		`palette = ["notacolour"]`,
		`palette = []`,
		`stroke_width = 0.0`,
		`touch_slop = -1.0`,
		`background = "#12"`,
		"[relay]\nport = 70000",
		`stroke_width = "wide"`,
	} {
		_, err := Decode(text)
		assert.Error(t, err, text)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFile(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "debug"`), 0o644))
	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	require.NoError(t, os.WriteFile(path, []byte(`palette = ["mauve-ish"]`), 0o644))
	cfg, err = LoadFile(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.toml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", p)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Magenta ")
	require.NoError(t, err)
	assert.Equal(t, state.Color{R: 0xff, B: 0xff, A: 0xff}, c)

	c, err = ParseColor("#102030")
	require.NoError(t, err)
	assert.Equal(t, state.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, c)

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
