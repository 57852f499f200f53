package config

import (
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	spread, x, y := cfg.Placement()
	assert.Equal(t, 200.0, spread)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	opts := cfg.ModelOptions()
	assert.Equal(t, 51, opts.Rows)
	assert.Equal(t, 51, opts.Cols)
	assert.InDelta(t, math.Pi/4, opts.Rotation, 1e-12)

	assert.Equal(t, 2.0, cfg.AngleFunc()(2))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, cfg.Colors.Background.Color())
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, cfg.Colors.Foreground.Color())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot3d.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 1024
height = 768

[plot]
function = "saddle"
rows = 31
spread = 150
x_shift = 512
y_shift = 384

[animation]
mode = "oscillate"
amplitude = 1.0
period = 2.0

[colors]
foreground = [0.0, 1.0, 0.5]

[log]
level = "debug"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, "Plot 3D", cfg.Window.Title, "defaults survive")
	assert.Equal(t, "saddle", cfg.Plot.Function)
	assert.Equal(t, 31, cfg.Plot.Rows)
	assert.Equal(t, 51, cfg.Plot.Cols)

	spread, x, y := cfg.Placement()
	assert.Equal(t, 150.0, spread)
	assert.Equal(t, 512.0, x)
	assert.Equal(t, 384.0, y)

	assert.InDelta(t, 1.0, cfg.AngleFunc()(0.5), 1e-12)
	assert.Equal(t, color.RGBA{0, 0xff, 0x80, 0xff}, cfg.Colors.Foreground.Color())

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		toml string
		want string
	}{
		{"syntax", "[plot\nrows = 3", "line"},
		{"unknown key", "[plot]\ncolumns = 3", "columns"},
		{"small grid", "[plot]\nrows = 1", "at least 2x2"},
		{"window", "[window]\nwidth = 0", "window size"},
		{"function", "[plot]\nfunction = \"teapot\"", "unknown function"},
		{"mode", "[animation]\nmode = \"spin\"", "unknown animation mode"},
		{"period", "[animation]\nmode = \"oscillate\"\nperiod = 0.0", "period"},
		{"color", "[colors]\nbackground = [0.0, 2.0, 0.0]", "background color"},
		{"log level", "[log]\nlevel = \"loud\"", "log level"},
		{"nan speed", "[animation]\nspeed = nan", "animation speed NaN must be finite"},
		{"inf amplitude", "[animation]\namplitude = -inf", "animation amplitude"},
		{"inf period", "[animation]\nmode = \"oscillate\"\nperiod = inf", "animation period +Inf must be finite"},
		{"nan spread", "[plot]\nspread = nan", "plot spread"},
		{"nan color", "[colors]\nforeground = [nan, 1.0, 1.0]", "foreground color"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.toml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateColorErrorOrder(t *testing.T) {
	cfg := Default()
	cfg.Colors.Background = RGB{-1, 0, 0}
	cfg.Colors.Foreground = RGB{0, 0, float32(math.NaN())}

	for i := 0; i < 10; i++ {
		err := cfg.Validate()
		require.Error(t, err)
		msg := err.Error()
		bg := strings.Index(msg, "background color")
		fg := strings.Index(msg, "foreground color")
		require.GreaterOrEqual(t, bg, 0)
		require.Greater(t, fg, bg)
	}
}
