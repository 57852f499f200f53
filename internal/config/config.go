// Package config loads the plot3d TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"

	"plot3d/internal/plot"
)

type Config struct {
	Window    Window    `toml:"window"`
	Plot      Plot      `toml:"plot"`
	Animation Animation `toml:"animation"`
	Colors    Colors    `toml:"colors"`
	Log       Log       `toml:"log"`
}

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
}

type Plot struct {
	Function    string  `toml:"function"`
	Rows        int     `toml:"rows"`
	Cols        int     `toml:"cols"`
	RotationDeg float64 `toml:"rotation_deg"`

	// Spread, XShift and YShift are derived from the window size when all
	// three are zero.
	Spread float64 `toml:"spread"`
	XShift float64 `toml:"x_shift"`
	YShift float64 `toml:"y_shift"`
}

type Animation struct {
	// Mode is "linear" or "oscillate".
	Mode      string  `toml:"mode"`
	Speed     float64 `toml:"speed"`
	Amplitude float64 `toml:"amplitude"`
	Period    float64 `toml:"period"`
	// SkipDrawErrors keeps the loop running when a frame fails to draw.
	SkipDrawErrors bool `toml:"skip_draw_errors"`
}

// RGB is a color with components in [0, 1].
type RGB [3]float32

func (c RGB) Color() color.Color {
	return color.RGBA{
		R: uint8(math.Round(float64(c[0]) * 255)),
		G: uint8(math.Round(float64(c[1]) * 255)),
		B: uint8(math.Round(float64(c[2]) * 255)),
		A: 0xff,
	}
}

type Colors struct {
	Background RGB `toml:"background"`
	Foreground RGB `toml:"foreground"`
}

type Log struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "Plot 3D",
			Resizable: true,
		},
		Plot: Plot{
			Function:    "ripple",
			Rows:        51,
			Cols:        51,
			RotationDeg: 45,
		},
		Animation: Animation{
			Mode:      "linear",
			Speed:     1,
			Amplitude: 0.5,
			Period:    4,
		},
		Colors: Colors{
			Background: RGB{0, 0, 0},
			Foreground: RGB{1, 1, 1},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			keys := make([]string, 0, len(serr.Errors))
			for _, e := range serr.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return nil, fmt.Errorf("unknown keys %s", strings.Join(keys, ", "))
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Plot.Rows < 2 || c.Plot.Cols < 2 {
		errs = append(errs, fmt.Errorf("plot grid %dx%d must be at least 2x2", c.Plot.Rows, c.Plot.Cols))
	}
	if _, err := plot.LookupFunc(c.Plot.Function); err != nil {
		errs = append(errs, err)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"plot rotation_deg", c.Plot.RotationDeg},
		{"plot spread", c.Plot.Spread},
		{"plot x_shift", c.Plot.XShift},
		{"plot y_shift", c.Plot.YShift},
		{"animation speed", c.Animation.Speed},
		{"animation amplitude", c.Animation.Amplitude},
		{"animation period", c.Animation.Period},
	} {
		if !finite(f.v) {
			errs = append(errs, fmt.Errorf("%s %g must be finite", f.name, f.v))
		}
	}
	switch c.Animation.Mode {
	case "linear":
	case "oscillate":
		if !(c.Animation.Period > 0) {
			errs = append(errs, fmt.Errorf("animation period %g must be positive", c.Animation.Period))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown animation mode %q", c.Animation.Mode))
	}
	for _, col := range []struct {
		name string
		rgb  RGB
	}{
		{"background", c.Colors.Background},
		{"foreground", c.Colors.Foreground},
	} {
		for _, v := range col.rgb {
			// Written so that NaN fails too.
			if !(v >= 0 && v <= 1) {
				errs = append(errs, fmt.Errorf("%s color %v out of range [0, 1]", col.name, col.rgb))
				break
			}
		}
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Placement returns the plot spread and origin shift in pixels.
func (c *Config) Placement() (spread, xShift, yShift float64) {
	p := c.Plot
	if p.Spread == 0 && p.XShift == 0 && p.YShift == 0 {
		return plot.Fit(c.Window.Width, c.Window.Height)
	}
	return p.Spread, p.XShift, p.YShift
}

// ModelOptions converts the plot section into plot.Build options.
func (c *Config) ModelOptions() plot.Options {
	spread, xShift, yShift := c.Placement()
	return plot.Options{
		Rows:     c.Plot.Rows,
		Cols:     c.Plot.Cols,
		Rotation: mgl64.DegToRad(c.Plot.RotationDeg),
		Spread:   spread,
		XShift:   xShift,
		YShift:   yShift,
	}
}

// AngleFunc builds the animation's angle function.
func (c *Config) AngleFunc() plot.AngleFunc {
	if c.Animation.Mode == "oscillate" {
		return plot.Oscillate(c.Animation.Amplitude, c.Animation.Period)
	}
	return plot.Linear(c.Animation.Speed)
}

func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
