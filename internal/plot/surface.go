// Package plot builds a sampled 3D surface and draws it as an animated
// wireframe onto an immediate-mode 2D Surface.
package plot

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultRotation is the fixed rotation applied to every sample at build time.
const DefaultRotation = math.Pi / 4

// Func is the plotted function, sampled over [-1, 1] x [-1, 1].
type Func func(x, y float64) float64

// Options configures Build.
type Options struct {
	Rows, Cols int

	// Rotation about the vertical axis, in radians, applied once to every sample.
	Rotation float64

	// Spread is the number of pixels per plot unit. XShift and YShift are the
	// pixel position of the plot origin.
	Spread, XShift, YShift float64
}

// Model is the immutable sampled grid. It is safe to read from any number
// of goroutines.
type Model struct {
	rows, cols int
	samples    []Vec3

	spread, xShift, yShift float64
}

// Build samples f on an opts.Rows x opts.Cols grid.
func Build(f Func, opts Options) (*Model, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil function", ErrConstruction)
	}
	if opts.Rows < 2 || opts.Cols < 2 {
		return nil, fmt.Errorf("%w: grid %dx%d, need at least 2x2", ErrConstruction, opts.Rows, opts.Cols)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"rotation", opts.Rotation},
		{"spread", opts.Spread},
		{"x shift", opts.XShift},
		{"y shift", opts.YShift},
	} {
		if !finite(p.v) {
			return nil, fmt.Errorf("%w: %s is %v", ErrConstruction, p.name, p.v)
		}
	}

	m := &Model{
		rows:    opts.Rows,
		cols:    opts.Cols,
		samples: make([]Vec3, opts.Rows*opts.Cols),
		spread:  opts.Spread,
		xShift:  opts.XShift,
		yShift:  opts.YShift,
	}

	halfRows, halfCols := opts.Rows/2, opts.Cols/2
	for i := 0; i < m.rows; i++ {
		y := float64(i-halfRows) / float64(halfRows)
		for j := 0; j < m.cols; j++ {
			x := float64(j-halfCols) / float64(halfCols)
			z := f(x, y)
			if !finite(z) {
				return nil, &SampleError{Row: i, Col: j, X: x, Y: y, Z: z}
			}
			m.samples[i*m.cols+j] = Vec3{X: x, Y: y, Z: z}.RotateZ(opts.Rotation)
		}
	}
	return m, nil
}

// Fit returns a placement that centers the plot in a width x height viewport
// with one plot unit spanning a third of the height.
func Fit(width, height int) (spread, xShift, yShift float64) {
	return float64(height) / 3, float64(width) / 2, float64(height) / 2
}

func (m *Model) Rows() int { return m.rows }
func (m *Model) Cols() int { return m.cols }

func (m *Model) Spread() float64 { return m.spread }
func (m *Model) XShift() float64 { return m.xShift }
func (m *Model) YShift() float64 { return m.yShift }

// At returns the rotated sample at row i, column j.
func (m *Model) At(i, j int) Vec3 {
	return m.samples[i*m.cols+j]
}

// Pixel projects sample (i, j) at the given viewing angle into pixel space.
func (m *Model) Pixel(i, j int, angle float64) mgl32.Vec2 {
	return m.At(i, j).RotateX(angle).Pixel(m.spread, m.xShift, m.yShift)
}
