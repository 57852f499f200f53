package plot

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is an immediate-mode 2D drawing target. Coordinates are in
// pixels with the origin at the top left.
type Surface interface {
	BeginFrame() error
	Clear(c color.Color)
	DrawLine(p1, p2 mgl32.Vec2)
	EndFrame() error

	// Size reports the current viewport size in pixels.
	Size() (width, height int)
}

// Resizer is implemented by surfaces that track viewport size changes.
type Resizer interface {
	Resize(width, height int)
}

// Renderer draws a Model as a wireframe. It holds no animation state.
type Renderer struct {
	model      *Model
	background color.Color
}

func NewRenderer(model *Model, background color.Color) *Renderer {
	if background == nil {
		background = color.Black
	}
	return &Renderer{model: model, background: background}
}

func (r *Renderer) Model() *Model { return r.model }

// Segments is the number of DrawLine calls issued per frame.
func (r *Renderer) Segments() int {
	rows, cols := r.model.rows, r.model.cols
	return rows*(cols-1) + cols*(rows-1)
}

// Render draws one frame viewed at angle radians. Errors from BeginFrame
// and EndFrame are returned as is.
func (r *Renderer) Render(s Surface, angle float64) error {
	if err := s.BeginFrame(); err != nil {
		return err
	}
	s.Clear(r.background)

	m := r.model

	// Row lines first, then column lines.
	for i := 0; i < m.rows; i++ {
		prev := m.Pixel(i, 0, angle)
		for j := 1; j < m.cols; j++ {
			next := m.Pixel(i, j, angle)
			s.DrawLine(prev, next)
			prev = next
		}
	}
	for j := 0; j < m.cols; j++ {
		prev := m.Pixel(0, j, angle)
		for i := 1; i < m.rows; i++ {
			next := m.Pixel(i, j, angle)
			s.DrawLine(prev, next)
			prev = next
		}
	}

	return s.EndFrame()
}
