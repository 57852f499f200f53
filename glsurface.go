package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"plot3d/internal/plot"
)

// glSurface batches a frame's lines into one vertex buffer and draws them
// with gl.LINES on EndFrame.
type glSurface struct {
	window *glfw.Window

	program       uint32
	vao, vbo      uint32
	projectionLoc int32
	penLoc        int32
	pen           [4]float32

	width, height int
	vertices      []float32
	inFrame       bool
}

// newGLSurface needs the window's GL context to be current.
func newGLSurface(window *glfw.Window, pen color.Color, segments int) (*glSurface, error) {
	program, err := linkProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, err
	}
	projectionLoc, err := uniform(program, "projection")
	if err != nil {
		return nil, err
	}
	penLoc, err := uniform(program, "pen")
	if err != nil {
		return nil, err
	}

	s := &glSurface{
		window:        window,
		program:       program,
		projectionLoc: projectionLoc,
		penLoc:        penLoc,
		pen:           rgba(pen),
		vertices:      make([]float32, 0, segments*4),
	}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)

	position := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(position)
	gl.VertexAttribPointer(position, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	w, h := window.GetSize()
	s.Resize(w, h)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("gl setup: error 0x%x", code)
	}
	return s, nil
}

func (s *glSurface) Size() (width, height int) { return s.width, s.height }

// Resize maps pixel coordinates onto a width x height window. The viewport
// follows the framebuffer, which may be larger on high-density displays.
func (s *glSurface) Resize(width, height int) {
	s.width, s.height = width, height
	fbw, fbh := s.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	projection := mgl32.Ortho2D(0, float32(width), float32(height), 0)
	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.projectionLoc, 1, false, &projection[0])
}

func (s *glSurface) BeginFrame() error {
	if s.inFrame {
		return &plot.DrawError{Op: "begin frame", Err: errors.New("frame already in progress")}
	}
	if s.width == 0 || s.height == 0 {
		return &plot.DrawError{Op: "begin frame", Err: fmt.Errorf("empty viewport %dx%d", s.width, s.height)}
	}
	s.inFrame = true
	s.vertices = s.vertices[:0]
	return nil
}

func (s *glSurface) Clear(c color.Color) {
	v := rgba(c)
	gl.ClearColor(v[0], v[1], v[2], v[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (s *glSurface) DrawLine(p1, p2 mgl32.Vec2) {
	s.vertices = append(s.vertices, p1.X(), p1.Y(), p2.X(), p2.Y())
}

func (s *glSurface) EndFrame() error {
	if !s.inFrame {
		return &plot.DrawError{Op: "end frame", Err: errors.New("no frame in progress")}
	}
	s.inFrame = false

	gl.UseProgram(s.program)
	gl.Uniform4fv(s.penLoc, 1, &s.pen[0])
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	if len(s.vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(s.vertices)*4, gl.Ptr(s.vertices), gl.STREAM_DRAW)
		gl.DrawArrays(gl.LINES, 0, int32(len(s.vertices)/2))
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return &plot.DrawError{Op: "end frame", Err: fmt.Errorf("gl error 0x%x", code)}
	}
	s.window.SwapBuffers()
	return nil
}

func (s *glSurface) Delete() {
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteProgram(s.program)
}

func rgba(c color.Color) [4]float32 {
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}
