package plot

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ImageSurface is a software Surface that draws into an RGBA image.
type ImageSurface struct {
	img     *image.RGBA
	pen     color.RGBA
	inFrame bool
}

func NewImageSurface(width, height int, pen color.Color) *ImageSurface {
	return &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		pen: color.RGBAModel.Convert(pen).(color.RGBA),
	}
}

// Image returns the backing image. It is only complete after EndFrame.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

func (s *ImageSurface) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image. Its contents are discarded.
func (s *ImageSurface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (s *ImageSurface) BeginFrame() error {
	if s.inFrame {
		return &DrawError{Op: "begin frame", Err: errors.New("frame already in progress")}
	}
	s.inFrame = true
	return nil
}

func (s *ImageSurface) EndFrame() error {
	if !s.inFrame {
		return &DrawError{Op: "end frame", Err: errors.New("no frame in progress")}
	}
	s.inFrame = false
	return nil
}

func (s *ImageSurface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawLine steps from p1 to p2 one pixel at a time along the major axis.
// Pixels outside the image are skipped.
func (s *ImageSurface) DrawLine(p1, p2 mgl32.Vec2) {
	x1, y1 := math.Round(float64(p1.X())), math.Round(float64(p1.Y()))
	x2, y2 := math.Round(float64(p2.X())), math.Round(float64(p2.Y()))

	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		s.plot(int(x1), int(y1))
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x, y := x1, y1
	for i := 0; i <= int(steps); i++ {
		s.plot(int(math.Round(x)), int(math.Round(y)))
		x += xInc
		y += yInc
	}
}

func (s *ImageSurface) plot(x, y int) {
	b := s.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	offset := s.img.PixOffset(x, y)
	s.img.Pix[offset] = s.pen.R
	s.img.Pix[offset+1] = s.pen.G
	s.img.Pix[offset+2] = s.pen.B
	s.img.Pix[offset+3] = s.pen.A
}
