package plot

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is one grid sample. After Build, X and Y hold the rotated plane
// coordinates and Z the function value.
type Vec3 struct {
	X, Y, Z float64
}

// RotateX tilts the vector around the horizontal axis. Its Y component is
// the projected height used by the renderer.
func (v Vec3) RotateX(angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}

// RotateZ rotates the vector around the vertical axis
func (v Vec3) RotateZ(angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// Finite reports whether every component is a finite number.
func (v Vec3) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// Pixel flattens the vector onto the screen plane: X and Y are scaled by
// spread and translated by the shifts. Z is dropped.
func (v Vec3) Pixel(spread, xShift, yShift float64) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(v.X*spread + xShift),
		float32(v.Y*spread + yShift),
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
