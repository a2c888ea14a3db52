// Package camera provides the fixed-eye turntable camera used by the viewer.
package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Turntable looks at a fixed target from a fixed eye while the model spins
// about the world Y axis.
type Turntable struct {
	// Lens
	FOVDegrees float32
	Near, Far  float32
	Aspect     float32

	// Placement
	Eye, Target, Up mgl32.Vec3

	// Model is applied before the spin. Identity by default.
	Model mgl32.Mat4

	// SpinDegreesPerSecond is the turntable speed. 0 holds the scene still.
	SpinDegreesPerSecond float32
}

// NewTurntable creates a camera with the viewer's default framing.
func NewTurntable() *Turntable {
	return &Turntable{
		FOVDegrees:           90,
		Near:                 0.1,
		Far:                  200,
		Aspect:               16.0 / 9.0,
		Eye:                  mgl32.Vec3{100, 3, 0},
		Target:               mgl32.Vec3{0, 0, 0},
		Up:                   mgl32.Vec3{0, 1, 0},
		Model:                mgl32.Ident4(),
		SpinDegreesPerSecond: 45,
	}
}

// SetViewport updates the aspect ratio from a framebuffer size.
// Degenerate sizes (minimized windows) keep the previous aspect.
func (c *Turntable) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ProjectionMatrix returns the perspective projection.
func (c *Turntable) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOVDegrees), c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the look-at view matrix.
func (c *Turntable) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Angle returns the spin angle in radians after elapsed time.
func (c *Turntable) Angle(elapsed time.Duration) float32 {
	return mgl32.DegToRad(float32(elapsed.Seconds()) * c.SpinDegreesPerSecond)
}

// ModelMatrix returns Model * RotateY(angle) for the elapsed time.
func (c *Turntable) ModelMatrix(elapsed time.Duration) mgl32.Mat4 {
	return c.Model.Mul4(mgl32.HomogRotate3DY(c.Angle(elapsed)))
}

// MVP returns Projection * View * Model * RotateY for the elapsed time.
func (c *Turntable) MVP(elapsed time.Duration) mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4(c.ModelMatrix(elapsed))
}
