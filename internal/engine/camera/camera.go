// Package camera provides the orbital camera used to inspect the terrain.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lockhart/internal/config"
)

// Default orbit: an oblique view from outside a 1024-sample terrain.
const (
	DefaultRadius   = 2000.0
	DefaultAzimuth  = -200.0
	DefaultPolar    = 70.0
	DefaultMinPolar = 1.0
	DefaultMaxPolar = 179.0
)

// OrbitCamera orbits a fixed target on a sphere. Angles are in degrees.
//
// The polar angle is measured from the +Y axis and kept inside
// [MinPolar, MaxPolar] so the eye never reaches a pole, where the look-at
// basis degenerates. The azimuth accumulates without wrapping.
type OrbitCamera struct {
	Target mgl32.Vec3

	Radius  float32 // Distance from target, must be > 0
	Azimuth float32 // Rotation around the vertical axis
	Polar   float32 // Angle from the vertical axis

	MinPolar float32
	MaxPolar float32

	// Pointer position seen by the previous Update
	lastX, lastY float32
}

// NewOrbitCamera creates an orbit camera around the origin with the default view.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Radius:   DefaultRadius,
		Azimuth:  DefaultAzimuth,
		Polar:    DefaultPolar,
		MinPolar: DefaultMinPolar,
		MaxPolar: DefaultMaxPolar,
	}
}

// FromConfig creates an orbit camera from configuration. The initial polar
// angle is clamped to the configured limits.
func FromConfig(cfg config.CameraConfig) *OrbitCamera {
	c := &OrbitCamera{
		Target:   mgl32.Vec3(cfg.Target),
		Radius:   cfg.Radius,
		Azimuth:  cfg.Azimuth,
		Polar:    cfg.Polar,
		MinPolar: cfg.MinPolar,
		MaxPolar: cfg.MaxPolar,
	}
	c.clampPolar()
	return c
}

// Update advances the camera by one frame of pointer input.
// While held is true the pointer delta since the last call is added to the
// azimuth (x) and polar angle (y), one degree per pixel. The pointer position
// is recorded either way, so a drag starts from where the pointer rests.
func (c *OrbitCamera) Update(held bool, x, y float32) {
	if held {
		c.Azimuth += x - c.lastX
		c.Polar += y - c.lastY
		c.clampPolar()
	}

	c.lastX = x
	c.lastY = y
}

func (c *OrbitCamera) clampPolar() {
	c.Polar = mgl32.Clamp(c.Polar, c.MinPolar, c.MaxPolar)
}

// Position returns the eye position in world space. It does not modify the camera.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	t := float64(mgl32.DegToRad(c.Azimuth))
	p := float64(mgl32.DegToRad(c.Polar))
	r := float64(c.Radius)

	x := r * gomath.Sin(p) * gomath.Cos(t)
	y := r * gomath.Sin(p) * gomath.Sin(t)
	z := r * gomath.Cos(p)

	// The sphere's polar axis is the world's vertical (Y) axis
	return c.Target.Add(mgl32.Vec3{float32(x), float32(z), float32(y)})
}

// ViewMatrix returns the view matrix looking from Position at Target with +Y up.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}
