package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lockhart/internal/config"
)

// approxVec compares component-wise with an absolute tolerance.
func approxVec(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}

func TestNewOrbitCamera(t *testing.T) {
	c := NewOrbitCamera()

	if c.Radius != 2000 || c.Azimuth != -200 || c.Polar != 70 {
		t.Errorf("unexpected defaults: r=%v t=%v p=%v", c.Radius, c.Azimuth, c.Polar)
	}
	if c.MinPolar != 1 || c.MaxPolar != 179 {
		t.Errorf("unexpected polar limits [%v, %v]", c.MinPolar, c.MaxPolar)
	}
	if c.Target != (mgl32.Vec3{}) {
		t.Errorf("expected origin target, got %v", c.Target)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default().Camera
	cfg.Target = [3]float32{5, 6, 7}
	cfg.Polar = 400

	c := FromConfig(cfg)

	if c.Target != (mgl32.Vec3{5, 6, 7}) {
		t.Errorf("Target = %v, want (5, 6, 7)", c.Target)
	}
	if c.Radius != cfg.Radius || c.Azimuth != cfg.Azimuth {
		t.Errorf("radius/azimuth not copied: %+v", c)
	}
	if c.Polar != cfg.MaxPolar {
		t.Errorf("initial polar should be clamped to %v, got %v", cfg.MaxPolar, c.Polar)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name    string
		azimuth float32
		polar   float32
		want    mgl32.Vec3
	}{
		{"equator along +X", 0, 90, mgl32.Vec3{10, 0, 0}},
		{"equator along +Z", 90, 90, mgl32.Vec3{0, 0, 10}},
		{"equator along -X", 180, 90, mgl32.Vec3{-10, 0, 0}},
		{"north pole", 0, 0, mgl32.Vec3{0, 10, 0}},
		{"south pole", 0, 180, mgl32.Vec3{0, -10, 0}},
		{"diagonal", 45, 45, mgl32.Vec3{5, 7.0710678, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &OrbitCamera{Radius: 10, Azimuth: tt.azimuth, Polar: tt.polar}
			if got := c.Position(); !approxVec(got, tt.want, 1e-4) {
				t.Errorf("Position() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionOffsetByTarget(t *testing.T) {
	c := &OrbitCamera{Target: mgl32.Vec3{100, 20, -50}, Radius: 10, Azimuth: 0, Polar: 90}

	want := mgl32.Vec3{110, 20, -50}
	if got := c.Position(); !approxVec(got, want, 1e-4) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	for _, az := range []float32{-720, -200, 0, 33, 359, 1080} {
		for _, p := range []float32{1, 45, 90, 135, 179} {
			c.Azimuth, c.Polar = az, p
			d := c.Position().Sub(c.Target).Len()
			if math.Abs(float64(d-c.Radius)) > 0.05 {
				t.Errorf("t=%v p=%v: distance %v, want %v", az, p, d, c.Radius)
			}
		}
	}
}

func TestPositionPure(t *testing.T) {
	c := NewOrbitCamera()
	before := *c

	first := c.Position()
	second := c.Position()

	if first != second {
		t.Errorf("Position() not repeatable: %v vs %v", first, second)
	}
	if *c != before {
		t.Error("Position() modified camera state")
	}
}

func TestPositionContinuous(t *testing.T) {
	c := NewOrbitCamera()
	base := c.Position()

	// A 0.01 degree step moves the eye by about r * 0.01 * pi / 180 ~= 0.35 units
	const step = 0.01
	limit := c.Radius * step * math.Pi / 180 * 1.5

	c.Azimuth += step
	if d := c.Position().Sub(base).Len(); d > limit {
		t.Errorf("azimuth step moved eye by %v, want <= %v", d, limit)
	}

	c.Azimuth -= step
	c.Polar += step
	if d := c.Position().Sub(base).Len(); d > limit {
		t.Errorf("polar step moved eye by %v, want <= %v", d, limit)
	}
}

func TestUpdateDrag(t *testing.T) {
	c := NewOrbitCamera()

	// Pointer arrives at (100, 100) without a button held
	c.Update(false, 100, 100)
	if c.Azimuth != -200 || c.Polar != 70 {
		t.Fatalf("idle update changed angles: t=%v p=%v", c.Azimuth, c.Polar)
	}

	// Drag by (+15, -10)
	c.Update(true, 115, 90)
	if c.Azimuth != -185 {
		t.Errorf("Azimuth = %v, want -185", c.Azimuth)
	}
	if c.Polar != 60 {
		t.Errorf("Polar = %v, want 60", c.Polar)
	}

	// Delta is measured from the previous frame, not the drag start
	c.Update(true, 120, 90)
	if c.Azimuth != -180 {
		t.Errorf("Azimuth = %v, want -180", c.Azimuth)
	}
}

func TestUpdateNoJumpAfterIdle(t *testing.T) {
	c := NewOrbitCamera()
	c.Update(false, 0, 0)

	// Pointer wanders far while the button is up
	c.Update(false, 500, 400)
	c.Update(false, 800, 30)

	// First held frame at the resting position produces no rotation
	c.Update(true, 800, 30)
	if c.Azimuth != -200 || c.Polar != 70 {
		t.Errorf("drag start jumped: t=%v p=%v", c.Azimuth, c.Polar)
	}
}

func TestUpdateAzimuthUnbounded(t *testing.T) {
	c := NewOrbitCamera()
	c.Azimuth = 0
	c.Update(false, 0, 0)

	for x := float32(100); x <= 1000; x += 100 {
		c.Update(true, x, 0)
	}

	if c.Azimuth != 1000 {
		t.Errorf("Azimuth = %v, want 1000 (no wrapping)", c.Azimuth)
	}
}

func TestUpdatePolarClampUpper(t *testing.T) {
	c := NewOrbitCamera()
	c.Update(false, 0, 0)

	y := float32(0)
	for i := 0; i < 5; i++ {
		y += 1000
		c.Update(true, 0, y)
		if c.Polar > c.MaxPolar {
			t.Fatalf("frame %d: polar %v exceeds %v", i, c.Polar, c.MaxPolar)
		}
	}

	if c.Polar != c.MaxPolar {
		t.Errorf("Polar = %v, want upper clamp %v", c.Polar, c.MaxPolar)
	}
}

func TestUpdatePolarClampLower(t *testing.T) {
	c := NewOrbitCamera()
	c.Update(false, 0, 0)

	y := float32(0)
	for i := 0; i < 5; i++ {
		y -= 1000
		c.Update(true, 0, y)
	}

	if c.Polar != c.MinPolar {
		t.Errorf("Polar = %v, want lower clamp %v", c.Polar, c.MinPolar)
	}

	// Dragging back down leaves the clamp immediately
	c.Update(true, 0, y+10)
	if c.Polar != c.MinPolar+10 {
		t.Errorf("Polar = %v, want %v", c.Polar, c.MinPolar+10)
	}
}

func TestUpdatePolarStaysInRange(t *testing.T) {
	c := NewOrbitCamera()
	moves := []float32{37, -500, 12, 900, -3, -170, 250, -1, 178, -90}

	y := float32(0)
	c.Update(false, 0, y)
	for _, dy := range moves {
		y += dy
		c.Update(true, 0, y)
		if c.Polar < c.MinPolar || c.Polar > c.MaxPolar {
			t.Fatalf("after dy=%v polar %v outside [%v, %v]", dy, c.Polar, c.MinPolar, c.MaxPolar)
		}
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewOrbitCamera()
	c.Target = mgl32.Vec3{10, 0, -10}
	view := c.ViewMatrix()

	// The eye maps to the view-space origin
	eye := mgl32.TransformCoordinate(c.Position(), view)
	if !approxVec(eye, mgl32.Vec3{}, 1e-2) {
		t.Errorf("eye in view space = %v, want origin", eye)
	}

	// The target lies straight ahead on -Z at distance Radius
	target := mgl32.TransformCoordinate(c.Target, view)
	if !approxVec(target, mgl32.Vec3{0, 0, -c.Radius}, 1e-1) {
		t.Errorf("target in view space = %v, want (0, 0, %v)", target, -c.Radius)
	}
}
