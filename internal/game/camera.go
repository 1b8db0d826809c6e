package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/motor"
)

// aimRayHeight is where aim rays start above the ground.
const aimRayHeight = 50.0

// Camera is a top-down view centred on (X, Z). Screen up is world +Z.
type Camera struct {
	X, Z       float64
	Scale      float64 // pixels per world unit
	Width      int
	Height     int
	SmoothTime float64
	velX, velZ float64
}

// NewCamera creates a camera for a screen of w by h pixels.
func NewCamera(w, h int, scale float64) *Camera {
	return &Camera{Scale: scale, Width: w, Height: h, SmoothTime: 0.15}
}

// WorldToScreen projects a world point onto the screen.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (float32, float32) {
	sx := (p[0]-c.X)*c.Scale + float64(c.Width)/2
	sy := float64(c.Height)/2 - (p[2]-c.Z)*c.Scale
	return float32(sx), float32(sy)
}

// ScreenToWorld is the inverse of WorldToScreen on the ground plane.
func (c *Camera) ScreenToWorld(sx, sy int) (x, z float64) {
	x = (float64(sx)-float64(c.Width)/2)/c.Scale + c.X
	z = (float64(c.Height)/2-float64(sy))/c.Scale + c.Z
	return x, z
}

// AimRay is a straight-down ray through the given screen pixel.
func (c *Camera) AimRay(sx, sy int) *motor.Ray {
	x, z := c.ScreenToWorld(sx, sy)
	return &motor.Ray{
		Origin:    mgl64.Vec3{x, aimRayHeight, z},
		Direction: mgl64.Vec3{0, -1, 0},
	}
}

// Follow eases the camera towards target.
func (c *Camera) Follow(target mgl64.Vec3, dt float64) {
	c.X = mathutil.SmoothDamp(c.X, target[0], &c.velX, c.SmoothTime, dt)
	c.Z = mathutil.SmoothDamp(c.Z, target[2], &c.velZ, c.SmoothTime, dt)
}

// SnapTo centres the camera on target immediately.
func (c *Camera) SnapTo(target mgl64.Vec3) {
	c.X, c.Z = target[0], target[2]
	c.velX, c.velZ = 0, 0
}

// Pixels converts a world length to pixels.
func (c *Camera) Pixels(length float64) float32 {
	return float32(length * c.Scale)
}
