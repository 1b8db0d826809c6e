package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SlopeAxis is the ground-plane axis a surface rises along.
type SlopeAxis int

const (
	AxisNone SlopeAxis = iota
	AxisX
	AxisZ
)

// Surface is a walkable rectangle on the XZ plane. Flat surfaces have Rise 0;
// ramps gain Rise units of height from their Min edge to their Max edge.
type Surface struct {
	Name   string
	MinX   float64
	MinZ   float64
	MaxX   float64
	MaxZ   float64
	Height float64
	Rise   float64
	Axis   SlopeAxis
}

// Contains reports whether (x, z) lies over the surface.
func (s Surface) Contains(x, z float64) bool {
	return x >= s.MinX && x <= s.MaxX && z >= s.MinZ && z <= s.MaxZ
}

// HeightAt returns the surface height at (x, z).
func (s Surface) HeightAt(x, z float64) float64 {
	switch s.Axis {
	case AxisX:
		return s.Height + s.Rise*(x-s.MinX)/(s.MaxX-s.MinX)
	case AxisZ:
		return s.Height + s.Rise*(z-s.MinZ)/(s.MaxZ-s.MinZ)
	}
	return s.Height
}

// Normal returns the unit surface normal.
func (s Surface) Normal() mgl64.Vec3 {
	switch s.Axis {
	case AxisX:
		g := s.Rise / (s.MaxX - s.MinX)
		return mgl64.Vec3{-g, 1, 0}.Normalize()
	case AxisZ:
		g := s.Rise / (s.MaxZ - s.MinZ)
		return mgl64.Vec3{0, 1, -g}.Normalize()
	}
	return mgl64.Vec3{0, 1, 0}
}

// Angle is the surface inclination from horizontal in degrees.
func (s Surface) Angle() float64 {
	return SlopeAngle(s.Normal())
}

// SlopeAngle returns the angle in degrees between a normal and world up.
func SlopeAngle(normal mgl64.Vec3) float64 {
	c := normal.Normalize().Dot(mgl64.Vec3{0, 1, 0})
	return math.Acos(math.Max(-1, math.Min(1, c))) * 180 / math.Pi
}

// Wall is a solid axis-aligned block on the XZ plane.
type Wall struct {
	Name string
	MinX float64
	MinZ float64
	MaxX float64
	MaxZ float64
}

// Inflated reports whether (x, z) is within r of the wall.
func (w Wall) Inflated(x, z, r float64) bool {
	return x >= w.MinX-r && x <= w.MaxX+r && z >= w.MinZ-r && z <= w.MaxZ+r
}

// Hit describes a ray or sweep contact.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	// Angle is the hit surface's inclination in degrees.
	Angle   float64
	Surface string
}

// MoveResult is the outcome of one collide-and-slide move.
type MoveResult struct {
	Position mgl64.Vec3
	Grounded bool
	HitWall  bool
}
