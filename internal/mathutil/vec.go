package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// Flat drops the vertical component.
func Flat(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// FlatLen is the length of v on the ground plane.
func FlatLen(v mgl64.Vec3) float64 {
	return math.Hypot(v[0], v[2])
}

// SafeNormalize returns the unit vector of v, or the zero vector when v has no length.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// NormalizedMagnitude is |normalize(v)|: 1 for any moving vector, 0 when still.
// The AI scales its lead terms by it so a stationary target is aimed at directly.
func NormalizedMagnitude(v mgl64.Vec3) float64 {
	return SafeNormalize(v).Len()
}

// SqrDist is the squared distance between two points.
func SqrDist(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// YawTowards returns the heading in degrees that faces from -> to on the ground
// plane, 0 along +Z and 90 along +X.
func YawTowards(from, to mgl64.Vec3) float64 {
	d := to.Sub(from)
	return YawOf(d[0], d[2])
}

// YawOf returns the heading in degrees of the planar direction (x, z).
func YawOf(x, z float64) float64 {
	return math.Atan2(x, z) * 180 / math.Pi
}

// Forward returns the unit ground-plane direction for a yaw in degrees.
func Forward(yaw float64) mgl64.Vec3 {
	r := yaw * math.Pi / 180
	return mgl64.Vec3{math.Sin(r), 0, math.Cos(r)}
}
