package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArena() *Arena {
	return NewArena(
		[]Surface{
			{Name: "floor", MinX: -20, MinZ: -20, MaxX: 20, MaxZ: 20},
			// 30 degree ramp rising toward +X from x=5 to x=10
			{Name: "ramp", MinX: 5, MinZ: -2, MaxX: 10, MaxZ: 2, Height: 0, Rise: 5 * math.Tan(math.Pi/6), Axis: AxisX},
		},
		[]Wall{
			{Name: "pillar", MinX: -1, MinZ: 4, MaxX: 1, MaxZ: 6},
		},
	)
}

func TestCastDownFlat(t *testing.T) {
	a := testArena()
	hit, ok := a.CastDown(mgl64.Vec3{0, 1.5, 0}, 100)
	require.True(t, ok)
	assert.InDelta(t, 1.5, hit.Distance, 1e-9)
	assert.InDelta(t, 0.0, hit.Angle, 1e-9)
	assert.Equal(t, "floor", hit.Surface)

	_, ok = a.CastDown(mgl64.Vec3{0, 1.5, 0}, 1)
	assert.False(t, ok)
	_, ok = a.CastDown(mgl64.Vec3{50, 1, 50}, 100)
	assert.False(t, ok, "nothing below outside the arena")
}

func TestCastDownRampAngle(t *testing.T) {
	a := testArena()
	hit, ok := a.CastDown(mgl64.Vec3{7.5, 5, 0}, 100)
	require.True(t, ok)
	assert.Equal(t, "ramp", hit.Surface)
	assert.InDelta(t, 30.0, hit.Angle, 1e-6)
	assert.InDelta(t, 5-2.5*math.Tan(math.Pi/6), hit.Distance, 1e-9)
}

func TestCastDownIgnoresSurfacesAboveOrigin(t *testing.T) {
	a := testArena()
	// under the ramp top but the origin is below it
	hit, ok := a.CastDown(mgl64.Vec3{9.9, 0.5, 0}, 100)
	require.True(t, ok)
	assert.Equal(t, "floor", hit.Surface)
}

func TestSegmentCastHitsWall(t *testing.T) {
	a := testArena()
	hit, ok := a.SegmentCast(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 10}, 0)
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.Distance, 1e-6)
	assert.InDelta(t, -1.0, hit.Normal[2], 1e-6)

	assert.True(t, a.LineOfSight(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{5, 0, 10}, 0.5))
	assert.False(t, a.LineOfSight(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 10}, 0.5))
}

func TestMoveSlidesAlongWall(t *testing.T) {
	a := testArena()
	start := mgl64.Vec3{0, 0, 3}
	res := a.Move(start, mgl64.Vec3{1, 0, 2}, 0.5)
	assert.True(t, res.HitWall)
	assert.True(t, res.Grounded)
	assert.Less(t, res.Position[2], 3.5+1e-9, "must stop short of the wall face")
	assert.Greater(t, res.Position[0], start[0], "remaining motion slides sideways")
	assert.False(t, a.Blocked(res.Position, 0.49))
}

func TestMoveLandsOnGround(t *testing.T) {
	a := testArena()
	res := a.Move(mgl64.Vec3{-5, 0.2, -5}, mgl64.Vec3{0, -0.5, 0}, 0.5)
	assert.True(t, res.Grounded)
	assert.Equal(t, 0.0, res.Position[1])

	res = a.Move(mgl64.Vec3{-5, 3, -5}, mgl64.Vec3{0, -0.5, 0}, 0.5)
	assert.False(t, res.Grounded)
	assert.InDelta(t, 2.5, res.Position[1], 1e-9)
}

func TestMoveStepsUpRamp(t *testing.T) {
	a := testArena()
	res := a.Move(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{0.2, -0.01, 0}, 0.5)
	assert.True(t, res.Grounded)
	assert.InDelta(t, 0.2*math.Tan(math.Pi/6), res.Position[1], 1e-6)
}

func TestWalkableAndBounds(t *testing.T) {
	a := testArena()
	assert.True(t, a.Walkable(mgl64.Vec3{-5, 0, -5}, 0.5))
	assert.False(t, a.Walkable(mgl64.Vec3{0, 0, 5}, 0.5))
	assert.False(t, a.Walkable(mgl64.Vec3{30, 0, 0}, 0.5))

	minX, minZ, maxX, maxZ := a.Bounds()
	assert.Equal(t, []float64{-20, -20, 20, 20}, []float64{minX, minZ, maxX, maxZ})
}
