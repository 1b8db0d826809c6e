package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
)

func TestMoveVector(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{0, 1}, moveVector(true, false, false, false))
	assert.Equal(t, mgl64.Vec2{}, moveVector(true, true, false, false))
	v := moveVector(true, false, false, true)
	assert.InDelta(t, 1.0, math.Hypot(v[0], v[1]), 1e-9)
	assert.InDelta(t, v[0], v[1], 1e-9)
	assert.Equal(t, mgl64.Vec2{-1, 0}, moveVector(false, false, true, false))
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(800, 600, 20)
	c.SnapTo(mgl64.Vec3{5, 0, -3})

	x, y := c.WorldToScreen(mgl64.Vec3{5, 0, -3})
	assert.Equal(t, float32(400), x)
	assert.Equal(t, float32(300), y)

	x, y = c.WorldToScreen(mgl64.Vec3{6, 0, -2})
	assert.Equal(t, float32(420), x)
	assert.Equal(t, float32(280), y, "world +Z is screen up")

	wx, wz := c.ScreenToWorld(420, 280)
	assert.InDelta(t, 6.0, wx, 1e-9)
	assert.InDelta(t, -2.0, wz, 1e-9)

	ray := c.AimRay(400, 300)
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, ray.Direction)
	assert.InDelta(t, 5.0, ray.Origin[0], 1e-9)
	assert.InDelta(t, -3.0, ray.Origin[2], 1e-9)
}

func TestCameraFollowConverges(t *testing.T) {
	c := NewCamera(800, 600, 20)
	target := mgl64.Vec3{10, 0, 4}
	for i := 0; i < 240; i++ {
		c.Follow(target, 1.0/60)
	}
	assert.InDelta(t, 10.0, c.X, 0.01)
	assert.InDelta(t, 4.0, c.Z, 0.01)
}

func TestFxSinkFlashesExpire(t *testing.T) {
	inner := &effects.Log{}
	fx := NewFxSink()
	fx.Inner = inner

	fx.Spawn(effects.EffectExplode, mgl64.Vec3{1, 0, 1}, 2)
	fx.Spawn(effects.EffectBulletHit, mgl64.Vec3{}, 0)
	assert.Len(t, fx.Flashes(), 2)
	assert.Equal(t, 1, inner.Count(effects.KindSpawn, effects.EffectExplode))

	fx.Advance(0.5)
	flashes := fx.Flashes()
	assert.Len(t, flashes, 1)
	assert.Equal(t, effects.EffectExplode, flashes[0].Name)
	assert.InDelta(t, 0.75, flashes[0].Alpha(), 1e-9)

	fx.Advance(2)
	assert.Empty(t, fx.Flashes())
}

func TestFxSinkOwnerState(t *testing.T) {
	fx := NewFxSink()
	fx.SetBool(3, effects.AnimIsCharging, true)
	fx.Particles(3, effects.ParticleCharge, true)
	fx.Trigger(4, effects.AnimPunch)
	fx.SetFloat(4, effects.AnimSpeed, 0.5)

	assert.True(t, fx.Bool(3, effects.AnimIsCharging))
	assert.True(t, fx.Trail(3, effects.ParticleCharge))
	assert.True(t, fx.Triggered(4, effects.AnimPunch))
	assert.Equal(t, 0.5, fx.Speed(4))

	fx.Advance(punchFlashLifetime + 0.01)
	assert.False(t, fx.Triggered(4, effects.AnimPunch))

	fx.Forget(3)
	assert.False(t, fx.Bool(3, effects.AnimIsCharging))
	assert.False(t, fx.Trail(3, effects.ParticleCharge))
}
