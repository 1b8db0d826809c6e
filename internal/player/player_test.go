package player

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/motor"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
)

const dt = 1.0 / 60

func newTestPlayer(t *testing.T, cfg Config) (*Player, *clock.Clock, *effects.Log) {
	t.Helper()
	arena := physics.NewArena([]physics.Surface{
		{Name: "floor", MinX: -20, MinZ: -20, MaxX: 20, MaxZ: 20},
	}, nil)
	clk := clock.New()
	fx := &effects.Log{}
	weapon := items.DefaultWeapon()
	p := New(1, cfg, motor.DefaultConfig(), &weapon, arena, clk, fx, rand.New(rand.NewSource(1)), mgl64.Vec3{})
	return p, clk, fx
}

func tick(p *Player, clk *clock.Clock, in Controls) []Shot {
	clk.Advance(dt)
	return p.Update(in)
}

func TestWeaponFireRateAndClip(t *testing.T) {
	w := NewWeapon(items.DefaultWeapon(), clock.NewSequencer(), rand.New(rand.NewSource(3)))

	shots := w.Update(0.01, dt, 0, Trigger{Fire: true})
	require.Len(t, shots, 1)
	assert.Equal(t, 29, w.Clip)
	assert.InDelta(t, 0, shots[0].Yaw, 1.2)
	assert.False(t, shots[0].Ultimate)

	assert.Empty(t, w.Update(0.05, dt, 0, Trigger{Fire: true}))
	assert.Len(t, w.Update(0.2, dt, 0, Trigger{Fire: true}), 1)
	assert.Equal(t, 28, w.Clip)
}

func TestWeaponAutoReload(t *testing.T) {
	def := items.DefaultWeapon()
	def.ClipSize = 2
	def.StartingReserve = 3
	seq := clock.NewSequencer()
	w := NewWeapon(def, seq, rand.New(rand.NewSource(3)))

	require.Len(t, w.Update(0.01, dt, 0, Trigger{Fire: true}), 1)
	require.Len(t, w.Update(0.5, dt, 0, Trigger{Fire: true}), 1)
	assert.Equal(t, 0, w.Clip)
	assert.True(t, w.Reloading())
	assert.Empty(t, w.Update(0.6, dt, 0, Trigger{Fire: true}))

	seq.Advance(1.6)
	assert.False(t, w.Reloading())
	assert.Equal(t, 2, w.Clip)
	assert.Equal(t, 1, w.Reserve)
}

func TestWeaponManualReloadNeedsRoom(t *testing.T) {
	w := NewWeapon(items.DefaultWeapon(), clock.NewSequencer(), rand.New(rand.NewSource(3)))
	assert.False(t, w.StartReload(0), "full clip")

	w.Clip = 10
	w.Reserve = 0
	assert.False(t, w.StartReload(0), "no reserve")
}

func TestWeaponUltimate(t *testing.T) {
	w := NewWeapon(items.DefaultWeapon(), clock.NewSequencer(), rand.New(rand.NewSource(3)))

	now := 0.0
	for i := 0; i < 25; i++ {
		now += 0.1
		assert.Empty(t, w.Update(now, 0.1, 30, Trigger{AltFire: true}))
	}
	assert.Equal(t, 1.0, w.UltimateCharge())

	shots := w.Update(now+0.1, 0.1, 30, Trigger{})
	require.Len(t, shots, 1)
	assert.True(t, shots[0].Ultimate)
	assert.Equal(t, 5, shots[0].Damage)
	assert.Equal(t, 30.0, shots[0].Yaw)
	assert.Equal(t, 0.0, w.UltimateCharge())
	assert.Equal(t, 30, w.Clip)
}

func TestWeaponReleaseBeforeFullChargeFizzles(t *testing.T) {
	w := NewWeapon(items.DefaultWeapon(), clock.NewSequencer(), rand.New(rand.NewSource(3)))
	w.Update(0.1, 0.5, 0, Trigger{AltFire: true})
	assert.Empty(t, w.Update(0.2, 0.1, 0, Trigger{}))
	assert.InDelta(t, 0.25, w.UltimateCharge(), 1e-9)
}

func TestPlayerShootsOnlyInCombat(t *testing.T) {
	p, clk, fx := newTestPlayer(t, Config{})

	assert.Empty(t, tick(p, clk, Controls{Fire: true}))

	tick(p, clk, Controls{ToggleCombat: true})
	require.True(t, p.Combat())
	assert.Len(t, tick(p, clk, Controls{Fire: true}), 1)
	assert.Equal(t, 1, fx.Count(effects.KindTrigger, effects.AnimShoot))
}

func TestPlayerDashShieldsFromDamage(t *testing.T) {
	p, clk, fx := newTestPlayer(t, Config{})

	tick(p, clk, Controls{Move: mgl64.Vec2{1, 0}, Dash: true})
	require.True(t, p.Motor.Dashing())
	assert.False(t, p.Vulnerable())
	assert.False(t, p.ApplyDamage(1))
	assert.Equal(t, 5, p.Vitals.Current)
	assert.Equal(t, 1, fx.Count(effects.KindTrigger, effects.AnimDash))

	for i := 0; i < 30; i++ {
		tick(p, clk, Controls{})
	}
	assert.False(t, p.Motor.Dashing())
	assert.True(t, p.ApplyDamage(1))
	assert.Equal(t, 4, p.Vitals.Current)
}

func TestPlayerDeathAndRevive(t *testing.T) {
	p, clk, _ := newTestPlayer(t, Config{StartCombat: true})

	tick(p, clk, Controls{Move: mgl64.Vec2{0, 1}})
	require.True(t, p.ApplyDamage(5))
	assert.True(t, p.IsDead())
	assert.False(t, p.Motor.CanMove)
	assert.Equal(t, mgl64.Vec3{}, p.Motor.TargetVelocity())
	assert.Empty(t, tick(p, clk, Controls{Fire: true}))
	assert.False(t, p.ApplyDamage(1))

	for i := 0; i < 200 && p.IsDead(); i++ {
		tick(p, clk, Controls{})
	}
	require.False(t, p.IsDead())
	assert.True(t, p.Motor.CanMove)
	assert.Equal(t, 5, p.Vitals.Current)
	assert.Equal(t, 1, p.Vitals.Revives())
	assert.InDelta(t, 3.0, clk.Now(), 0.05)
}

func TestPlayerStaysDownWithoutAutoRevive(t *testing.T) {
	off := false
	p, clk, _ := newTestPlayer(t, Config{AutoRevive: &off})

	p.ApplyDamage(5)
	for i := 0; i < 300; i++ {
		tick(p, clk, Controls{})
	}
	assert.True(t, p.IsDead())
	assert.Equal(t, 0, p.Sequencer().Len())
}

func TestPlayerCollect(t *testing.T) {
	p, _, _ := newTestPlayer(t, Config{})
	catalog := items.DefaultCatalog()

	assert.True(t, p.Collect(items.PickupSpec{Kind: items.PickupAmmo, Bullets: 15}, catalog))
	assert.Equal(t, 135, p.Weapon.Reserve)

	assert.False(t, p.Collect(items.PickupSpec{Kind: items.PickupWeapon, Weapon: "missing"}, catalog))
	assert.Equal(t, "Rifle", p.Weapon.Def.Name)

	p.ApplyDamage(5)
	assert.False(t, p.Collect(items.PickupSpec{Kind: items.PickupAmmo, Bullets: 15}, catalog))
}

func TestConfigRevivePolicy(t *testing.T) {
	policy := Config{}.RevivePolicy()
	assert.True(t, policy.Auto)
	assert.Equal(t, 3.0, policy.Delay)
	assert.Equal(t, 5, policy.Health)

	policy = Config{Health: 8, ReviveDelay: 1.5, ReviveHealth: 2}.RevivePolicy()
	assert.Equal(t, 1.5, policy.Delay)
	assert.Equal(t, 2, policy.Health)
}
