package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/monster"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/motor"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/player"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

const (
	botFireRangeSq  = 14 * 14
	botDodgeRangeSq = 7 * 7
	botKiteRangeSq  = 4 * 4
	botUltimateHold = 2.5 // seconds of continuous fire before trying an ultimate
)

// bot drives the player: it stays in combat mode, circles the arena centre,
// shoots the nearest enemy, backs away from close runners and dashes
// sideways out of a charge.
type bot struct {
	orbit    float64
	firing   float64
	charging bool
}

func (b *bot) controls(w *world.World, dt float64) player.Controls {
	p := w.Player()
	var in player.Controls
	if p.IsDead() {
		return in
	}
	if !p.Combat() {
		in.ToggleCombat = true
		return in
	}

	pos := p.Position()
	b.orbit += dt * 0.4
	orbitTarget := mgl64.Vec3{math.Cos(b.orbit) * 6, 0, math.Sin(b.orbit) * 6}
	move := mathutil.SafeNormalize(mathutil.Flat(orbitTarget.Sub(pos)))

	nearest, distSq, ok := nearestEnemy(w, pos)
	if ok {
		target := nearest.Core().Position()
		in.Aim = &motor.Ray{Origin: target.Add(mgl64.Vec3{0, 20, 0}), Direction: mgl64.Vec3{0, -1, 0}}
		away := mathutil.SafeNormalize(mathutil.Flat(pos.Sub(target)))

		switch {
		case nearest.State() == monster.StateCharging && distSq < botDodgeRangeSq:
			// sidestep perpendicular to the charge
			move = mgl64.Vec3{-away[2], 0, away[0]}
			in.Dash = p.Motor.CanDash()
		case distSq < botKiteRangeSq:
			move = away
		}

		if b.charging {
			// keep holding until the ultimate is full, then release
			in.AltFire = p.Weapon != nil && p.Weapon.UltimateCharge() < 1
			b.charging = in.AltFire
		} else if distSq < botFireRangeSq {
			in.Fire = true
			b.firing += dt
			if b.firing > botUltimateHold {
				b.firing = 0
				b.charging = true
			}
		} else {
			b.firing = 0
		}
	}
	in.Move = mgl64.Vec2{move[0], move[2]}
	in.Interact = len(w.Pickups()) > 0
	return in
}

func nearestEnemy(w *world.World, pos mgl64.Vec3) (monster.Enemy, float64, bool) {
	var best monster.Enemy
	bestSq := math.Inf(1)
	for _, e := range w.Enemies() {
		d := mathutil.SqrDist(pos, e.Core().Position())
		if d < bestSq {
			best, bestSq = e, d
		}
	}
	return best, bestSq, best != nil
}
