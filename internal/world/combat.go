package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/player"
)

const (
	bulletRadius = 0.1
	muzzleHeight = 1.0
	muzzleOffset = 0.6
)

// Bullet is a projectile fired by the player.
type Bullet struct {
	Handle    Handle
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Speed     float64
	Damage    int
	Ultimate  bool
	Expires   float64

	hit  map[Handle]bool
	dead bool
}

// Bullets returns copies of the live bullets.
func (w *World) Bullets() []Bullet {
	out := make([]Bullet, 0, len(w.bullets))
	for _, b := range w.bullets {
		out = append(out, *b)
	}
	return out
}

// fire spawns a bullet at the muzzle. Enemies already overlapping the muzzle
// are hit before the bullet moves.
func (w *World) fire(s player.Shot) {
	dir := mathutil.Forward(s.Yaw)
	pos := w.player.Position().Add(mathutil.Up.Mul(muzzleHeight)).Add(dir.Mul(muzzleOffset))
	b := &Bullet{
		Handle:    w.entities.create(),
		Position:  pos,
		Direction: dir,
		Speed:     s.Speed,
		Damage:    s.Damage,
		Ultimate:  s.Ultimate,
		Expires:   w.clock.Now() + s.Lifetime,
		hit:       make(map[Handle]bool),
	}
	detail := ""
	if s.Ultimate {
		detail = "ultimate"
	}
	w.push(Event{Kind: EventShot, Entity: b.Handle, Source: w.playerHandle, Archetype: "bullet", Amount: s.Damage, Position: pos, Detail: detail})
	w.fx.Spawn(effects.EffectMuzzle, pos, 0.1)

	for _, slot := range w.enemies {
		if slot.enemy.IsDead() {
			continue
		}
		m := slot.enemy.Core()
		if mathutil.FlatLen(pos.Sub(m.Position())) <= m.Agent.Radius+bulletRadius {
			w.hitEnemy(b, slot)
			if !b.Ultimate {
				b.dead = true
				break
			}
		}
	}
	if b.dead {
		w.entities.destroy(b.Handle)
		return
	}
	w.bullets = append(w.bullets, b)
}

type bulletContact struct {
	slot *enemySlot
	t    float64
}

// stepBullets sweeps every bullet along its path for this tick. The first
// contact wins; ultimate bullets pass through enemies but not walls.
func (w *World) stepBullets() {
	now, dt := w.clock.Now(), w.clock.Delta()
	for _, b := range w.bullets {
		if b.dead {
			continue
		}
		if now >= b.Expires {
			b.dead = true
			continue
		}
		length := b.Speed * dt
		end := b.Position.Add(b.Direction.Mul(length))

		wallDist := math.Inf(1)
		wall, hitWall := w.arena.SegmentCast(b.Position, end, bulletRadius)
		if hitWall {
			wallDist = wall.Distance
		}

		var contacts []bulletContact
		for _, slot := range w.enemies {
			if slot.enemy.IsDead() || b.hit[slot.handle] {
				continue
			}
			m := slot.enemy.Core()
			if t, ok := sweepCircle(b.Position, b.Direction, length, m.Position(), m.Agent.Radius+bulletRadius); ok && t < wallDist {
				contacts = append(contacts, bulletContact{slot: slot, t: t})
			}
		}
		sort.SliceStable(contacts, func(i, j int) bool { return contacts[i].t < contacts[j].t })

		for _, c := range contacts {
			if c.slot.enemy.IsDead() {
				continue
			}
			w.hitEnemy(b, c.slot)
			if !b.Ultimate {
				b.dead = true
				b.Position = b.Position.Add(b.Direction.Mul(c.t))
				break
			}
		}
		if b.dead {
			continue
		}
		if hitWall {
			b.dead = true
			b.Position = wall.Point
			w.fx.Spawn(effects.EffectBulletHit, wall.Point, 0.5)
			continue
		}
		b.Position = end
	}

	kept := w.bullets[:0]
	for _, b := range w.bullets {
		if b.dead {
			w.entities.destroy(b.Handle)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(w.bullets); i++ {
		w.bullets[i] = nil
	}
	w.bullets = kept
}

func (w *World) hitEnemy(b *Bullet, slot *enemySlot) {
	b.hit[slot.handle] = true
	slot.enemy.ApplyDamage(b.Damage)
	w.fx.Spawn(effects.EffectBulletHit, slot.enemy.Core().Position(), 0.5)
}

// sweepCircle intersects the ground-plane segment p + d*t, t in [0, length],
// with a circle of radius r around c. A start inside the circle hits at 0.
func sweepCircle(p, d mgl64.Vec3, length float64, c mgl64.Vec3, r float64) (float64, bool) {
	fx, fz := p[0]-c[0], p[2]-c[2]
	cc := fx*fx + fz*fz - r*r
	if cc <= 0 {
		return 0, true
	}
	b := fx*d[0] + fz*d[2]
	a := d[0]*d[0] + d[2]*d[2]
	if a == 0 || b >= 0 {
		return 0, false
	}
	disc := b*b - a*cc
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t > length {
		return 0, false
	}
	return t, true
}
