package game

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/monster"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
)

// Palette.
var (
	ColorBackground  = color.RGBA{18, 18, 24, 255}
	ColorFloor       = color.RGBA{52, 56, 64, 255}
	ColorFloorHigh   = color.RGBA{82, 88, 100, 255}
	ColorWall        = color.RGBA{120, 110, 96, 255}
	ColorPlayer      = color.RGBA{70, 160, 255, 255}
	ColorPlayerDown  = color.RGBA{70, 90, 120, 255}
	ColorDashing     = color.RGBA{170, 220, 255, 255}
	ColorRunner      = color.RGBA{220, 90, 70, 255}
	ColorCharger     = color.RGBA{230, 160, 40, 255}
	ColorCharging    = color.RGBA{255, 60, 30, 255}
	ColorPunch       = color.RGBA{255, 255, 255, 200}
	ColorBullet      = color.RGBA{255, 240, 150, 255}
	ColorUltimate    = color.RGBA{150, 255, 255, 255}
	ColorAmmo        = color.RGBA{120, 220, 120, 255}
	ColorWeapon      = color.RGBA{200, 120, 255, 255}
	ColorHealthBar   = color.RGBA{80, 200, 90, 255}
	ColorHealthEmpty = color.RGBA{60, 20, 20, 255}
)

// surfaceColor shades a surface by its average height.
func surfaceColor(s physics.Surface) color.RGBA {
	h := s.Height + s.Rise/2
	t := mathutil.Clamp(h/4, 0, 1)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return color.RGBA{
		lerp(ColorFloor.R, ColorFloorHigh.R),
		lerp(ColorFloor.G, ColorFloorHigh.G),
		lerp(ColorFloor.B, ColorFloorHigh.B),
		255,
	}
}

func (g *Game) rect(screen *ebiten.Image, minX, minZ, maxX, maxZ float64, clr color.Color) {
	x0, y0 := g.camera.WorldToScreen(mgl64.Vec3{minX, 0, maxZ})
	x1, y1 := g.camera.WorldToScreen(mgl64.Vec3{maxX, 0, minZ})
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, clr, false)
}

func (g *Game) drawArena(screen *ebiten.Image) {
	arena := g.world.Arena()
	for _, s := range arena.Surfaces() {
		g.rect(screen, s.MinX, s.MinZ, s.MaxX, s.MaxZ, surfaceColor(s))
		if s.Axis != physics.AxisNone {
			// ramp direction arrow
			from := mgl64.Vec3{(s.MinX + s.MaxX) / 2, 0, (s.MinZ + s.MaxZ) / 2}
			to := from
			if s.Axis == physics.AxisX {
				to[0] = s.MaxX - 0.5
			} else {
				to[2] = s.MaxZ - 0.5
			}
			x0, y0 := g.camera.WorldToScreen(from)
			x1, y1 := g.camera.WorldToScreen(to)
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, ColorFloorHigh, true)
		}
	}
	for _, w := range arena.Walls() {
		g.rect(screen, w.MinX, w.MinZ, w.MaxX, w.MaxZ, ColorWall)
	}
}

func (g *Game) drawPickups(screen *ebiten.Image) {
	r := g.camera.Pixels(0.25)
	for _, p := range g.world.Pickups() {
		x, y := g.camera.WorldToScreen(p.Position)
		clr := ColorAmmo
		if p.Spec.Kind == items.PickupWeapon {
			clr = ColorWeapon
		}
		vector.DrawFilledRect(screen, x-r, y-r, 2*r, 2*r, clr, false)
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image) {
	for _, e := range g.world.Enemies() {
		m := e.Core()
		x, y := g.camera.WorldToScreen(m.Position())
		r := g.camera.Pixels(m.Agent.Radius)

		clr := ColorRunner
		if m.Def.Archetype == monster.ArchetypeCharger {
			clr = ColorCharger
		}
		if e.State() == monster.StateCharging {
			clr = ColorCharging
			g.drawChargePath(screen, m)
		}
		vector.DrawFilledCircle(screen, x, y, r, clr, true)
		if g.fx.Triggered(m.ID, effects.AnimPunch) {
			vector.StrokeCircle(screen, x, y, r+3, 2, ColorPunch, true)
		}

		// health bar
		w := 2 * r
		vector.DrawFilledRect(screen, x-r, y-r-6, w, 3, ColorHealthEmpty, false)
		vector.DrawFilledRect(screen, x-r, y-r-6, w*float32(m.Health.Fraction()), 3, ColorHealthBar, false)
	}
}

func (g *Game) drawChargePath(screen *ebiten.Image, m *monster.Monster) {
	corners := m.Agent.Corners()
	prev := m.Position()
	for _, c := range corners {
		x0, y0 := g.camera.WorldToScreen(prev)
		x1, y1 := g.camera.WorldToScreen(c)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, ColorCharging, true)
		prev = c
	}
}

func (g *Game) drawBullets(screen *ebiten.Image) {
	for _, b := range g.world.Bullets() {
		x0, y0 := g.camera.WorldToScreen(b.Position)
		x1, y1 := g.camera.WorldToScreen(b.Position.Sub(b.Direction.Mul(0.4)))
		clr, width := ColorBullet, float32(2)
		if b.Ultimate {
			clr, width = ColorUltimate, 4
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.world.Player()
	x, y := g.camera.WorldToScreen(p.Position())
	r := g.camera.Pixels(0.5)

	clr := ColorPlayer
	switch {
	case p.IsDead():
		clr = ColorPlayerDown
	case p.Motor.Dashing():
		clr = ColorDashing
	}
	vector.DrawFilledCircle(screen, x, y, r, clr, true)

	// facing
	tip := p.Position().Add(mathutil.Forward(p.Motor.Yaw).Mul(0.9))
	tx, ty := g.camera.WorldToScreen(tip)
	vector.StrokeLine(screen, x, y, tx, ty, 3, clr, true)

	if p.Combat() {
		mx, my := ebiten.CursorPosition()
		vector.StrokeCircle(screen, float32(mx), float32(my), 6, 1, ColorPlayer, true)
	}
	if w := p.Weapon; w != nil && w.UltimateCharge() > 0 {
		g.drawArc(screen, x, y, r+5, w.UltimateCharge(), ColorUltimate)
	}
}

func (g *Game) drawFlashes(screen *ebiten.Image) {
	for _, f := range g.fx.Flashes() {
		x, y := g.camera.WorldToScreen(f.Position)
		a := uint8(255 * mathutil.Clamp(f.Alpha(), 0, 1))
		var clr color.RGBA
		var size float64
		switch f.Name {
		case effects.EffectExplode:
			clr, size = color.RGBA{255, 120, 40, a}, 2.0
		case effects.EffectDie:
			clr, size = color.RGBA{200, 200, 200, a}, 0.8
		case effects.EffectBulletHit:
			clr, size = color.RGBA{255, 255, 200, a}, 0.2
		case effects.EffectMuzzle:
			clr, size = color.RGBA{255, 220, 120, a}, 0.25
		case effects.EffectLootSpawned:
			clr, size = color.RGBA{120, 255, 160, a}, 0.6
		default:
			clr, size = color.RGBA{255, 255, 255, a}, 0.3
		}
		vector.StrokeCircle(screen, x, y, g.camera.Pixels(size*(1.5-f.Alpha()/2)), 2, clr, true)
	}
}

// drawArc strokes the clockwise fraction of a circle starting at 12 o'clock.
func (g *Game) drawArc(screen *ebiten.Image, cx, cy, r float32, fraction float64, clr color.Color) {
	const segments = 32
	n := int(math.Ceil(segments * mathutil.Clamp(fraction, 0, 1)))
	point := func(i int) (float32, float32) {
		a := -math.Pi/2 + 2*math.Pi*fraction*float64(i)/float64(n)
		return cx + r*float32(math.Cos(a)), cy + r*float32(math.Sin(a))
	}
	x0, y0 := point(0)
	for i := 1; i <= n; i++ {
		x1, y1 := point(i)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		x0, y0 = x1, y1
	}
}
