package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	UIColorText      = color.RGBA{230, 230, 230, 255}
	UIColorDim       = color.RGBA{150, 150, 160, 255}
	UIColorWarning   = color.RGBA{255, 190, 60, 255}
	UIColorDanger    = color.RGBA{255, 80, 60, 255}
	UIColorPanel     = color.RGBA{0, 0, 0, 150}
	UIColorHeart     = color.RGBA{220, 50, 60, 255}
	UIColorHeartGone = color.RGBA{70, 40, 45, 255}
)

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	face := basicfont.Face7x13
	ebitext.Draw(screen, s, face, x, y+face.Ascent, clr)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

// drawHUD draws health, ammo, mode and the event feed.
func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.world.Player()
	sw, sh := g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()

	// hearts
	vector.DrawFilledRect(screen, 8, 8, float32(20+p.Vitals.Max*18), 28, UIColorPanel, false)
	for i := 0; i < p.Vitals.Max; i++ {
		clr := UIColorHeartGone
		if i < p.Vitals.Current {
			clr = UIColorHeart
		}
		vector.DrawFilledRect(screen, float32(18+i*18), 16, 12, 12, clr, false)
	}

	mode := "EXPLORE [X]"
	if p.Combat() {
		mode = "COMBAT [X]"
	}
	drawText(screen, mode, 12, 42, UIColorText)

	if w := p.Weapon; w != nil {
		ammo := fmt.Sprintf("%s  %d / %d", w.Def.Name, w.Clip, w.Reserve)
		clr := UIColorText
		switch {
		case w.Reloading():
			ammo += "  reloading"
			clr = UIColorWarning
		case w.Clip == 0 && w.Reserve == 0:
			ammo += "  empty"
			clr = UIColorDanger
		}
		x := sw - textWidth(ammo) - 16
		vector.DrawFilledRect(screen, float32(x-8), float32(sh-40), float32(textWidth(ammo)+16), 28, UIColorPanel, false)
		drawText(screen, ammo, x, sh-33, clr)
		if c := w.UltimateCharge(); c > 0 {
			vector.DrawFilledRect(screen, float32(x-8), float32(sh-46), float32(textWidth(ammo)+16)*float32(c), 4, ColorUltimate, false)
		}
	}

	if p.IsDead() {
		msg := "DOWN"
		if p.Config().RevivePolicy().Auto {
			msg = "DOWN - reviving"
		}
		drawText(screen, msg, sw/2-textWidth(msg)/2, sh/2-60, UIColorDanger)
	}
	if g.world.Paused() {
		drawText(screen, "PAUSED [P]", sw/2-textWidth("PAUSED [P]")/2, 16, UIColorWarning)
	}

	y := 64
	for _, m := range g.messages {
		clr := UIColorText
		if m.remaining < 1 {
			clr = UIColorDim
		}
		drawText(screen, m.text, 12, y, clr)
		y += 16
	}

	enemies := fmt.Sprintf("Enemies: %d  Time: %.1fs", len(g.world.Enemies()), g.world.Now())
	drawText(screen, enemies, sw-textWidth(enemies)-16, 12, UIColorDim)
}

// drawDebug shows tick timings and spawner progress.
func (g *Game) drawDebug(screen *ebiten.Image) {
	snap := g.world.Monitor().Snapshot()
	lines := []string{
		fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("tick %s avg %s peak %s", snap.LastTick, snap.AverageTick, snap.PeakTick),
		fmt.Sprintf("enemies %d bullets %d entities %d", snap.Enemies, snap.Bullets, g.world.EntityCount()),
		fmt.Sprintf("kills %d damage %d deaths %d slow ticks %d", snap.Kills, snap.Damage, snap.PlayerDeaths, g.alerts),
	}
	for i, s := range g.world.Spawners() {
		lines = append(lines, fmt.Sprintf("wave %d %s %d/%d next %.1f", i, s.Wave.Monster, s.Spawned(), s.Wave.Amount, s.NextAt()))
	}
	c := g.world.Player().Motor.LastCorrection()
	if c.Applied {
		lines = append(lines, fmt.Sprintf("slope %s %.1f deg", c.Probe, c.Angle))
	}
	y := g.cfg.GetScreenHeight() - 16*len(lines) - 56
	for _, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 12, y)
		y += 16
	}
}
