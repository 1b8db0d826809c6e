package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/player"
)

// Key bindings.
const (
	KeyForward      = ebiten.KeyW
	KeyBack         = ebiten.KeyS
	KeyLeft         = ebiten.KeyA
	KeyRight        = ebiten.KeyD
	KeyDash         = ebiten.KeyShiftLeft
	KeyToggleCombat = ebiten.KeyX
	KeyReload       = ebiten.KeyR
	KeyInteract     = ebiten.KeyE
	KeyPause        = ebiten.KeyP
	KeyDebug        = ebiten.KeyF3
	KeyQuit         = ebiten.KeyEscape
)

// moveVector maps the four direction keys to a normalized ground-plane
// direction as (x, z).
func moveVector(forward, back, left, right bool) mgl64.Vec2 {
	var v mgl64.Vec2
	if forward {
		v[1]++
	}
	if back {
		v[1]--
	}
	if right {
		v[0]++
	}
	if left {
		v[0]--
	}
	if l := math.Hypot(v[0], v[1]); l > 0 {
		v = v.Mul(1 / l)
	}
	return v
}

// readControls polls the keyboard and mouse for one tick.
func (g *Game) readControls() player.Controls {
	in := player.Controls{
		Move: moveVector(
			ebiten.IsKeyPressed(KeyForward) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			ebiten.IsKeyPressed(KeyBack) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(KeyRight) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		),
		Dash:         g.keys.JustPressed(KeyDash),
		ToggleCombat: g.keys.JustPressed(KeyToggleCombat),
		Reload:       g.keys.JustPressed(KeyReload),
		Interact:     g.keys.JustPressed(KeyInteract),
		Fire:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		AltFire:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}
	if g.world.Player().Combat() {
		mx, my := ebiten.CursorPosition()
		in.Aim = g.camera.AimRay(mx, my)
	}
	return in
}
