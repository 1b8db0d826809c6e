// Package game is the Ebiten front end: it polls input, steps the world at a
// fixed rate and draws a top-down view with a HUD.
package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/game/keytracker"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

const (
	maxMessages     = 6
	messageLifetime = 4.0
)

type hudMessage struct {
	text      string
	remaining float64
}

// Game implements ebiten.Game over a world.
type Game struct {
	cfg    *config.Config
	world  *world.World
	fx     *FxSink
	camera *Camera
	keys   *keytracker.Set
	log    zerolog.Logger

	tickDT    float64
	budget    time.Duration
	showDebug bool
	messages  []hudMessage
	alerts    int
}

// NewGame wires a viewer to w. fx must be the sink the world was built with.
func NewGame(cfg *config.Config, w *world.World, fx *FxSink, log zerolog.Logger) *Game {
	g := &Game{
		cfg:    cfg,
		world:  w,
		fx:     fx,
		camera: NewCamera(cfg.GetScreenWidth(), cfg.GetScreenHeight(), cfg.GetPixelsPerUnit()),
		keys:   keytracker.NewSet(KeyDash, KeyToggleCombat, KeyReload, KeyInteract, KeyPause, KeyDebug),
		log:    log,
		tickDT: cfg.GetTickDelta(),
		budget: time.Duration(cfg.Simulation.TickBudgetMS * float64(time.Millisecond)),
	}
	g.camera.SnapTo(w.Player().Position())
	w.Subscribe(g.onEvent)
	return g
}

// Update runs one fixed simulation tick.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(KeyQuit) {
		return ebiten.Termination
	}
	if g.keys.JustPressed(KeyPause) {
		g.world.SetPaused(!g.world.Paused())
	}
	if g.keys.JustPressed(KeyDebug) {
		g.showDebug = !g.showDebug
	}

	g.world.SetInput(g.readControls())
	g.world.Step(g.tickDT)

	dt := g.world.Delta()
	g.fx.Advance(dt)
	g.ageMessages(g.tickDT)
	g.camera.Follow(g.world.Player().Position(), g.tickDT)

	for _, a := range g.world.Monitor().CheckAlerts(g.budget) {
		g.alerts++
		g.log.Debug().Str("type", a.Type).Float64("ms", a.Value).Msg(a.Message)
	}
	return nil
}

// Draw renders the arena and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)
	g.drawArena(screen)
	g.drawPickups(screen)
	g.drawEnemies(screen)
	g.drawBullets(screen)
	g.drawPlayer(screen)
	g.drawFlashes(screen)
	g.drawHUD(screen)
	if g.showDebug {
		g.drawDebug(screen)
	}
}

// Layout returns the screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}

// onEvent turns notable world events into HUD lines.
func (g *Game) onEvent(ev world.Event) {
	var msg string
	switch ev.Kind {
	case world.EventDeath:
		if ev.Archetype == world.PlayerArchetype {
			msg = "You are down!"
			break
		}
		g.fx.Forget(int(ev.Entity))
		if ev.Detail == "explode" {
			msg = fmt.Sprintf("%s exploded", ev.Archetype)
		} else {
			msg = fmt.Sprintf("%s killed", ev.Archetype)
		}
	case world.EventRevive:
		msg = fmt.Sprintf("Revived with %d HP", ev.Amount)
	case world.EventChargeStarted:
		msg = "Charger incoming!"
	case world.EventPickup:
		msg = "Picked up " + ev.Detail
	case world.EventLoot:
		msg = fmt.Sprintf("%s dropped %s", ev.Archetype, ev.Detail)
	default:
		return
	}
	g.messages = append(g.messages, hudMessage{text: msg, remaining: messageLifetime})
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func (g *Game) ageMessages(dt float64) {
	kept := g.messages[:0]
	for _, m := range g.messages {
		m.remaining -= dt
		if m.remaining > 0 {
			kept = append(kept, m)
		}
	}
	g.messages = kept
}
