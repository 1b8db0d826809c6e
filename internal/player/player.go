// Package player assembles the player entity: locomotion, vitals, combat mode
// and the equipped weapon.
package player

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/health"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/motor"
)

// Config is the player section of the game configuration.
type Config struct {
	Health         int     `yaml:"health"`
	AutoRevive     *bool   `yaml:"auto_revive"`
	ReviveDelay    float64 `yaml:"revive_delay"`
	ReviveHealth   int     `yaml:"revive_health"`
	StartingWeapon string  `yaml:"starting_weapon"`
	PickupRadius   float64 `yaml:"pickup_radius"`
	InteractRange  float64 `yaml:"interact_range"`
	StartCombat    bool    `yaml:"start_in_combat"`
}

// RevivePolicy converts the config into a health policy.
func (c Config) RevivePolicy() health.RevivePolicy {
	p := health.DefaultRevivePolicy(c.MaxHealth())
	if c.AutoRevive != nil {
		p.Auto = *c.AutoRevive
	}
	if c.ReviveDelay > 0 {
		p.Delay = c.ReviveDelay
	}
	if c.ReviveHealth > 0 {
		p.Health = c.ReviveHealth
	}
	return p
}

// MaxHealth returns the configured pool, 5 by default.
func (c Config) MaxHealth() int {
	if c.Health <= 0 {
		return 5
	}
	return c.Health
}

// GetPickupRadius is the walk-over collection radius, 1 by default.
func (c Config) GetPickupRadius() float64 {
	if c.PickupRadius <= 0 {
		return 1
	}
	return c.PickupRadius
}

// GetInteractRange is the reach of the interact button, 2 by default.
func (c Config) GetInteractRange() float64 {
	if c.InteractRange <= 0 {
		return 2
	}
	return c.InteractRange
}

// Controls is the latched input for one tick.
type Controls struct {
	Move         mgl64.Vec2
	Dash         bool
	ToggleCombat bool
	Fire         bool
	AltFire      bool
	Reload       bool
	Interact     bool
	Aim          *motor.Ray
}

// Player is the controllable character.
type Player struct {
	ID     int
	Motor  *motor.Motor
	Vitals *health.Vitals
	Weapon *Weapon

	cfg Config
	clk *clock.Clock
	seq *clock.Sequencer
	fx  effects.Sink
	rng *rand.Rand
}

// New creates a player at pos armed with weapon (nil for unarmed).
func New(id int, cfg Config, mcfg motor.Config, weapon *items.WeaponDefinition, phys motor.Physics, clk *clock.Clock, fx effects.Sink, rng *rand.Rand, pos mgl64.Vec3) *Player {
	seq := clock.NewSequencer()
	p := &Player{
		ID:  id,
		cfg: cfg,
		clk: clk,
		seq: seq,
		fx:  fx,
		rng: rng,
	}
	p.Motor = motor.New(mcfg, phys, seq, pos)
	p.Motor.Combat = cfg.StartCombat
	p.Vitals = health.NewVitals(cfg.MaxHealth(), cfg.RevivePolicy(), clk, seq)
	p.Vitals.Shielded = p.Motor.Dashing
	p.Vitals.OnDeath(p.onDeath)
	p.Vitals.OnRevive(p.onRevive)
	p.Motor.OnDash(func() {
		fx.Trigger(id, effects.AnimDash)
		fx.Particles(id, effects.ParticleDash, true)
	})
	if weapon != nil {
		p.Weapon = NewWeapon(*weapon, seq, rng)
	}
	return p
}

// Sequencer exposes the player's running tasks.
func (p *Player) Sequencer() *clock.Sequencer { return p.seq }

// Position is the motor position.
func (p *Player) Position() mgl64.Vec3 { return p.Motor.Position }

// Velocity is the motor velocity.
func (p *Player) Velocity() mgl64.Vec3 { return p.Motor.Velocity() }

// Combat reports whether combat mode is on.
func (p *Player) Combat() bool { return p.Motor.Combat }

// Vulnerable reports whether a hit would land right now.
func (p *Player) Vulnerable() bool { return p.Vitals.Vulnerable() }

// ApplyDamage routes through the vitals gate.
func (p *Player) ApplyDamage(amount int) bool { return p.Vitals.ApplyDamage(amount) }

// IsDead reports whether the player is incapacitated.
func (p *Player) IsDead() bool { return p.Vitals.IsDead() }

// Config returns the player configuration.
func (p *Player) Config() Config { return p.cfg }

// Update runs one tick and returns the shots fired.
func (p *Player) Update(in Controls) []Shot {
	now, dt := p.clk.Now(), p.clk.Delta()
	wasDashing := p.Motor.Dashing()
	p.seq.Advance(now)
	if wasDashing && !p.Motor.Dashing() {
		p.fx.Particles(p.ID, effects.ParticleDash, false)
	}

	if in.ToggleCombat {
		p.Motor.Combat = !p.Motor.Combat
		if !p.Motor.Combat && p.Weapon != nil {
			p.Weapon.Interrupt()
		}
	}

	if p.Vitals.Incapacitated() {
		p.Motor.Step(now, dt, motor.Input{})
		return nil
	}
	p.Motor.Step(now, dt, motor.Input{Move: in.Move, Dash: in.Dash, Aim: in.Aim})
	p.fx.SetFloat(p.ID, effects.AnimSpeed, mathutil.FlatLen(p.Motor.Velocity()))

	if !p.Motor.Combat || p.Weapon == nil || p.Motor.Dashing() {
		return nil
	}
	wasReloading := p.Weapon.Reloading()
	shots := p.Weapon.Update(now, dt, p.Motor.Yaw, Trigger{Fire: in.Fire, AltFire: in.AltFire, Reload: in.Reload})
	if !wasReloading && p.Weapon.Reloading() {
		p.fx.Trigger(p.ID, effects.AnimReload)
	}
	for range shots {
		p.fx.Trigger(p.ID, effects.AnimShoot)
	}
	return shots
}

// Collect applies a pickup. Weapon pickups need the catalog to resolve.
func (p *Player) Collect(spec items.PickupSpec, catalog *items.Catalog) bool {
	if p.IsDead() {
		return false
	}
	switch spec.Kind {
	case items.PickupAmmo:
		if p.Weapon == nil {
			return false
		}
		p.Weapon.AddAmmo(spec.Bullets)
		return true
	case items.PickupWeapon:
		if catalog == nil {
			return false
		}
		def, err := catalog.Weapon(spec.Weapon)
		if err != nil {
			return false
		}
		if p.Weapon != nil {
			p.Weapon.Interrupt()
		}
		p.Weapon = NewWeapon(def, p.seq, p.rng)
		return true
	}
	return false
}

func (p *Player) onDeath(int) {
	p.Motor.Halt()
	p.Motor.CanMove = false
	if p.Weapon != nil {
		p.Weapon.Interrupt()
	}
	p.fx.Particles(p.ID, effects.ParticleDash, false)
}

func (p *Player) onRevive(int) {
	p.Motor.CanMove = true
}
