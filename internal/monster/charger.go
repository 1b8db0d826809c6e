package monster

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
)

// chargeState is the resumption data of a charge in progress.
type chargeState struct {
	initial    float64
	startedAt  float64
	retargeted bool
	progress   float64
}

// Charger pursues until the target sits inside its charge window, then
// sprints along a straight path at it. Touching the target blows it up.
type Charger struct {
	*Monster
	charge  chargeState
	charges int
}

// NewCharger creates a charger at pos.
func NewCharger(id int, key string, def MonsterDefinition, pos mgl64.Vec3, env Env) *Charger {
	def.Archetype = ArchetypeCharger
	c := &Charger{Monster: newMonster(id, key, def, pos, env)}
	c.Health.OnDeath(c.onDeath)
	return c
}

// State returns Pursuing, Charging or Dead.
func (c *Charger) State() MonsterState { return c.state }

// Charging reports whether a charge is in progress.
func (c *Charger) Charging() bool { return c.state == StateCharging }

// Progress is the rounded remaining/initial ratio of the current charge.
func (c *Charger) Progress() float64 { return c.charge.progress }

// Retargeted reports whether the current charge already re-aimed.
func (c *Charger) Retargeted() bool { return c.charge.retargeted }

// Charges counts charges started.
func (c *Charger) Charges() int { return c.charges }

// Update runs one tick: contact check, pursuit loop, charge monitor, movement.
func (c *Charger) Update() {
	if c.IsDead() {
		return
	}
	now := c.env.Now()
	if c.hasTarget && c.distSq <= c.Def.ContactDistance {
		c.explode()
		return
	}

	if c.state == StatePursuing && c.hasTarget && !c.seq.Active(clock.TaskPursue) {
		c.enterPursuing(now)
	}
	c.seq.Advance(now)

	if c.state == StateCharging {
		c.stepCharge(now)
	}
	c.Agent.Step(c.env.Delta())
	c.env.Effects().SetFloat(c.ID, effects.AnimSpeed, mathutil.FlatLen(c.Agent.Velocity()))
}

func (c *Charger) enterPursuing(now float64) {
	c.state = StatePursuing
	c.seq.Every(clock.TaskPursue, now, c.Def.RepathInterval, c.pursue)
}

// pursue is one iteration of the repath loop. Returning false ends the loop.
func (c *Charger) pursue(now float64) bool {
	if c.IsDead() || !c.hasTarget || c.state != StatePursuing {
		return false
	}
	if c.attackTimer.Passed(now) && c.distSq > c.Def.MinChargeDistance && c.distSq < c.Def.MaxChargeDistance {
		if c.tryCharge(now) {
			return false
		}
	}
	c.Agent.SetDestination(c.target.Position)
	return true
}

// tryCharge validates a straight path to the target and, when one exists,
// prefers a straight path to where the target is heading.
func (c *Charger) tryCharge(now float64) bool {
	t := c.target
	paths := c.Agent.paths
	direct := paths.FindPath(c.Agent.Position, t.Position)
	if !direct.Direct() {
		return false
	}
	chosen := direct
	predicted := t.Position.Add(t.Velocity.Mul(mathutil.NormalizedMagnitude(t.Velocity)))
	if p := paths.FindPath(c.Agent.Position, predicted); p.Direct() {
		chosen = p
	}
	c.enterCharging(now, chosen)
	return true
}

func (c *Charger) enterCharging(now float64, path navigation.Path) {
	c.seq.Cancel(clock.TaskPursue)
	c.state = StateCharging
	c.charges++

	c.Agent.Speed = c.Def.SprintSpeed
	c.Agent.Avoidance = false
	c.Agent.SetPath(path)
	c.charge = chargeState{
		initial:   c.Agent.RemainingDistance(),
		startedAt: now,
		progress:  1,
	}

	fx := c.env.Effects()
	fx.Particles(c.ID, effects.ParticleCharge, true)
	fx.SetBool(c.ID, effects.AnimIsCharging, true)
	c.notify(EventChargeStarted, 0, "")
}

func (c *Charger) stepCharge(now float64) {
	remaining := c.Agent.RemainingDistance()
	if remaining <= c.Def.ChargeEndDistance || now-c.charge.startedAt >= c.Def.MaxChargeTime {
		c.endCharge(now)
		return
	}
	if c.charge.initial > 0 {
		c.charge.progress = mathutil.Round1(remaining / c.charge.initial)
	}
	if c.charge.retargeted || c.charge.progress > c.Def.RetargetProgress || !c.hasTarget {
		return
	}

	c.charge.retargeted = true
	t := c.target
	offset := t.Velocity.Add(c.towardTarget().Mul(c.Def.RetargetOffset))
	predicted := t.Position.Add(offset.Mul(mathutil.NormalizedMagnitude(t.Velocity)))
	if p := c.Agent.paths.FindPath(c.Agent.Position, predicted); p.Direct() {
		c.Agent.SetPath(p)
		c.notify(EventChargeRetargeted, 0, "")
	}
}

func (c *Charger) endCharge(now float64) {
	c.Agent.Speed = c.Def.MoveSpeed
	c.Agent.Avoidance = true
	fx := c.env.Effects()
	fx.Particles(c.ID, effects.ParticleCharge, false)
	fx.SetBool(c.ID, effects.AnimIsCharging, false)
	c.attackTimer.Arm(now, c.Def.AttackSpeed)
	c.notify(EventChargeEnded, 0, "")
	c.enterPursuing(now)
}

// explode damages the target when it can be hurt, then kills the charger
// with its own explosion damage.
func (c *Charger) explode() {
	if c.target.Vulnerable && c.env.DamageTarget(c.target.ID, c.Def.ContactDamage) {
		c.notify(EventHit, c.Def.ContactDamage, effects.EffectExplode)
	}
	c.ApplyDamage(c.Def.ExplosionDamage)
}

func (c *Charger) onDeath(lethal int) {
	wasCharging := c.state == StateCharging
	pos := c.Agent.Position
	c.die()
	fx := c.env.Effects()
	if wasCharging {
		fx.Particles(c.ID, effects.ParticleCharge, false)
		fx.SetBool(c.ID, effects.AnimIsCharging, false)
	}
	name := effects.EffectDie
	kind := EventDied
	if lethal == c.Def.ExplosionDamage {
		name = effects.EffectExplode
		kind = EventExploded
	}
	fx.Spawn(name, pos, 2)
	c.notify(kind, lethal, name)
}
