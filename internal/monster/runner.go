package monster

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
)

// Runner chases the target and punches it when close. Pursuit and attacks run
// side by side: the repath loop keeps going while a punch is winding up.
type Runner struct {
	*Monster
	loot    items.LootTable
	pending int
	punches uint64
	dropped bool
}

// NewRunner creates a runner at pos and starts its pursuit loop.
func NewRunner(id int, key string, def MonsterDefinition, loot items.LootTable, pos mgl64.Vec3, env Env) *Runner {
	def.Archetype = ArchetypeRunner
	r := &Runner{Monster: newMonster(id, key, def, pos, env), loot: loot}
	r.Health.OnDeath(r.onDeath)
	return r
}

// State reports Attacking while a punch is pending, otherwise the base state.
func (r *Runner) State() MonsterState {
	if r.state != StateDead && r.pending > 0 {
		return StateAttacking
	}
	return r.state
}

// Update runs one tick.
func (r *Runner) Update() {
	if r.IsDead() {
		return
	}
	now := r.env.Now()
	if r.hasTarget && !r.seq.Active(clock.TaskPursue) {
		r.seq.Every(clock.TaskPursue, now, r.Def.RepathInterval, r.pursue)
	}
	r.seq.Advance(now)

	if r.hasTarget && r.attackTimer.Ready(now) && r.distSq < r.Def.AttackDistance {
		r.attack(now)
	}
	r.Agent.Step(r.env.Delta())
	r.env.Effects().SetFloat(r.ID, effects.AnimSpeed, mathutil.FlatLen(r.Agent.Velocity()))
}

// pursue is one iteration of the repath loop. Returning false ends the loop.
func (r *Runner) pursue(float64) bool {
	if r.IsDead() || !r.hasTarget {
		return false
	}
	t := r.target
	lead := mathutil.NormalizedMagnitude(t.Velocity)
	anticipated := t.Position.
		Add(t.Velocity.Mul(r.Def.LeadTime)).
		Add(r.towardTarget().Mul(r.Def.LeadDistance * lead))

	if path := r.Agent.paths.FindPath(r.Agent.Position, anticipated); path.Complete() {
		r.Agent.SetPath(path)
	} else {
		r.Agent.SetDestination(t.Position)
	}
	return true
}

func (r *Runner) attack(now float64) {
	r.env.Effects().Trigger(r.ID, effects.AnimPunch)
	r.attackTimer.Arm(now, r.Def.AttackSpeed)
	r.pending++
	r.notify(EventAttack, 0, "")
	// each punch gets its own task so a faster attack speed lets them overlap
	r.punches++
	name := clock.TaskPunch + "-" + strconv.FormatUint(r.punches, 10)
	r.seq.After(name, now, r.Def.PunchDelay, func(float64) {
		r.pending--
		if !r.hasTarget || r.distSq >= r.Def.AttackDistance {
			return
		}
		if r.env.DamageTarget(r.target.ID, r.Def.AttackDamage) {
			r.notify(EventHit, r.Def.AttackDamage, "punch")
		}
	})
}

func (r *Runner) onDeath(lethal int) {
	pos := r.Agent.Position
	r.die()
	r.pending = 0
	r.env.Effects().Spawn(effects.EffectDie, pos, 2)
	r.notify(EventDied, lethal, effects.EffectDie)
	r.dropLoot(pos)
}

// dropLoot rolls the loot table once per death.
func (r *Runner) dropLoot(pos mgl64.Vec3) {
	if r.dropped {
		return
	}
	r.dropped = true
	entry, ok := r.loot.Roll(r.env.Rand())
	if !ok {
		return
	}
	r.env.SpawnPickup(pos, entry.Pickup)
	r.notify(EventLootDropped, 0, entry.Name)
}
