package monster

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/health"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
)

// Enemy is what the world drives every tick.
type Enemy interface {
	health.Damageable
	Core() *Monster
	// Sense stores this tick's target snapshot. It only writes the enemy's own
	// fields, so the world may call it for many enemies in parallel.
	Sense(t Target, ok bool)
	// Update runs the enemy's decision logic for one tick.
	Update()
	State() MonsterState
}

// Monster is the state shared by every archetype.
type Monster struct {
	ID     int
	Key    string
	Def    MonsterDefinition
	Health *health.Health
	Agent  *Agent

	env   Env
	seq   *clock.Sequencer
	state MonsterState

	attackTimer clock.Deadline

	target    Target
	hasTarget bool
	distSq    float64
}

func newMonster(id int, key string, def MonsterDefinition, pos mgl64.Vec3, env Env) *Monster {
	def = def.WithDefaults()
	return &Monster{
		ID:     id,
		Key:    key,
		Def:    def,
		Health: health.New(def.Health),
		Agent:  NewAgent(env.Paths(), pos, def.MoveSpeed, def.Radius),
		env:    env,
		seq:    clock.NewSequencer(),
		state:  StatePursuing,
	}
}

// Core returns the shared state.
func (m *Monster) Core() *Monster { return m }

// Position returns the agent position.
func (m *Monster) Position() mgl64.Vec3 { return m.Agent.Position }

// Sequencer exposes the enemy's running tasks.
func (m *Monster) Sequencer() *clock.Sequencer { return m.seq }

// DistSq is the squared distance to the target sensed this tick.
func (m *Monster) DistSq() float64 { return m.distSq }

// AttackReadyAt is when the next attack or charge may start.
func (m *Monster) AttackReadyAt() float64 { return m.attackTimer.At }

// IsDead reports whether the enemy has died.
func (m *Monster) IsDead() bool { return m.state == StateDead || m.Health.IsDead() }

// ApplyDamage hurts the enemy. Damage after death is ignored.
func (m *Monster) ApplyDamage(amount int) bool {
	if m.IsDead() {
		return false
	}
	if !m.Health.ApplyDamage(amount) {
		return false
	}
	if !m.Health.IsDead() {
		m.notify(EventHit, amount, "")
	}
	return true
}

// Sense stores the target snapshot and the squared distance to it.
func (m *Monster) Sense(t Target, ok bool) {
	m.target = t
	m.hasTarget = ok
	if ok {
		m.distSq = mathutil.SqrDist(m.Agent.Position, t.Position)
	}
}

func (m *Monster) notify(kind EventKind, amount int, detail string) {
	m.env.Notify(Event{Kind: kind, Monster: m, Amount: amount, Position: m.Agent.Position, Detail: detail})
}

// die moves to the dead state and stops every running task.
func (m *Monster) die() {
	m.state = StateDead
	m.seq.CancelAll()
	m.Agent.Stop()
}

// towardTarget is the unit ground-plane direction from the enemy to its target.
func (m *Monster) towardTarget() mgl64.Vec3 {
	return mathutil.SafeNormalize(mathutil.Flat(m.target.Position.Sub(m.Agent.Position)))
}
