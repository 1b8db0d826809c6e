package monster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
)

const playerID = 7

func guaranteedLoot() items.LootTable {
	return items.LootTable{Entries: []items.LootEntry{
		{Name: "ammo", SpawnPercent: 1, Pickup: items.PickupSpec{Kind: items.PickupAmmo, Bullets: 10}},
	}}
}

func TestRunnerApproachesAndPunches(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)
	target := &Target{ID: playerID, Position: mgl64.Vec3{5, 0, 0}, Vulnerable: true}

	for env.now < 1.5 {
		env.tick(r, target)
	}
	assert.Equal(t, 1, env.count(EventAttack))
	assert.Equal(t, 1, env.damage[playerID], "one punch landed")
	assert.Equal(t, 1, env.fx.Count(effects.KindTrigger, effects.AnimPunch))

	for env.now < 2.5 {
		env.tick(r, target)
	}
	assert.Equal(t, 2, env.damage[playerID], "attacks are spaced by attack speed")
}

func TestRunnerPunchDelayRechecksRange(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)
	target := &Target{ID: playerID, Position: mgl64.Vec3{1, 0, 0}, Vulnerable: true}

	env.tick(r, target)
	require.Equal(t, 1, env.count(EventAttack), "in range on the first tick")
	assert.Equal(t, StateAttacking, r.State())
	assert.True(t, r.Sequencer().Active(clock.TaskPursue), "pursuit keeps running while attacking")

	target.Position = mgl64.Vec3{10, 0, 0}
	for env.now < 0.5 {
		env.tick(r, target)
	}
	assert.Equal(t, 0, env.damage[playerID], "target left range before the punch landed")
	assert.Equal(t, StatePursuing, r.State())
}

func TestRunnerPunchesOverlapWhenFasterThanDelay(t *testing.T) {
	env := NewMockEnv()
	d := def(t, "runner")
	d.AttackSpeed = 0.1
	d.PunchDelay = 0.37
	r := NewRunner(1, "runner", d, items.LootTable{}, mgl64.Vec3{}, env)
	target := &Target{ID: playerID, Position: mgl64.Vec3{1, 0, 0}, Vulnerable: true}

	for env.now < 1.0 {
		env.tick(r, target)
	}
	attacks := env.count(EventAttack)
	require.GreaterOrEqual(t, attacks, 9)
	// punches thrown in the last 0.37s are still winding up
	assert.GreaterOrEqual(t, env.damage[playerID], attacks-4)
	assert.Equal(t, StateAttacking, r.State())

	r.ApplyDamage(r.Health.Current)
	assert.Equal(t, 0, r.Sequencer().Len(), "death cancels every pending punch")
}

func TestRunnerLeadsMovingTarget(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)
	target := &Target{ID: playerID, Position: mgl64.Vec3{10, 0, 0}, Velocity: mgl64.Vec3{5, 0, 0}}

	env.tick(r, target)
	require.NotEmpty(t, env.queries)
	// 10 + 5*0.2 + 1*0.25
	assert.InDelta(t, 11.25, env.queries[0][0], 1e-9)
	assert.InDelta(t, 0.0, env.queries[0][2], 1e-9)
}

func TestRunnerFallsBackToDirectSeek(t *testing.T) {
	env := NewMockEnv()
	targetPos := mgl64.Vec3{10, 0, 0}
	env.pathFunc = func(from, to mgl64.Vec3) navigation.Path {
		if to == targetPos {
			return navigation.Path{Corners: []mgl64.Vec3{from, {5, 0, 3}, to}, Status: navigation.StatusPartial}
		}
		return navigation.Path{Corners: []mgl64.Vec3{from}, Status: navigation.StatusPartial}
	}
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)

	env.tick(r, &Target{ID: playerID, Position: targetPos, Velocity: mgl64.Vec3{0, 0, 3}})
	require.Len(t, env.queries, 2)
	assert.Equal(t, targetPos, env.queries[1])
	dest, ok := r.Agent.Destination()
	require.True(t, ok)
	assert.Equal(t, targetPos, dest)
}

func TestRunnerRepathCadence(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)
	target := &Target{ID: playerID, Position: mgl64.Vec3{20, 0, 0}}
	for env.now < 1.0 {
		env.tick(r, target)
	}
	// every 0.15s from the first tick: 0, .15, ... .90 plus tick rounding
	assert.GreaterOrEqual(t, len(env.queries), 6)
	assert.LessOrEqual(t, len(env.queries), 8)
}

func TestRunnerDiesOnThirdBullet(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "brute", def(t, "brute"), guaranteedLoot(), mgl64.Vec3{}, env)
	target := &Target{ID: playerID, Position: mgl64.Vec3{1, 0, 0}, Vulnerable: true}
	env.tick(r, target)
	require.Equal(t, 3, r.Health.Max)

	assert.True(t, r.ApplyDamage(1))
	assert.True(t, r.ApplyDamage(1))
	assert.False(t, r.IsDead())
	assert.True(t, r.ApplyDamage(1))

	assert.True(t, r.IsDead())
	assert.Equal(t, StateDead, r.State())
	assert.Equal(t, 0, r.Sequencer().Len(), "death cancels pursuit and the pending punch")
	assert.Equal(t, 1, env.count(EventDied))
	assert.Len(t, env.pickups, 1)

	assert.False(t, r.ApplyDamage(1))
	for i := 0; i < 60; i++ {
		env.tick(r, target)
	}
	assert.Len(t, env.pickups, 1, "loot is rolled exactly once")
	assert.Equal(t, 0, env.damage[playerID], "pending punch never lands after death")
	assert.Equal(t, 1, env.fx.Count(effects.KindSpawn, effects.EffectDie))
}

func TestRunnerEmptyLootDropsNothing(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)
	r.ApplyDamage(5)
	assert.True(t, r.IsDead())
	assert.Empty(t, env.pickups)
	assert.Equal(t, 0, env.count(EventLootDropped))
}

func TestRunnerWithoutTargetIsPassive(t *testing.T) {
	env := NewMockEnv()
	r := NewRunner(1, "runner", def(t, "runner"), items.LootTable{}, mgl64.Vec3{}, env)
	for i := 0; i < 30; i++ {
		env.tick(r, nil)
	}
	assert.Equal(t, 0, r.Sequencer().Len())
	assert.Empty(t, env.queries)
	assert.Equal(t, mgl64.Vec3{}, r.Position())

	target := &Target{ID: playerID, Position: mgl64.Vec3{4, 0, 0}}
	env.tick(r, target)
	assert.True(t, r.Sequencer().Active(clock.TaskPursue), "pursuit resumes once a target exists")
	env.tick(r, nil)
	env.now += 0.2
	env.tick(r, nil)
	assert.False(t, r.Sequencer().Active(clock.TaskPursue), "loop ends when the target disappears")
}
