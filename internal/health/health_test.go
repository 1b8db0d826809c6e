package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
)

func TestHealthDeathFiresOnce(t *testing.T) {
	h := New(3)
	deaths := 0
	h.OnDeath(func(int) { deaths++ })

	for i := 0; i < 4; i++ {
		h.ApplyDamage(1)
	}
	assert.True(t, h.IsDead())
	assert.Equal(t, 1, deaths)
	assert.Equal(t, 1, h.LethalDamage())
	assert.False(t, h.ApplyDamage(5), "damage on a dead pool must be ignored")
	assert.Equal(t, 1, deaths)
}

func TestHealthOverkillRecordsLethalAmount(t *testing.T) {
	h := New(3)
	var lethal int
	h.OnDeath(func(l int) { lethal = l })
	h.ApplyDamage(100)
	assert.Equal(t, 100, lethal)
	assert.Equal(t, 0.0, h.Fraction())
}

func TestHealthRejectsNegative(t *testing.T) {
	h := New(2)
	assert.False(t, h.ApplyDamage(-1))
	assert.Equal(t, 2, h.Current)
	assert.True(t, h.ApplyDamage(0))
	assert.Equal(t, 2, h.Current)
}

func TestHealthOnDamageBeforeDeath(t *testing.T) {
	h := New(1)
	var order []string
	h.OnDamage = func(int, int) { order = append(order, "damage") }
	h.OnDeath(func(int) { order = append(order, "death") })
	h.ApplyDamage(1)
	assert.Equal(t, []string{"damage", "death"}, order)
}

func newVitals(t *testing.T, policy RevivePolicy) (*Vitals, *clock.Clock, *clock.Sequencer) {
	t.Helper()
	clk := clock.New()
	seq := clock.NewSequencer()
	return NewVitals(5, policy, clk, seq), clk, seq
}

func TestVitalsGate(t *testing.T) {
	v, _, _ := newVitals(t, DefaultRevivePolicy(5))
	v.CanTakeDamage = false
	assert.False(t, v.ApplyDamage(1))
	assert.Equal(t, 5, v.Current)

	v.CanTakeDamage = true
	shield := true
	v.Shielded = func() bool { return shield }
	assert.False(t, v.ApplyDamage(1))
	shield = false
	assert.True(t, v.ApplyDamage(1))
	assert.Equal(t, 4, v.Current)
}

func TestVitalsIncapacitationAndRevive(t *testing.T) {
	v, clk, seq := newVitals(t, RevivePolicy{Auto: true, Delay: 3, Health: 2})
	seq.Every(clock.TaskPursue, 0, 1, func(float64) bool { return true })
	revived := 0
	v.OnRevive(func(int) { revived++ })

	v.ApplyDamage(5)
	require.True(t, v.Incapacitated())
	assert.False(t, seq.Active(clock.TaskPursue), "death cancels running tasks")
	assert.True(t, seq.Active(clock.TaskRevive))
	assert.False(t, v.ApplyDamage(1))

	for clk.Now() < 2.85 {
		clk.Advance(0.1)
		seq.Advance(clk.Now())
	}
	assert.True(t, v.Incapacitated())

	clk.Advance(0.2)
	seq.Advance(clk.Now())
	assert.False(t, v.Incapacitated())
	assert.Equal(t, 2, v.Current)
	assert.Equal(t, 1, revived)
	assert.Equal(t, 1, v.Deaths())
}

func TestVitalsManualPolicy(t *testing.T) {
	v, clk, seq := newVitals(t, RevivePolicy{Auto: false})
	v.ApplyDamage(9)
	clk.Advance(10)
	seq.Advance(clk.Now())
	assert.True(t, v.Incapacitated())

	v.Revive()
	assert.False(t, v.Incapacitated())
	assert.Equal(t, 5, v.Current, "zero revive health falls back to max")
}
