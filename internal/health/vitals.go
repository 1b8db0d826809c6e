package health

import "github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"

// RevivePolicy decides what happens after the player is incapacitated.
type RevivePolicy struct {
	Auto   bool
	Delay  float64
	Health int
}

// DefaultRevivePolicy revives after three seconds with a full pool.
func DefaultRevivePolicy(max int) RevivePolicy {
	return RevivePolicy{Auto: true, Delay: 3, Health: max}
}

// Vitals is the player's health: hits are gated by CanTakeDamage and by an
// optional shield check (the dash), and death opens an incapacitation window
// that ends in a revive when the policy allows it.
type Vitals struct {
	*Health

	CanTakeDamage bool
	Shielded      func() bool

	policy   RevivePolicy
	clk      *clock.Clock
	seq      *clock.Sequencer
	deaths   int
	revives  int
	onRevive []func(hp int)
}

// NewVitals creates a full player pool driven by clk. The sequencer is the
// player's own; entering the dead state cancels everything on it.
func NewVitals(max int, policy RevivePolicy, clk *clock.Clock, seq *clock.Sequencer) *Vitals {
	v := &Vitals{
		Health:        New(max),
		CanTakeDamage: true,
		policy:        policy,
		clk:           clk,
		seq:           seq,
	}
	v.Health.OnDeath(v.incapacitate)
	return v
}

// OnRevive registers a listener that runs after every revive.
func (v *Vitals) OnRevive(fn func(hp int)) {
	v.onRevive = append(v.onRevive, fn)
}

// Vulnerable reports whether a hit would land right now.
func (v *Vitals) Vulnerable() bool {
	if v.IsDead() || !v.CanTakeDamage {
		return false
	}
	return v.Shielded == nil || !v.Shielded()
}

// ApplyDamage lands the hit only while Vulnerable.
func (v *Vitals) ApplyDamage(amount int) bool {
	if !v.Vulnerable() {
		return false
	}
	return v.Health.ApplyDamage(amount)
}

// Incapacitated reports whether the player is inside the death window.
func (v *Vitals) Incapacitated() bool { return v.IsDead() }

// Deaths counts death transitions.
func (v *Vitals) Deaths() int { return v.deaths }

// Revives counts completed revives.
func (v *Vitals) Revives() int { return v.revives }

// Policy returns the revive policy in effect.
func (v *Vitals) Policy() RevivePolicy { return v.policy }

func (v *Vitals) incapacitate(int) {
	v.deaths++
	v.seq.CancelAll()
	if !v.policy.Auto {
		return
	}
	v.seq.After(clock.TaskRevive, v.clk.Now(), v.policy.Delay, func(float64) {
		v.Revive()
	})
}

// Revive ends the incapacitation window immediately. It is a no-op while alive.
func (v *Vitals) Revive() {
	if !v.IsDead() {
		return
	}
	v.seq.Cancel(clock.TaskRevive)
	hp := v.policy.Health
	if hp <= 0 {
		hp = v.Max
	}
	v.Restore(hp)
	v.revives++
	for _, fn := range v.onRevive {
		fn(v.Current)
	}
}
