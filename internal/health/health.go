// Package health holds the shared damage contract: anything that can be hurt
// implements Damageable, and Health guarantees death is observed exactly once.
package health

// Damageable is the capability bullets, melee and explosions hit through.
type Damageable interface {
	ApplyDamage(amount int) bool
	IsDead() bool
}

// Health is a hit point pool that transitions to dead exactly once.
type Health struct {
	Max     int
	Current int

	dead   bool
	lethal int

	// OnDamage runs after every applied hit, before any death listener.
	OnDamage func(amount, remaining int)
	onDeath  []func(lethal int)
}

// New creates a full pool. Non-positive max is raised to 1.
func New(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// OnDeath registers a listener that runs once when the pool reaches zero.
func (h *Health) OnDeath(fn func(lethal int)) {
	h.onDeath = append(h.onDeath, fn)
}

// ApplyDamage subtracts amount. It is a no-op on a dead pool or for negative
// amounts and reports whether the hit landed.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || h.dead || amount < 0 {
		return false
	}
	h.Current -= amount
	if h.OnDamage != nil {
		h.OnDamage(amount, h.Current)
	}
	if h.Current <= 0 {
		h.die(amount)
	}
	return true
}

// Kill forces the death transition with the given lethal amount.
func (h *Health) Kill(lethal int) {
	if h == nil || h.dead {
		return
	}
	h.Current = 0
	h.die(lethal)
}

func (h *Health) die(lethal int) {
	h.dead = true
	h.lethal = lethal
	for _, fn := range h.onDeath {
		fn(lethal)
	}
}

// IsDead reports whether the death transition has happened.
func (h *Health) IsDead() bool { return h == nil || h.dead }

// LethalDamage is the amount of the hit that killed the pool, 0 while alive.
func (h *Health) LethalDamage() int { return h.lethal }

// Restore brings a dead or damaged pool back to hp, clamped to [1, Max].
func (h *Health) Restore(hp int) {
	if hp < 1 {
		hp = 1
	}
	if hp > h.Max {
		hp = h.Max
	}
	h.Current = hp
	h.dead = false
	h.lethal = 0
}

// Fraction returns Current/Max in [0, 1].
func (h *Health) Fraction() float64 {
	if h.Current <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
