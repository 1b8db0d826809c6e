package world

import (
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
)

// Spawner releases one wave of enemies: the first after the wave delay, then
// one per interval until the wave amount has spawned.
type Spawner struct {
	Wave    config.WaveConfig
	spawned int
	next    clock.Deadline
	failed  bool
}

func newSpawner(wave config.WaveConfig, now float64) *Spawner {
	s := &Spawner{Wave: wave}
	s.next.Arm(now, wave.Delay)
	return s
}

// Spawned is how many enemies this wave has released.
func (s *Spawner) Spawned() int { return s.spawned }

// Done reports whether the wave is exhausted.
func (s *Spawner) Done() bool { return s.failed || s.spawned >= s.Wave.Amount }

// NextAt is when the next enemy is due.
func (s *Spawner) NextAt() float64 { return s.next.At }

func (w *World) stepSpawners() {
	now := w.clock.Now()
	points := w.cfg.GetSpawnPoints()
	for _, s := range w.spawners {
		for !s.Done() && s.next.Ready(now) {
			if len(points) == 0 {
				w.log.Warn().Str("monster", s.Wave.Monster).Msg("no spawn points, wave skipped")
				s.failed = true
				break
			}
			pos := points[w.rng.Intn(len(points))]
			if _, err := w.SpawnEnemy(s.Wave.Monster, pos); err != nil {
				w.log.Error().Err(err).Str("monster", s.Wave.Monster).Msg("wave spawn failed")
				s.failed = true
				break
			}
			s.spawned++
			s.next.At += s.Wave.Interval
		}
	}
}

// collectPickups gives the player every pickup within the pickup radius.
func (w *World) collectPickups() {
	if w.player.IsDead() {
		return
	}
	radius := w.cfg.Player.GetPickupRadius()
	pos := w.player.Position()
	for i := 0; i < len(w.pickups); i++ {
		p := w.pickups[i]
		if mathutil.FlatLen(p.Position.Sub(pos)) > radius {
			continue
		}
		if w.takePickup(i) {
			i--
		}
	}
}

// interact picks up the closest pickup within reach.
func (w *World) interact() {
	if w.player.IsDead() {
		return
	}
	best, bestDist := -1, w.cfg.Player.GetInteractRange()
	pos := w.player.Position()
	for i, p := range w.pickups {
		if d := mathutil.FlatLen(p.Position.Sub(pos)); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		w.takePickup(best)
	}
}

// takePickup applies pickup i to the player and removes it on success.
func (w *World) takePickup(i int) bool {
	p := w.pickups[i]
	if !w.player.Collect(p.Spec, w.catalog) {
		return false
	}
	p.Collected = true
	w.entities.destroy(Handle(p.ID))
	w.pickups = append(w.pickups[:i], w.pickups[i+1:]...)

	detail := string(p.Spec.Kind)
	if p.Spec.Weapon != "" {
		detail += ":" + p.Spec.Weapon
	}
	w.push(Event{
		Kind:      EventPickup,
		Entity:    Handle(p.ID),
		Source:    w.playerHandle,
		Archetype: "pickup",
		Amount:    p.Spec.Bullets,
		Position:  p.Position,
		Detail:    detail,
	})
	return true
}
