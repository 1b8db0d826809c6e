package player

import (
	"math/rand"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
)

// Shot is a bullet the weapon wants spawned. Yaw already includes spread.
type Shot struct {
	Yaw      float64
	Damage   int
	Speed    float64
	Lifetime float64
	Ultimate bool
}

// Trigger is the weapon-relevant part of the controls.
type Trigger struct {
	Fire    bool
	AltFire bool
	Reload  bool
}

// Weapon is the runtime state of an equipped gun.
type Weapon struct {
	Def     items.WeaponDefinition
	Clip    int
	Reserve int

	seq        *clock.Sequencer
	rng        *rand.Rand
	shootTimer clock.Deadline
	reloading  bool
	charge     float64
	charging   bool
}

// NewWeapon equips def with a full clip and its starting reserve.
func NewWeapon(def items.WeaponDefinition, seq *clock.Sequencer, rng *rand.Rand) *Weapon {
	return &Weapon{
		Def:     def,
		Clip:    def.ClipSize,
		Reserve: def.StartingReserve,
		seq:     seq,
		rng:     rng,
	}
}

// Reloading reports whether a reload is in progress.
func (w *Weapon) Reloading() bool { return w.reloading }

// UltimateCharge is the ultimate charge in [0, 1].
func (w *Weapon) UltimateCharge() float64 { return w.charge }

// Update handles one tick of trigger input at yaw and returns the shots fired.
func (w *Weapon) Update(now, dt, yaw float64, in Trigger) []Shot {
	if in.Reload {
		w.StartReload(now)
	}
	if w.reloading {
		return nil
	}

	if in.AltFire {
		w.charging = true
		w.charge = mathutil.Clamp(w.charge+w.Def.ChargeSpeed*dt, 0, 1)
		return nil
	}
	if w.charging {
		w.charging = false
		if w.charge >= 1 {
			w.charge = 0
			w.shootTimer.Arm(now, w.Def.FireRate*3)
			return []Shot{w.shot(yaw, w.Def.UltimateDamage, true)}
		}
	}

	if !in.Fire || !w.shootTimer.Passed(now) {
		return nil
	}
	if w.Clip <= 0 {
		w.StartReload(now)
		return nil
	}
	w.Clip--
	w.shootTimer.Arm(now, w.Def.FireRate)
	shots := []Shot{w.shot(yaw, w.Def.BulletDamage, false)}
	if w.Clip == 0 {
		w.StartReload(now)
	}
	return shots
}

func (w *Weapon) shot(yaw float64, damage int, ultimate bool) Shot {
	spread := 0.0
	if w.Def.BulletSpread > 0 && !ultimate {
		spread = (w.rng.Float64()*2 - 1) * w.Def.BulletSpread
	}
	return Shot{
		Yaw:      yaw + spread,
		Damage:   damage,
		Speed:    w.Def.BulletSpeed,
		Lifetime: w.Def.BulletLifetime,
		Ultimate: ultimate,
	}
}

// StartReload begins a reload when the clip is not full and rounds remain.
func (w *Weapon) StartReload(now float64) bool {
	if w.reloading || w.Clip >= w.Def.ClipSize || w.Reserve <= 0 {
		return false
	}
	w.reloading = true
	w.charging = false
	w.seq.After(clock.TaskReload, now, w.Def.ReloadTime, func(float64) {
		w.finishReload()
	})
	return true
}

func (w *Weapon) finishReload() {
	w.reloading = false
	n := mathutil.IntMin(w.Def.ClipSize-w.Clip, w.Reserve)
	w.Clip += n
	w.Reserve -= n
}

// Interrupt drops any reload or ultimate charge in progress.
func (w *Weapon) Interrupt() {
	w.seq.Cancel(clock.TaskReload)
	w.reloading = false
	w.charging = false
	w.charge = 0
}

// AddAmmo adds rounds to the reserve.
func (w *Weapon) AddAmmo(n int) {
	if n > 0 {
		w.Reserve += n
	}
}
