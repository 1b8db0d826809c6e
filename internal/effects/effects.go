// Package effects is the fire-and-forget boundary to animation, particles and
// audio. The simulation never reads anything back through it.
package effects

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind classifies a cosmetic call.
type Kind int

const (
	KindTrigger Kind = iota
	KindBool
	KindFloat
	KindParticles
	KindSpawn
	KindSound
)

// Animation and effect names shared by the player and enemies.
const (
	AnimPunch      = "Punch"
	AnimIsCharging = "IsCharging"
	AnimSpeed      = "Speed"
	AnimDash       = "Dash"
	AnimShoot      = "Shoot"
	AnimReload     = "Reload"

	ParticleCharge = "ChargeTrail"
	ParticleDash   = "DashTrail"

	EffectExplode     = "explode"
	EffectDie         = "die"
	EffectBulletHit   = "bullet_hit"
	EffectMuzzle      = "muzzle_flash"
	EffectLootSpawned = "loot_spawned"
)

// Sink receives cosmetic requests. Owner is the entity ID the request is about.
type Sink interface {
	Trigger(owner int, name string)
	SetBool(owner int, name string, v bool)
	SetFloat(owner int, name string, v float64)
	Particles(owner int, name string, play bool)
	Spawn(name string, pos mgl64.Vec3, lifetime float64)
	Sound(name string, pos mgl64.Vec3)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Trigger(int, string) {}
func (Nop) SetBool(int, string, bool) {}
func (Nop) SetFloat(int, string, float64) {}
func (Nop) Particles(int, string, bool) {}
func (Nop) Spawn(string, mgl64.Vec3, float64) {}
func (Nop) Sound(string, mgl64.Vec3) {}

// Call is one recorded request.
type Call struct {
	Kind     Kind
	Owner    int
	Name     string
	Bool     bool
	Float    float64
	Position mgl64.Vec3
}

// Log records every request. The viewer drains it each frame; tests inspect it.
type Log struct {
	mu    sync.Mutex
	calls []Call
}

func (l *Log) add(c Call) {
	l.mu.Lock()
	l.calls = append(l.calls, c)
	l.mu.Unlock()
}

func (l *Log) Trigger(owner int, name string) {
	l.add(Call{Kind: KindTrigger, Owner: owner, Name: name})
}

func (l *Log) SetBool(owner int, name string, v bool) {
	l.add(Call{Kind: KindBool, Owner: owner, Name: name, Bool: v})
}

func (l *Log) SetFloat(owner int, name string, v float64) {
	l.add(Call{Kind: KindFloat, Owner: owner, Name: name, Float: v})
}

func (l *Log) Particles(owner int, name string, play bool) {
	l.add(Call{Kind: KindParticles, Owner: owner, Name: name, Bool: play})
}

func (l *Log) Spawn(name string, pos mgl64.Vec3, lifetime float64) {
	l.add(Call{Kind: KindSpawn, Name: name, Position: pos, Float: lifetime})
}

func (l *Log) Sound(name string, pos mgl64.Vec3) {
	l.add(Call{Kind: KindSound, Name: name, Position: pos})
}

// Calls returns a copy of everything recorded.
func (l *Log) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, len(l.calls))
	copy(out, l.calls)
	return out
}

// Drain returns and clears everything recorded.
func (l *Log) Drain() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.calls
	l.calls = nil
	return out
}

// Count returns how many calls of kind carried name.
func (l *Log) Count(kind Kind, name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c.Kind == kind && c.Name == name {
			n++
		}
	}
	return n
}
