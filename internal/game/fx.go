package game

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
)

const (
	defaultFlashLifetime = 0.25
	punchFlashLifetime   = 0.15
	dashFlashLifetime    = 0.2
)

// Flash is a short-lived marker drawn where an effect spawned.
type Flash struct {
	Name      string
	Position  mgl64.Vec3
	Remaining float64
	Lifetime  float64
}

// Alpha fades from 1 to 0 over the flash lifetime.
func (f Flash) Alpha() float64 {
	if f.Lifetime <= 0 {
		return 0
	}
	return f.Remaining / f.Lifetime
}

// FxSink is the viewer's effects sink. It keeps the little state the renderer
// needs (flashes, charge and trail flags, punch windups) and forwards every
// call to Inner when set.
type FxSink struct {
	Inner effects.Sink

	mu       sync.Mutex
	flashes  []Flash
	bools    map[int]map[string]bool
	trails   map[int]map[string]bool
	triggers map[int]map[string]float64
	speeds   map[int]float64
}

// NewFxSink creates an empty sink.
func NewFxSink() *FxSink {
	return &FxSink{
		bools:    make(map[int]map[string]bool),
		trails:   make(map[int]map[string]bool),
		triggers: make(map[int]map[string]float64),
		speeds:   make(map[int]float64),
	}
}

func (s *FxSink) Trigger(owner int, name string) {
	s.mu.Lock()
	life := punchFlashLifetime
	if name == effects.AnimDash {
		life = dashFlashLifetime
	}
	setNested(s.triggers, owner, name, life)
	s.mu.Unlock()
	if s.Inner != nil {
		s.Inner.Trigger(owner, name)
	}
}

func (s *FxSink) SetBool(owner int, name string, v bool) {
	s.mu.Lock()
	setNested(s.bools, owner, name, v)
	s.mu.Unlock()
	if s.Inner != nil {
		s.Inner.SetBool(owner, name, v)
	}
}

func (s *FxSink) SetFloat(owner int, name string, v float64) {
	if name == effects.AnimSpeed {
		s.mu.Lock()
		s.speeds[owner] = v
		s.mu.Unlock()
	}
	if s.Inner != nil {
		s.Inner.SetFloat(owner, name, v)
	}
}

func (s *FxSink) Particles(owner int, name string, play bool) {
	s.mu.Lock()
	setNested(s.trails, owner, name, play)
	s.mu.Unlock()
	if s.Inner != nil {
		s.Inner.Particles(owner, name, play)
	}
}

func (s *FxSink) Spawn(name string, pos mgl64.Vec3, lifetime float64) {
	if lifetime <= 0 {
		lifetime = defaultFlashLifetime
	}
	s.mu.Lock()
	s.flashes = append(s.flashes, Flash{Name: name, Position: pos, Remaining: lifetime, Lifetime: lifetime})
	s.mu.Unlock()
	if s.Inner != nil {
		s.Inner.Spawn(name, pos, lifetime)
	}
}

// Sound is forwarded only; the viewer has no audio.
func (s *FxSink) Sound(name string, pos mgl64.Vec3) {
	if s.Inner != nil {
		s.Inner.Sound(name, pos)
	}
}

// Advance ages flashes and trigger windows by dt seconds.
func (s *FxSink) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.flashes[:0]
	for _, f := range s.flashes {
		f.Remaining -= dt
		if f.Remaining > 0 {
			kept = append(kept, f)
		}
	}
	s.flashes = kept
	for owner, names := range s.triggers {
		for name, left := range names {
			left -= dt
			if left <= 0 {
				delete(names, name)
				continue
			}
			names[name] = left
		}
		if len(names) == 0 {
			delete(s.triggers, owner)
		}
	}
}

// Flashes returns a copy of the live flashes.
func (s *FxSink) Flashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Flash, len(s.flashes))
	copy(out, s.flashes)
	return out
}

// Bool reads an animator flag.
func (s *FxSink) Bool(owner int, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bools[owner][name]
}

// Trail reports whether a particle trail is playing.
func (s *FxSink) Trail(owner int, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trails[owner][name]
}

// Triggered reports whether a trigger fired within its display window.
func (s *FxSink) Triggered(owner int, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.triggers[owner][name] > 0
}

// Speed is the last AnimSpeed value set for owner.
func (s *FxSink) Speed(owner int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speeds[owner]
}

// Forget drops per-owner state once an entity is gone.
func (s *FxSink) Forget(owner int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bools, owner)
	delete(s.trails, owner)
	delete(s.triggers, owner)
	delete(s.speeds, owner)
}

func setNested[T any](m map[int]map[string]T, owner int, name string, v T) {
	inner, ok := m[owner]
	if !ok {
		inner = make(map[string]T)
		m[owner] = inner
	}
	inner[name] = v
}
