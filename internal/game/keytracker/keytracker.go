// keytracker.go - edge detection for Ebiten keys and mouse buttons.
// A press or release is reported relative to the previous poll.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// IsKeyJustPressed returns true if the key was not pressed last poll but is pressed now.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.edge(ebiten.IsKeyPressed(key))
}

// IsButtonJustReleased returns true if the mouse button was held last poll
// and is up now.
func (k *KeyStateTracker) IsButtonJustReleased(button ebiten.MouseButton) bool {
	pressed := ebiten.IsMouseButtonPressed(button)
	released := !pressed && k.prevPressed
	k.prevPressed = pressed
	return released
}

func (k *KeyStateTracker) edge(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Set tracks many keys at once.
type Set struct {
	keys map[ebiten.Key]*KeyStateTracker
}

// NewSet creates a tracker for the given keys.
func NewSet(keys ...ebiten.Key) *Set {
	s := &Set{keys: make(map[ebiten.Key]*KeyStateTracker, len(keys))}
	for _, k := range keys {
		s.keys[k] = &KeyStateTracker{}
	}
	return s
}

// JustPressed reports a press edge for key. Keys not passed to NewSet are
// tracked from their first query on.
func (s *Set) JustPressed(key ebiten.Key) bool {
	t, ok := s.keys[key]
	if !ok {
		t = &KeyStateTracker{}
		s.keys[key] = t
	}
	return t.IsKeyJustPressed(key)
}
