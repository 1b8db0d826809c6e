package world

import (
	"github.com/go-gl/mathgl/mgl64"
)

// EventKind classifies world events.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventAttack
	EventDamage
	EventDeath
	EventChargeStarted
	EventChargeRetargeted
	EventChargeEnded
	EventLoot
	EventPickup
	EventShot
	EventRevive
)

func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventAttack:
		return "attack"
	case EventDamage:
		return "damage"
	case EventDeath:
		return "death"
	case EventChargeStarted:
		return "charge_started"
	case EventChargeRetargeted:
		return "charge_retargeted"
	case EventChargeEnded:
		return "charge_ended"
	case EventLoot:
		return "loot"
	case EventPickup:
		return "pickup"
	case EventShot:
		return "shot"
	case EventRevive:
		return "revive"
	}
	return "unknown"
}

// Event is something that happened during a tick. Entity is who it happened
// to and Source who caused it, when known.
type Event struct {
	Kind      EventKind
	Tick      uint64
	Time      float64
	Entity    Handle
	Source    Handle
	Archetype string
	Amount    int
	Position  mgl64.Vec3
	Detail    string
}

// EventQueue is a FIFO of events pending delivery.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	q.items = append(q.items, evt)
}

// Len is the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
