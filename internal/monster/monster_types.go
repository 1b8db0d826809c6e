package monster

// Archetype selects the behaviour an enemy definition drives.
type Archetype string

const (
	ArchetypeRunner  Archetype = "runner"
	ArchetypeCharger Archetype = "charger"
)

type MonsterState int

const (
	StatePursuing MonsterState = iota
	StateAttacking
	StateCharging
	StateDead
)

func (s MonsterState) String() string {
	switch s {
	case StatePursuing:
		return "pursuing"
	case StateAttacking:
		return "attacking"
	case StateCharging:
		return "charging"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// EventKind classifies what an enemy reports to the world.
type EventKind int

const (
	EventAttack EventKind = iota
	EventHit
	EventChargeStarted
	EventChargeRetargeted
	EventChargeEnded
	EventExploded
	EventDied
	EventLootDropped
)

func (k EventKind) String() string {
	return [...]string{"attack", "hit", "charge_started", "charge_retargeted", "charge_ended", "exploded", "died", "loot_dropped"}[k]
}
