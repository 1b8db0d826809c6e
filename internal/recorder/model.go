package recorder

import (
	"time"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

// Match is one recorded simulation run.
type Match struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Label     string    `json:"label" gorm:"size:64"`
	Seed      int64     `json:"seed"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	SimTime   float64   `json:"simTime"` // simulated seconds at EndMatch
	Ticks     uint64    `json:"ticks"`
	Kills     int       `json:"kills"`
	Deaths    int       `json:"deaths"`
}

func (*Match) TableName() string {
	return "matches"
}

// CombatEvent is a flattened world event.
type CombatEvent struct {
	ID        uint    `json:"id" gorm:"primarykey;autoIncrement;"`
	MatchID   uint    `json:"matchId" gorm:"index:idx_combatevent_match_id"`
	Tick      uint64  `json:"tick" gorm:"index:idx_combatevent_tick"`
	Time      float64 `json:"time"`
	Kind      string  `json:"kind" gorm:"size:24;index:idx_combatevent_kind"`
	Entity    uint64  `json:"entity"`
	Source    uint64  `json:"source"`
	Archetype string  `json:"archetype" gorm:"size:32"`
	Amount    int     `json:"amount"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Detail    string  `json:"detail" gorm:"size:64"`
}

func (*CombatEvent) TableName() string {
	return "combat_events"
}

// FromEvent converts a world event for storage under matchID.
func FromEvent(matchID uint, ev world.Event) CombatEvent {
	return CombatEvent{
		MatchID:   matchID,
		Tick:      ev.Tick,
		Time:      ev.Time,
		Kind:      ev.Kind.String(),
		Entity:    uint64(ev.Entity),
		Source:    uint64(ev.Source),
		Archetype: ev.Archetype,
		Amount:    ev.Amount,
		X:         ev.Position[0],
		Y:         ev.Position[1],
		Z:         ev.Position[2],
		Detail:    ev.Detail,
	}
}

// Models lists every table the sqlite backend migrates.
var Models = []any{
	&Match{},
	&CombatEvent{},
}
