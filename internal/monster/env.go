package monster

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
)

// Target is the read-only snapshot of the pursued entity taken once per tick.
type Target struct {
	ID         int
	Position   mgl64.Vec3
	Velocity   mgl64.Vec3
	Vulnerable bool
}

// Event is what an enemy reports back to the world.
type Event struct {
	Kind     EventKind
	Monster  *Monster
	Amount   int
	Position mgl64.Vec3
	Detail   string
}

// Env is the simulation context an enemy runs in.
type Env interface {
	Now() float64
	Delta() float64
	Paths() navigation.PathFinder
	Effects() effects.Sink
	Rand() *rand.Rand
	// DamageTarget applies damage to the entity with the given ID and
	// reports whether it landed.
	DamageTarget(id, amount int) bool
	SpawnPickup(pos mgl64.Vec3, spec items.PickupSpec)
	Notify(ev Event)
}
