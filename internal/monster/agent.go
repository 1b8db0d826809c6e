package monster

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
)

// Agent steers an enemy along corner paths, like a nav mesh agent.
type Agent struct {
	Position mgl64.Vec3
	Speed    float64
	Radius   float64
	// Avoidance lets the world push this agent away from its neighbours.
	Avoidance bool

	paths    navigation.PathFinder
	corners  []mgl64.Vec3
	next     int
	velocity mgl64.Vec3
}

// NewAgent places an agent at pos.
func NewAgent(paths navigation.PathFinder, pos mgl64.Vec3, speed, radius float64) *Agent {
	return &Agent{
		Position:  pos,
		Speed:     speed,
		Radius:    radius,
		Avoidance: true,
		paths:     paths,
	}
}

// SetDestination queries a path to dest and follows it, complete or partial.
// It reports false and stops when no path exists.
func (a *Agent) SetDestination(dest mgl64.Vec3) bool {
	p := a.paths.FindPath(a.Position, dest)
	if p.Status == navigation.StatusInvalid || len(p.Corners) == 0 {
		a.Stop()
		return false
	}
	a.SetPath(p)
	return true
}

// SetPath follows an already computed path.
func (a *Agent) SetPath(p navigation.Path) {
	a.corners = append(a.corners[:0], p.Corners...)
	a.next = 1
	if len(a.corners) < 2 {
		a.next = len(a.corners)
	}
}

// Stop drops the current path.
func (a *Agent) Stop() {
	a.corners = a.corners[:0]
	a.next = 0
	a.velocity = mgl64.Vec3{}
}

// HasPath reports whether corners remain.
func (a *Agent) HasPath() bool { return a.next < len(a.corners) }

// Corners returns the remaining corners, current target first.
func (a *Agent) Corners() []mgl64.Vec3 {
	if !a.HasPath() {
		return nil
	}
	return a.corners[a.next:]
}

// Destination returns the final corner of the current path.
func (a *Agent) Destination() (mgl64.Vec3, bool) {
	if len(a.corners) == 0 {
		return mgl64.Vec3{}, false
	}
	return a.corners[len(a.corners)-1], true
}

// RemainingDistance is the planar length left along the path.
func (a *Agent) RemainingDistance() float64 {
	if !a.HasPath() {
		return 0
	}
	total := planar(a.Position, a.corners[a.next])
	for i := a.next + 1; i < len(a.corners); i++ {
		total += planar(a.corners[i-1], a.corners[i])
	}
	return total
}

// Velocity is the displacement per second of the last step.
func (a *Agent) Velocity() mgl64.Vec3 { return a.velocity }

// Step advances along the path by Speed*dt.
func (a *Agent) Step(dt float64) {
	if dt <= 0 {
		return
	}
	start := a.Position
	budget := a.Speed * dt
	for budget > 0 && a.HasPath() {
		target := a.corners[a.next]
		d := planar(a.Position, target)
		if d <= budget {
			a.Position = target
			budget -= d
			a.next++
			continue
		}
		a.Position = a.Position.Add(target.Sub(a.Position).Mul(budget / d))
		budget = 0
	}
	a.velocity = a.Position.Sub(start).Mul(1 / dt)
}

// Nudge displaces the agent without touching its path.
func (a *Agent) Nudge(delta mgl64.Vec3) {
	a.Position = a.Position.Add(delta)
}

func planar(a, b mgl64.Vec3) float64 {
	return mgl64.Vec2{a[0] - b[0], a[2] - b[2]}.Len()
}
