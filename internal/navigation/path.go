// Package navigation answers path queries over a walkable grid baked from the
// arena geometry. Paths are returned as corner lists, like a nav mesh would.
package navigation

import "github.com/go-gl/mathgl/mgl64"

// Status classifies a path query result.
type Status int

const (
	// StatusInvalid means no path could be produced (start off the grid).
	StatusInvalid Status = iota
	// StatusPartial ends at the reachable point closest to the destination.
	StatusPartial
	// StatusComplete reaches the destination.
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusPartial:
		return "partial"
	}
	return "invalid"
}

// Path is an ordered corner list starting at the query origin.
type Path struct {
	Corners []mgl64.Vec3
	Status  Status
}

// Complete reports whether the path reaches its destination.
func (p Path) Complete() bool { return p.Status == StatusComplete }

// Direct reports whether the path is a single straight segment to its
// destination: exactly two corners and complete.
func (p Path) Direct() bool { return p.Complete() && len(p.Corners) == 2 }

// End returns the last corner.
func (p Path) End() (mgl64.Vec3, bool) {
	if len(p.Corners) == 0 {
		return mgl64.Vec3{}, false
	}
	return p.Corners[len(p.Corners)-1], true
}

// Length is the summed planar length of all segments.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.Corners); i++ {
		total += planarDist(p.Corners[i-1], p.Corners[i])
	}
	return total
}

// PathFinder is the path query collaborator enemies depend on.
type PathFinder interface {
	FindPath(from, to mgl64.Vec3) Path
}

// PathFinderFunc adapts a function to PathFinder.
type PathFinderFunc func(from, to mgl64.Vec3) Path

// FindPath calls f.
func (f PathFinderFunc) FindPath(from, to mgl64.Vec3) Path { return f(from, to) }

func planarDist(a, b mgl64.Vec3) float64 {
	return mgl64.Vec2{a[0] - b[0], a[2] - b[2]}.Len()
}
