// Package physics is the geometry query facade: downward ground probes over
// walkable surfaces, swept queries against walls, and the collide-and-slide
// mover used by the player.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	contactSkin   = 0.01
	slideIters    = 3
	groundEpsilon = 1e-6
)

// Arena holds the static level. Walls live in a Chipmunk space on the XZ plane
// (cp X = world X, cp Y = world Z); surfaces are kept as plain rectangles.
type Arena struct {
	space    *cp.Space
	surfaces []Surface
	walls    []Wall

	// StepOffset is how far above the current feet a surface may be and
	// still be stepped onto.
	StepOffset float64
}

// NewArena builds the static space from the given surfaces and walls.
func NewArena(surfaces []Surface, walls []Wall) *Arena {
	a := &Arena{
		space:      cp.NewSpace(),
		StepOffset: 0.3,
	}
	for _, s := range surfaces {
		a.AddSurface(s)
	}
	for _, w := range walls {
		a.AddWall(w)
	}
	return a
}

// AddSurface appends a walkable surface.
func (a *Arena) AddSurface(s Surface) {
	a.surfaces = append(a.surfaces, s)
}

// AddWall appends a solid block and indexes it for swept queries.
func (a *Arena) AddWall(w Wall) {
	bb := cp.BB{L: w.MinX, B: w.MinZ, R: w.MaxX, T: w.MaxZ}
	shape := cp.NewBox2(a.space.StaticBody, bb, 0)
	a.space.AddShape(shape)
	a.walls = append(a.walls, w)
}

// Surfaces returns the walkable surfaces.
func (a *Arena) Surfaces() []Surface { return a.surfaces }

// Walls returns the solid blocks.
func (a *Arena) Walls() []Wall { return a.walls }

// Bounds returns the XZ extent covered by surfaces and walls.
func (a *Arena) Bounds() (minX, minZ, maxX, maxZ float64) {
	minX, minZ = math.Inf(1), math.Inf(1)
	maxX, maxZ = math.Inf(-1), math.Inf(-1)
	grow := func(x0, z0, x1, z1 float64) {
		minX, minZ = math.Min(minX, x0), math.Min(minZ, z0)
		maxX, maxZ = math.Max(maxX, x1), math.Max(maxZ, z1)
	}
	for _, s := range a.surfaces {
		grow(s.MinX, s.MinZ, s.MaxX, s.MaxZ)
	}
	for _, w := range a.walls {
		grow(w.MinX, w.MinZ, w.MaxX, w.MaxZ)
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minZ, maxX, maxZ
}

// surfaceBelow returns the highest surface under (x, z) whose height does not
// exceed ceiling.
func (a *Arena) surfaceBelow(x, z, ceiling float64) (Surface, float64, bool) {
	var best Surface
	bestH := math.Inf(-1)
	found := false
	for _, s := range a.surfaces {
		if !s.Contains(x, z) {
			continue
		}
		h := s.HeightAt(x, z)
		if h > ceiling+groundEpsilon || h <= bestH {
			continue
		}
		best, bestH, found = s, h, true
	}
	return best, bestH, found
}

// GroundHeight returns the highest surface height at (x, z).
func (a *Arena) GroundHeight(x, z float64) (float64, bool) {
	_, h, ok := a.surfaceBelow(x, z, math.Inf(1))
	return h, ok
}

// CastDown casts a vertical ray from origin and reports the first surface
// within maxDist.
func (a *Arena) CastDown(origin mgl64.Vec3, maxDist float64) (Hit, bool) {
	s, h, ok := a.surfaceBelow(origin[0], origin[2], origin[1])
	if !ok {
		return Hit{}, false
	}
	dist := origin[1] - h
	if dist > maxDist {
		return Hit{}, false
	}
	n := s.Normal()
	return Hit{
		Point:    mgl64.Vec3{origin[0], h, origin[2]},
		Normal:   n,
		Distance: dist,
		Angle:    SlopeAngle(n),
		Surface:  s.Name,
	}, true
}

func toCP(v mgl64.Vec3) cp.Vector { return cp.Vector{X: v[0], Y: v[2]} }

// SegmentCast sweeps a circle of radius along from -> to on the ground plane
// and returns the first wall contact.
func (a *Arena) SegmentCast(from, to mgl64.Vec3, radius float64) (Hit, bool) {
	start, end := toCP(from), toCP(to)
	info := a.space.SegmentQueryFirst(start, end, radius, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return Hit{}, false
	}
	planar := end.Sub(start).Length()
	y := from[1] + (to[1]-from[1])*info.Alpha
	return Hit{
		Point:    mgl64.Vec3{info.Point.X, y, info.Point.Y},
		Normal:   mgl64.Vec3{info.Normal.X, 0, info.Normal.Y},
		Distance: planar * info.Alpha,
		Angle:    90,
	}, true
}

// LineOfSight reports whether a circle of radius can travel from -> to
// without touching a wall.
func (a *Arena) LineOfSight(from, to mgl64.Vec3, radius float64) bool {
	_, hit := a.SegmentCast(from, to, radius)
	return !hit
}

// Blocked reports whether a circle of radius at p overlaps a wall.
func (a *Arena) Blocked(p mgl64.Vec3, radius float64) bool {
	for _, w := range a.walls {
		if w.Inflated(p[0], p[2], radius) {
			return true
		}
	}
	return false
}

// Walkable reports whether p is on a surface and clear of walls.
func (a *Arena) Walkable(p mgl64.Vec3, radius float64) bool {
	if _, ok := a.GroundHeight(p[0], p[2]); !ok {
		return false
	}
	return !a.Blocked(p, radius)
}

// Move displaces a character of the given radius by delta. Horizontal motion
// slides along walls; vertical motion stops on the highest surface within
// StepOffset of the current feet.
func (a *Arena) Move(pos, delta mgl64.Vec3, radius float64) MoveResult {
	res := MoveResult{}
	p := toCP(pos)
	remaining := cp.Vector{X: delta[0], Y: delta[2]}

	for i := 0; i < slideIters && remaining.Length() > 1e-9; i++ {
		target := p.Add(remaining)
		info := a.space.SegmentQueryFirst(p, target, radius, cp.SHAPE_FILTER_ALL)
		if info.Shape == nil {
			p = target
			break
		}
		res.HitWall = true
		travel := remaining.Mult(info.Alpha)
		if l := travel.Length(); l > contactSkin {
			p = p.Add(travel.Mult((l - contactSkin) / l))
		}
		rest := remaining.Mult(1 - info.Alpha)
		remaining = rest.Sub(info.Normal.Mult(rest.Dot(info.Normal)))
	}

	y := pos[1] + delta[1]
	if _, h, ok := a.surfaceBelow(p.X, p.Y, pos[1]+a.StepOffset); ok && y <= h+groundEpsilon {
		y = h
		res.Grounded = true
	}
	res.Position = mgl64.Vec3{p.X, y, p.Y}
	return res
}
