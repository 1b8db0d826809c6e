package navigation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
)

// Geometry is what the grid bakes against and string-pulls with.
type Geometry interface {
	Walkable(p mgl64.Vec3, radius float64) bool
	LineOfSight(from, to mgl64.Vec3, radius float64) bool
	GroundHeight(x, z float64) (float64, bool)
	Bounds() (minX, minZ, maxX, maxZ float64)
}

// Cell is a grid coordinate.
type Cell struct {
	X int
	Z int
}

// Grid is an 8-connected walkability grid with an A* search.
type Grid struct {
	geo         Geometry
	cellSize    float64
	agentRadius float64
	minX, minZ  float64
	width       int
	height      int
	walkable    []bool

	// MaxNodes caps how many cells one search may expand.
	MaxNodes int

	scratch pathScratch
}

// NewGrid bakes walkability for agents of the given radius.
func NewGrid(geo Geometry, cellSize, agentRadius float64) *Grid {
	if cellSize <= 0 {
		cellSize = 0.5
	}
	minX, minZ, maxX, maxZ := geo.Bounds()
	g := &Grid{
		geo:         geo,
		cellSize:    cellSize,
		agentRadius: agentRadius,
		minX:        minX,
		minZ:        minZ,
		width:       int(math.Ceil((maxX - minX) / cellSize)),
		height:      int(math.Ceil((maxZ - minZ) / cellSize)),
		MaxNodes:    4000,
	}
	if g.width < 1 {
		g.width = 1
	}
	if g.height < 1 {
		g.height = 1
	}
	g.walkable = make([]bool, g.width*g.height)
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			g.walkable[z*g.width+x] = geo.Walkable(g.center(Cell{x, z}), agentRadius)
		}
	}
	return g
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// CellAt returns the cell containing p.
func (g *Grid) CellAt(p mgl64.Vec3) Cell {
	return Cell{
		X: int(math.Floor((p[0] - g.minX) / g.cellSize)),
		Z: int(math.Floor((p[2] - g.minZ) / g.cellSize)),
	}
}

// Walkable reports whether c is inside the grid and clear.
func (g *Grid) Walkable(c Cell) bool {
	idx := g.index(c)
	return idx >= 0 && g.walkable[idx]
}

func (g *Grid) index(c Cell) int {
	if c.X < 0 || c.Z < 0 || c.X >= g.width || c.Z >= g.height {
		return -1
	}
	return c.Z*g.width + c.X
}

func (g *Grid) cell(idx int) Cell {
	return Cell{X: idx % g.width, Z: idx / g.width}
}

// CellCenter returns the ground point at the middle of c.
func (g *Grid) CellCenter(c Cell) mgl64.Vec3 { return g.center(c) }

func (g *Grid) center(c Cell) mgl64.Vec3 {
	x := g.minX + (float64(c.X)+0.5)*g.cellSize
	z := g.minZ + (float64(c.Z)+0.5)*g.cellSize
	y, _ := g.geo.GroundHeight(x, z)
	return mgl64.Vec3{x, y, z}
}

func (g *Grid) snap(p mgl64.Vec3) mgl64.Vec3 {
	if y, ok := g.geo.GroundHeight(p[0], p[2]); ok {
		p[1] = y
	}
	return p
}

// FindPath returns a corner path from -> to. A start outside the walkable
// grid yields StatusInvalid; an unreachable destination yields a partial path
// to the closest reachable cell.
func (g *Grid) FindPath(from, to mgl64.Vec3) Path {
	from, to = g.snap(from), g.snap(to)
	goal := g.CellAt(to)
	start, ok := g.nearestWalkable(g.CellAt(from), 2)
	if !ok {
		return Path{Status: StatusInvalid}
	}
	goalOK := g.Walkable(goal) && g.geo.Walkable(to, g.agentRadius)
	if goalOK && g.geo.LineOfSight(from, to, g.agentRadius) {
		return Path{Corners: []mgl64.Vec3{from, to}, Status: StatusComplete}
	}

	cells, reached := g.search(start, goal, goalOK)
	pts := make([]mgl64.Vec3, 0, len(cells)+1)
	pts = append(pts, from)
	for _, c := range cells[1:] {
		pts = append(pts, g.center(c))
	}
	status := StatusPartial
	if reached {
		status = StatusComplete
		if len(pts) > 1 {
			pts[len(pts)-1] = to
		} else {
			pts = append(pts, to)
		}
	}
	return Path{Corners: g.stringPull(pts), Status: status}
}

// nearestWalkable finds the closest walkable cell within rings of c, so an
// agent hugging a wall still has a start cell.
func (g *Grid) nearestWalkable(c Cell, rings int) (Cell, bool) {
	if g.Walkable(c) {
		return c, true
	}
	for r := 1; r <= rings; r++ {
		best, bestD := Cell{}, math.Inf(1)
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if mathutil.IntMax(mathutil.IntAbs(dx), mathutil.IntAbs(dz)) != r {
					continue
				}
				n := Cell{c.X + dx, c.Z + dz}
				if d := float64(dx*dx + dz*dz); g.Walkable(n) && d < bestD {
					best, bestD = n, d
				}
			}
		}
		if !math.IsInf(bestD, 1) {
			return best, true
		}
	}
	return Cell{}, false
}

// stringPull drops every intermediate point that the next visible point
// makes redundant.
func (g *Grid) stringPull(pts []mgl64.Vec3) []mgl64.Vec3 {
	if len(pts) <= 2 {
		return pts
	}
	out := []mgl64.Vec3{pts[0]}
	i := 0
	for i < len(pts)-1 {
		j := len(pts) - 1
		for j > i+1 && !g.geo.LineOfSight(pts[i], pts[j], g.agentRadius) {
			j--
		}
		out = append(out, pts[j])
		i = j
	}
	return out
}

var neighbours = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dz := math.Abs(float64(a.Z - b.Z))
	return math.Max(dx, dz) + (math.Sqrt2-1)*math.Min(dx, dz)
}

// search runs A* and returns the cell chain from start to the goal, or to the
// expanded cell closest to the goal when the goal was not reached.
func (g *Grid) search(start, goal Cell, goalOK bool) ([]Cell, bool) {
	ps := &g.scratch
	ps.prepare(g.width * g.height)

	startIdx := g.index(start)
	ps.gScore[startIdx] = 0
	ps.heap.push(gridNode{idx: startIdx, g: 0, f: octile(start, goal)})

	closest, closestH := startIdx, octile(start, goal)
	searched := 0
	for len(ps.heap.nodes) > 0 && searched < g.MaxNodes {
		current, ok := ps.heap.pop()
		if !ok {
			break
		}
		if ps.closed[current.idx] || current.g > ps.gScore[current.idx] {
			continue
		}
		cc := g.cell(current.idx)
		if goalOK && cc == goal {
			return ps.reconstruct(g, current.idx), true
		}
		ps.closed[current.idx] = true
		searched++
		if h := octile(cc, goal); h < closestH {
			closest, closestH = current.idx, h
		}

		for _, d := range neighbours {
			n := Cell{X: cc.X + d[0], Z: cc.Z + d[1]}
			nidx := g.index(n)
			if nidx < 0 || ps.closed[nidx] || !g.walkable[nidx] {
				continue
			}
			step := 1.0
			if d[0] != 0 && d[1] != 0 {
				// no corner cutting
				if !g.Walkable(Cell{cc.X + d[0], cc.Z}) || !g.Walkable(Cell{cc.X, cc.Z + d[1]}) {
					continue
				}
				step = math.Sqrt2
			}
			tentative := ps.gScore[current.idx] + step
			if tentative < ps.gScore[nidx] {
				ps.cameFrom[nidx] = current.idx
				ps.gScore[nidx] = tentative
				ps.heap.push(gridNode{idx: nidx, g: tentative, f: tentative + octile(n, goal)})
			}
		}
	}
	return ps.reconstruct(g, closest), false
}
