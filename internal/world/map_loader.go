package world

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
)

// Map characters.
const (
	mapVoid      = ' '
	mapFloor     = '.'
	mapWall      = '#'
	mapStart     = '+'
	mapSpawn     = 'S'
	mapPlacement = '@'
)

// Placement is an enemy placed by the map at start.
type Placement struct {
	Monster  string
	Position mgl64.Vec3
}

// ArenaLayout is an arena described by an ASCII map. Row 0 is the +Z edge;
// the map is centred on the origin.
type ArenaLayout struct {
	Width       int
	Height      int
	TileSize    float64
	Surfaces    []config.SurfaceConfig
	Walls       []config.WallConfig
	PlayerSpawn [3]float64
	SpawnPoints [][3]float64
	Placements  []Placement
	hasStart    bool
}

// LoadArenaMap reads an ASCII arena map. Lines may end with entity
// definitions after two spaces, e.g. "#..@..#  >[monster:charger]"; each
// definition is placed at the next '@' on that line.
func LoadArenaMap(mapPath string, tileSize float64) (*ArenaLayout, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()
	return ParseArenaMap(bufio.NewScanner(file), tileSize)
}

type mapLine struct {
	tiles    string
	monsters []string
}

// ParseArenaMap parses map lines from a scanner.
func ParseArenaMap(scanner *bufio.Scanner, tileSize float64) (*ArenaLayout, error) {
	if tileSize <= 0 {
		tileSize = 1
	}
	var lines []mapLine
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "//") {
			continue
		}
		lines = append(lines, parseMapLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	width := len(lines[0].tiles)
	for i, l := range lines {
		if len(l.tiles) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, len(l.tiles))
		}
	}

	layout := &ArenaLayout{Width: width, Height: len(lines), TileSize: tileSize}
	for row, l := range lines {
		placed := 0
		for col, ch := range l.tiles {
			center := layout.cellCenter(col, row)
			switch ch {
			case mapVoid, mapFloor, mapWall:
			case mapStart:
				if layout.hasStart {
					return nil, fmt.Errorf("line %d: second start position", row+1)
				}
				layout.hasStart = true
				layout.PlayerSpawn = [3]float64(center)
			case mapSpawn:
				layout.SpawnPoints = append(layout.SpawnPoints, [3]float64(center))
			case mapPlacement:
				if placed >= len(l.monsters) {
					return nil, fmt.Errorf("line %d: '@' without a monster definition", row+1)
				}
				layout.Placements = append(layout.Placements, Placement{Monster: l.monsters[placed], Position: center})
				placed++
			default:
				return nil, fmt.Errorf("line %d: unknown map character %q", row+1, ch)
			}
		}
		layout.addRuns(row, l.tiles)
	}
	if !layout.hasStart {
		return nil, fmt.Errorf("map has no start position '+'")
	}
	return layout, nil
}

// parseMapLine splits the tile part from the trailing entity definitions.
func parseMapLine(line string) mapLine {
	out := mapLine{tiles: line}
	sep := strings.Index(line, "  >")
	if sep == -1 {
		return out
	}
	out.tiles = line[:sep]
	for _, def := range strings.Split(line[sep+2:], ",") {
		def = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(def), ">"))
		if strings.HasPrefix(def, "[monster:") && strings.HasSuffix(def, "]") {
			out.monsters = append(out.monsters, strings.TrimSuffix(strings.TrimPrefix(def, "[monster:"), "]"))
		}
	}
	return out
}

func (l *ArenaLayout) cellCenter(col, row int) mgl64.Vec3 {
	x := (float64(col) - float64(l.Width)/2 + 0.5) * l.TileSize
	z := (float64(l.Height)/2 - float64(row) - 0.5) * l.TileSize
	return mgl64.Vec3{x, 0, z}
}

// addRuns merges each horizontal run of solid cells into one floor rectangle
// and each run of walls into one wall block.
func (l *ArenaLayout) addRuns(row int, tiles string) {
	half := l.TileSize / 2
	emit := func(start, end int, wall bool) {
		a, b := l.cellCenter(start, row), l.cellCenter(end-1, row)
		minX, maxX := a[0]-half, b[0]+half
		minZ, maxZ := a[2]-half, a[2]+half
		if wall {
			l.Walls = append(l.Walls, config.WallConfig{
				Name: fmt.Sprintf("wall-%d-%d", row, start),
				MinX: minX, MinZ: minZ, MaxX: maxX, MaxZ: maxZ,
			})
			return
		}
		l.Surfaces = append(l.Surfaces, config.SurfaceConfig{
			Name: fmt.Sprintf("floor-%d-%d", row, start),
			MinX: minX, MinZ: minZ, MaxX: maxX, MaxZ: maxZ,
		})
	}

	runs := func(match func(byte) bool, wall bool) {
		start := -1
		for col := 0; col <= len(tiles); col++ {
			in := col < len(tiles) && match(tiles[col])
			switch {
			case in && start < 0:
				start = col
			case !in && start >= 0:
				emit(start, col, wall)
				start = -1
			}
		}
	}
	runs(func(c byte) bool { return c != mapVoid }, false)
	runs(func(c byte) bool { return c == mapWall }, true)
}

// ApplyTo replaces the arena geometry and spawn points of a.
func (l *ArenaLayout) ApplyTo(a *config.ArenaConfig) {
	a.Surfaces = l.Surfaces
	a.Walls = l.Walls
	a.PlayerSpawn = l.PlayerSpawn
	a.SpawnPoints = l.SpawnPoints
}
