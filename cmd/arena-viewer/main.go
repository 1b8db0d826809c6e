// Command arena-viewer shows an arena layout with its navigation grid. Click
// to place the path start (left) and goal (right) and the viewer draws the
// path the enemies would follow.
package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/logging"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/monster"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

// layoutInfo is one arena the viewer can show: the config arena or a map file.
type layoutInfo struct {
	Key        string
	Arena      *physics.Arena
	Grid       *navigation.Grid
	Spawn      mgl64.Vec3
	Points     []mgl64.Vec3
	Placements []world.Placement
	Err        error
}

type viewer struct {
	layouts     []layoutInfo
	index       int
	sidebarTab  int
	legendLines []string
	showGrid    bool

	start, goal       mgl64.Vec3
	hasStart, hasGoal bool
	path              navigation.Path

	// panel transform of the current frame, used to map clicks back to the world
	originX, originY float64
	scale            float64
	minX, maxZ       float64
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")
	log := logging.New(config.LoggingConfig{Level: cfg.GetLogLevel(), Console: true}, os.Stderr)

	monsters, err := monster.LoadMonsterConfig(cfg.GetEnemiesPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load enemies")
	}

	v := &viewer{
		layouts:     loadLayouts(cfg, agentRadius(monsters), log),
		legendLines: buildLegendLines(monsters),
		showGrid:    true,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Arena Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal().Err(err).Msg("Viewer stopped")
	}
}

func agentRadius(m *monster.MonsterYAMLConfig) float64 {
	r := 0.0
	for _, def := range m.Monsters {
		r = math.Max(r, def.Radius)
	}
	if r == 0 {
		r = 0.5
	}
	return r
}

// loadLayouts builds the config arena followed by every .map file in the
// assets directory.
func loadLayouts(cfg *config.Config, radius float64, log zerolog.Logger) []layoutInfo {
	var out []layoutInfo

	arena := physics.NewArena(cfg.Surfaces(), cfg.Walls())
	base := layoutInfo{
		Key:   "config.yaml",
		Arena: arena,
		Grid:  navigation.NewGrid(arena, cfg.GetCellSize(), radius),
		Spawn: cfg.GetPlayerSpawn(),
	}
	base.Points = append(base.Points, cfg.GetSpawnPoints()...)
	out = append(out, base)

	files, err := filepath.Glob(cfg.AssetPath(filepath.Join("assets", "*.map")))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list map files")
	}
	sort.Strings(files)
	for _, f := range files {
		info := layoutInfo{Key: filepath.Base(f)}
		layout, err := world.LoadArenaMap(f, cfg.Arena.TileSize)
		if err != nil {
			info.Err = err
			out = append(out, info)
			continue
		}
		local := *cfg
		layout.ApplyTo(&local.Arena)
		info.Arena = physics.NewArena(local.Surfaces(), local.Walls())
		info.Grid = navigation.NewGrid(info.Arena, local.GetCellSize(), radius)
		info.Spawn = local.GetPlayerSpawn()
		info.Points = local.GetSpawnPoints()
		info.Placements = layout.Placements
		out = append(out, info)
	}
	return out
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.showGrid = !v.showGrid
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.index = (v.index + 1) % len(v.layouts)
		v.clearPath()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.index--
		if v.index < 0 {
			v.index = len(v.layouts) - 1
		}
		v.clearPath()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.clearPath()
	}

	if v.scale > 0 {
		mx, my := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			v.start, v.hasStart = v.screenToWorld(mx, my), true
			v.updatePath()
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			v.goal, v.hasGoal = v.screenToWorld(mx, my), true
			v.updatePath()
		}
	}
	return nil
}

func (v *viewer) clearPath() {
	v.hasStart, v.hasGoal = false, false
	v.path = navigation.Path{}
}

func (v *viewer) updatePath() {
	l := v.layouts[v.index]
	if !v.hasStart || !v.hasGoal || l.Grid == nil {
		return
	}
	v.path = l.Grid.FindPath(v.start, v.goal)
}

func (v *viewer) screenToWorld(sx, sy int) mgl64.Vec3 {
	x := (float64(sx)-v.originX)/v.scale + v.minX
	z := v.maxZ - (float64(sy)-v.originY)/v.scale
	p := mgl64.Vec3{x, 0, z}
	if l := v.layouts[v.index]; l.Arena != nil {
		if h, ok := l.Arena.GroundHeight(x, z); ok {
			p[1] = h
		}
	}
	return p
}

func (v *viewer) worldToScreen(p mgl64.Vec3) (float32, float32) {
	return float32(v.originX + (p[0]-v.minX)*v.scale), float32(v.originY + (v.maxZ-p[2])*v.scale)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	l := v.layouts[v.index]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", l.Key, l.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	mapAreaX := padding
	mapAreaY := padding
	sidebarX := mapAreaX + mapAreaW + padding
	sidebarY := padding

	v.drawArenaPanel(screen, l, mapAreaX, mapAreaY, mapAreaW, mapAreaH)
	v.drawSidebar(screen, l, sidebarX, sidebarY, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) drawArenaPanel(screen *ebiten.Image, l layoutInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{22, 22, 30, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	minX, minZ, maxX, maxZ := l.Arena.Bounds()
	spanX, spanZ := maxX-minX, maxZ-minZ
	if spanX <= 0 || spanZ <= 0 {
		return
	}
	v.scale = math.Min(float64(w-16)/spanX, float64(h-16)/spanZ)
	v.minX, v.maxZ = minX, maxZ
	v.originX = float64(x) + (float64(w)-spanX*v.scale)/2
	v.originY = float64(y) + (float64(h)-spanZ*v.scale)/2

	for _, s := range l.Arena.Surfaces() {
		v.fillWorldRect(screen, s.MinX, s.MinZ, s.MaxX, s.MaxZ, surfaceColor(s))
	}
	for _, wall := range l.Arena.Walls() {
		v.fillWorldRect(screen, wall.MinX, wall.MinZ, wall.MaxX, wall.MaxZ, color.RGBA{120, 110, 96, 255})
	}

	if v.showGrid && l.Grid != nil {
		gw, gh := l.Grid.Size()
		half := l.Grid.CellSize() / 2
		for cz := 0; cz < gh; cz++ {
			for cx := 0; cx < gw; cx++ {
				c := navigation.Cell{X: cx, Z: cz}
				if l.Grid.Walkable(c) {
					continue
				}
				p := l.Grid.CellCenter(c)
				v.fillWorldRect(screen, p[0]-half, p[2]-half, p[0]+half, p[2]+half, color.RGBA{160, 40, 40, 70})
			}
		}
	}

	v.drawMarker(screen, l.Spawn, color.RGBA{0, 220, 255, 255}, 6)
	for _, p := range l.Points {
		v.drawMarker(screen, p, color.RGBA{255, 220, 0, 255}, 5)
	}
	for _, p := range l.Placements {
		v.drawMarker(screen, p.Position, color.RGBA{230, 60, 60, 255}, 5)
		sx, sy := v.worldToScreen(p.Position)
		ebitenutil.DebugPrintAt(screen, monsterLetterForKey(p.Monster), int(sx)+6, int(sy)-8)
	}

	v.drawPath(screen)
}

func (v *viewer) drawPath(screen *ebiten.Image) {
	if v.hasStart {
		v.drawMarker(screen, v.start, color.RGBA{80, 255, 120, 255}, 4)
	}
	if v.hasGoal {
		v.drawMarker(screen, v.goal, color.RGBA{255, 120, 255, 255}, 4)
	}
	clr := color.RGBA{80, 255, 120, 255}
	switch v.path.Status {
	case navigation.StatusPartial:
		clr = color.RGBA{255, 200, 60, 255}
	case navigation.StatusInvalid:
		return
	}
	for i := 1; i < len(v.path.Corners); i++ {
		x0, y0 := v.worldToScreen(v.path.Corners[i-1])
		x1, y1 := v.worldToScreen(v.path.Corners[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
}

func (v *viewer) drawMarker(screen *ebiten.Image, p mgl64.Vec3, clr color.RGBA, radius float32) {
	sx, sy := v.worldToScreen(p)
	vector.DrawFilledCircle(screen, sx, sy, radius, clr, true)
}

func (v *viewer) fillWorldRect(screen *ebiten.Image, minX, minZ, maxX, maxZ float64, clr color.RGBA) {
	x0, y0 := v.worldToScreen(mgl64.Vec3{minX, 0, maxZ})
	x1, y1 := v.worldToScreen(mgl64.Vec3{maxX, 0, minZ})
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, clr, false)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, l layoutInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, v.sidebarTab)
	row := y + tabHeight + 12

	if v.sidebarTab == tabLegend {
		drawLegendList(screen, x, row, v.legendLines)
		return
	}

	gw, gh := l.Grid.Size()
	blocked := 0
	for cz := 0; cz < gh; cz++ {
		for cx := 0; cx < gw; cx++ {
			if !l.Grid.Walkable(navigation.Cell{X: cx, Z: cz}) {
				blocked++
			}
		}
	}
	stats := []string{
		fmt.Sprintf("Layout: %s (%d/%d)", l.Key, v.index+1, len(v.layouts)),
		fmt.Sprintf("Surfaces: %d  Walls: %d", len(l.Arena.Surfaces()), len(l.Arena.Walls())),
		fmt.Sprintf("Grid: %dx%d @ %.2f", gw, gh, l.Grid.CellSize()),
		fmt.Sprintf("Blocked cells: %d", blocked),
		fmt.Sprintf("Spawn points: %d", len(l.Points)),
		fmt.Sprintf("Placed enemies: %d", len(l.Placements)),
	}
	if v.hasStart && v.hasGoal {
		stats = append(stats,
			"",
			fmt.Sprintf("Path: %s", v.path.Status),
			fmt.Sprintf("Corners: %d  Length: %.2f", len(v.path.Corners), v.path.Length()),
			fmt.Sprintf("Direct: %v", v.path.Direct()),
		)
	}
	for _, line := range stats {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	help := []string{
		"Left click: path start",
		"Right click: path goal",
		"A/D: switch layout  G: grid",
		"C: clear path  Esc: quit",
	}
	for _, line := range help {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func drawLegendList(screen *ebiten.Image, x, y int, lines []string) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+10, y+i*14)
	}
}

// buildLegendLines lists marker colors and the letter used for each enemy.
func buildLegendLines(mc *monster.MonsterYAMLConfig) []string {
	lines := []string{
		"Cyan: player start",
		"Yellow: spawn points",
		"Red: placed enemies",
		"Dark red cells: not walkable",
		"Green path: complete",
		"Orange path: partial",
		"",
		"Enemies:",
	}
	keys := make([]string, 0, len(mc.Monsters))
	for k := range mc.Monsters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		def := mc.Monsters[k]
		lines = append(lines, fmt.Sprintf(" %s  %s (%s, r=%.1f)", monsterLetterForKey(k), def.Name, def.Archetype, def.Radius))
	}
	return lines
}

func monsterLetterForKey(key string) string {
	if key == "" {
		return "?"
	}
	return strings.ToUpper(key[:1])
}

func surfaceColor(s physics.Surface) color.RGBA {
	shade := uint8(math.Min(40+(s.Height+s.Rise/2)*20, 120))
	return color.RGBA{shade, shade + 6, shade + 14, 255}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
