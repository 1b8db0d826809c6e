package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/motor"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/player"
)

// Config holds all simulation configuration values
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Player     player.Config    `yaml:"player"`
	Motor      motor.Config     `yaml:"motor"`
	Arena      ArenaConfig      `yaml:"arena"`
	Navigation NavigationConfig `yaml:"navigation"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Assets     AssetsConfig     `yaml:"assets"`
	Recorder   RecorderConfig   `yaml:"recorder"`
	Logging    LoggingConfig    `yaml:"logging"`
	Display    DisplayConfig    `yaml:"display"`

	baseDir string
}

type SimulationConfig struct {
	TickRate           int     `yaml:"tick_rate"`
	TimeScale          float64 `yaml:"time_scale"`
	Seed               int64   `yaml:"seed"`
	ParallelPerception bool    `yaml:"parallel_perception"`
	TickBudgetMS       float64 `yaml:"tick_budget_ms"`
}

// SurfaceConfig is a walkable rectangle. Rise and axis make it a ramp.
type SurfaceConfig struct {
	Name   string  `yaml:"name"`
	MinX   float64 `yaml:"min_x"`
	MinZ   float64 `yaml:"min_z"`
	MaxX   float64 `yaml:"max_x"`
	MaxZ   float64 `yaml:"max_z"`
	Height float64 `yaml:"height"`
	Rise   float64 `yaml:"rise"`
	Axis   string  `yaml:"axis"`
}

type WallConfig struct {
	Name string  `yaml:"name"`
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// ArenaConfig is the level. When Map is set the ASCII map replaces the
// geometry and spawn points listed here.
type ArenaConfig struct {
	Map         string          `yaml:"map"`
	TileSize    float64         `yaml:"tile_size"`
	Surfaces    []SurfaceConfig `yaml:"surfaces"`
	Walls       []WallConfig    `yaml:"walls"`
	PlayerSpawn [3]float64      `yaml:"player_spawn"`
	SpawnPoints [][3]float64    `yaml:"spawn_points"`
}

type NavigationConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// WaveConfig spawns Amount enemies of one archetype: the first after Delay,
// then one every Interval.
type WaveConfig struct {
	Monster  string  `yaml:"monster"`
	Delay    float64 `yaml:"delay"`
	Interval float64 `yaml:"interval"`
	Amount   int     `yaml:"amount"`
}

type SpawnerConfig struct {
	Waves []WaveConfig `yaml:"waves"`
}

type AssetsConfig struct {
	Enemies string `yaml:"enemies"`
	Items   string `yaml:"items"`
}

type RecorderConfig struct {
	Backend   string `yaml:"backend"`
	DSN       string `yaml:"dsn"`
	BatchSize int    `yaml:"batch_size"`
}

// GetBackend returns the lower-cased backend name, "memory" when unset.
func (r RecorderConfig) GetBackend() string {
	if r.Backend == "" {
		return "memory"
	}
	return strings.ToLower(r.Backend)
}

func (r RecorderConfig) GetBatchSize() int {
	if r.BatchSize <= 0 {
		return 100
	}
	return r.BatchSize
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type DisplayConfig struct {
	ScreenWidth   int     `yaml:"screen_width"`
	ScreenHeight  int     `yaml:"screen_height"`
	WindowTitle   string  `yaml:"window_title"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

// LoadConfig reads and validates a YAML configuration file. Asset paths in the
// file are resolved relative to its directory.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", filename, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	cfg.baseDir = filepath.Dir(filename)
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a small walled arena with one runner wave.
func Default() *Config {
	return &Config{
		Arena: ArenaConfig{
			Surfaces: []SurfaceConfig{{Name: "floor", MinX: -15, MinZ: -15, MaxX: 15, MaxZ: 15}},
			Walls: []WallConfig{
				{Name: "north", MinX: -15, MinZ: 14, MaxX: 15, MaxZ: 15},
				{Name: "south", MinX: -15, MinZ: -15, MaxX: 15, MaxZ: -14},
				{Name: "east", MinX: 14, MinZ: -15, MaxX: 15, MaxZ: 15},
				{Name: "west", MinX: -15, MinZ: -15, MaxX: -14, MaxZ: 15},
			},
			SpawnPoints: [][3]float64{{-10, 0, 10}, {10, 0, 10}},
		},
		Spawner: SpawnerConfig{Waves: []WaveConfig{{Monster: "runner", Delay: 1, Interval: 2, Amount: 4}}},
	}
}

// Validate checks geometry and spawner values.
func (c *Config) Validate() error {
	for i, s := range c.Arena.Surfaces {
		if s.MinX >= s.MaxX || s.MinZ >= s.MaxZ {
			return fmt.Errorf("surface %d (%s): empty rectangle", i, s.Name)
		}
		switch strings.ToLower(s.Axis) {
		case "", "x", "z":
		default:
			return fmt.Errorf("surface %d (%s): unknown slope axis %q", i, s.Name, s.Axis)
		}
	}
	for i, w := range c.Arena.Walls {
		if w.MinX >= w.MaxX || w.MinZ >= w.MaxZ {
			return fmt.Errorf("wall %d (%s): empty rectangle", i, w.Name)
		}
	}
	for i, w := range c.Spawner.Waves {
		if w.Monster == "" {
			return fmt.Errorf("wave %d: missing monster", i)
		}
		if w.Amount < 0 || w.Delay < 0 || w.Interval < 0 {
			return fmt.Errorf("wave %d (%s): negative timing or amount", i, w.Monster)
		}
	}
	if c.Simulation.TimeScale < 0 {
		return fmt.Errorf("simulation: negative time scale")
	}
	return nil
}

// AssetPath resolves p against the config file directory.
func (c *Config) AssetPath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func (c *Config) GetEnemiesPath() string {
	if c.Assets.Enemies == "" {
		return c.AssetPath("assets/enemies.yaml")
	}
	return c.AssetPath(c.Assets.Enemies)
}

func (c *Config) GetItemsPath() string {
	if c.Assets.Items == "" {
		return c.AssetPath("assets/items.yaml")
	}
	return c.AssetPath(c.Assets.Items)
}

func (c *Config) GetTickRate() int {
	if c.Simulation.TickRate <= 0 {
		return 60
	}
	return c.Simulation.TickRate
}

// GetTickDelta is the fixed step in seconds.
func (c *Config) GetTickDelta() float64 {
	return 1 / float64(c.GetTickRate())
}

func (c *Config) GetTimeScale() float64 {
	if c.Simulation.TimeScale == 0 {
		return 1
	}
	return c.Simulation.TimeScale
}

func (c *Config) GetCellSize() float64 {
	if c.Navigation.CellSize <= 0 {
		return 0.5
	}
	return c.Navigation.CellSize
}

func (c *Config) GetPlayerSpawn() mgl64.Vec3 {
	return mgl64.Vec3(c.Arena.PlayerSpawn)
}

func (c *Config) GetSpawnPoints() []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(c.Arena.SpawnPoints))
	for i, p := range c.Arena.SpawnPoints {
		points[i] = mgl64.Vec3(p)
	}
	return points
}

// Surfaces converts the configured surfaces for the physics arena.
func (c *Config) Surfaces() []physics.Surface {
	out := make([]physics.Surface, len(c.Arena.Surfaces))
	for i, s := range c.Arena.Surfaces {
		axis := physics.AxisNone
		switch strings.ToLower(s.Axis) {
		case "x":
			axis = physics.AxisX
		case "z":
			axis = physics.AxisZ
		}
		out[i] = physics.Surface{
			Name:   s.Name,
			MinX:   s.MinX,
			MinZ:   s.MinZ,
			MaxX:   s.MaxX,
			MaxZ:   s.MaxZ,
			Height: s.Height,
			Rise:   s.Rise,
			Axis:   axis,
		}
	}
	return out
}

// Walls converts the configured walls for the physics arena.
func (c *Config) Walls() []physics.Wall {
	out := make([]physics.Wall, len(c.Arena.Walls))
	for i, w := range c.Arena.Walls {
		out[i] = physics.Wall{Name: w.Name, MinX: w.MinX, MinZ: w.MinZ, MaxX: w.MaxX, MaxZ: w.MaxZ}
	}
	return out
}

func (c *Config) GetLogLevel() string {
	if c.Logging.Level == "" {
		return "info"
	}
	return c.Logging.Level
}

func (c *Config) GetScreenWidth() int {
	if c.Display.ScreenWidth <= 0 {
		return 1280
	}
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	if c.Display.ScreenHeight <= 0 {
		return 720
	}
	return c.Display.ScreenHeight
}

func (c *Config) GetWindowTitle() string {
	if c.Display.WindowTitle == "" {
		return "Arena"
	}
	return c.Display.WindowTitle
}

func (c *Config) GetPixelsPerUnit() float64 {
	if c.Display.PixelsPerUnit <= 0 {
		return 20
	}
	return c.Display.PixelsPerUnit
}
