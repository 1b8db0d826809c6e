package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
)

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig("../../config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.GetTickRate())
	assert.Equal(t, 5, cfg.Player.MaxHealth())
	assert.Equal(t, "rifle", cfg.Player.StartingWeapon)
	assert.Equal(t, 2.7, cfg.Motor.DashMultiplier)
	assert.Equal(t, 0.4, cfg.Motor.DashCooldown)
	assert.Len(t, cfg.GetSpawnPoints(), 4)
	assert.Equal(t, filepath.Join("../..", "assets/enemies.yaml"), cfg.GetEnemiesPath())
	assert.Equal(t, filepath.Join("../..", "assets/items.yaml"), cfg.GetItemsPath())

	_, err = os.Stat(cfg.GetEnemiesPath())
	assert.NoError(t, err)

	surfaces := cfg.Surfaces()
	require.Len(t, surfaces, 3)
	assert.Equal(t, physics.AxisX, surfaces[1].Axis)
	assert.Equal(t, 2.0, surfaces[1].Rise)
	assert.Len(t, cfg.Walls(), 6)
}

func TestDefaultsForZeroValues(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 60, cfg.GetTickRate())
	assert.InDelta(t, 1.0/60, cfg.GetTickDelta(), 1e-12)
	assert.Equal(t, 1.0, cfg.GetTimeScale())
	assert.Equal(t, 0.5, cfg.GetCellSize())
	assert.Equal(t, "memory", cfg.Recorder.GetBackend())
	assert.Equal(t, 100, cfg.Recorder.GetBatchSize())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, 1280, cfg.GetScreenWidth())
	assert.Equal(t, "assets/enemies.yaml", cfg.GetEnemiesPath())
	assert.Equal(t, mgl64.Vec3{}, cfg.GetPlayerSpawn())
}

func TestParseRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty surface", "arena:\n  surfaces:\n    - { name: a, min_x: 1, min_z: 0, max_x: 1, max_z: 5 }\n"},
		{"bad axis", "arena:\n  surfaces:\n    - { name: a, min_x: 0, min_z: 0, max_x: 1, max_z: 1, axis: y }\n"},
		{"empty wall", "arena:\n  walls:\n    - { name: w, min_x: 0, min_z: 2, max_x: 1, max_z: 1 }\n"},
		{"wave without monster", "spawner:\n  waves:\n    - { amount: 2 }\n"},
		{"negative amount", "spawner:\n  waves:\n    - { monster: runner, amount: -1 }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Spawner.Waves)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
