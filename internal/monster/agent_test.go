package monster

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
)

func TestAgentFollowsCorners(t *testing.T) {
	a := NewAgent(openField, mgl64.Vec3{}, 2, 0.5)
	a.SetPath(navigation.Path{
		Corners: []mgl64.Vec3{{0, 0, 0}, {3, 0, 0}, {3, 0, 4}},
		Status:  navigation.StatusComplete,
	})
	if got := a.RemainingDistance(); got != 7 {
		t.Fatalf("RemainingDistance = %f, want 7", got)
	}

	a.Step(2) // 4 units: past the first corner
	if a.Position != (mgl64.Vec3{3, 0, 1}) {
		t.Errorf("Position = %v, want (3,0,1)", a.Position)
	}
	if got := a.RemainingDistance(); got != 3 {
		t.Errorf("RemainingDistance = %f, want 3", got)
	}

	a.Step(10)
	if a.HasPath() {
		t.Error("path should be consumed")
	}
	if a.Position != (mgl64.Vec3{3, 0, 4}) {
		t.Errorf("agent overshot: %v", a.Position)
	}
	if a.RemainingDistance() != 0 {
		t.Error("no remaining distance once arrived")
	}
}

func TestAgentInvalidDestinationStops(t *testing.T) {
	invalid := navigation.PathFinderFunc(func(from, to mgl64.Vec3) navigation.Path {
		return navigation.Path{Status: navigation.StatusInvalid}
	})
	a := NewAgent(invalid, mgl64.Vec3{}, 2, 0.5)
	if a.SetDestination(mgl64.Vec3{5, 0, 0}) {
		t.Error("SetDestination should fail without a path")
	}
	a.Step(1)
	if a.Position != (mgl64.Vec3{}) || a.Velocity() != (mgl64.Vec3{}) {
		t.Error("agent without a path must not move")
	}
}

func TestAgentVelocity(t *testing.T) {
	a := NewAgent(openField, mgl64.Vec3{}, 4, 0.5)
	a.SetDestination(mgl64.Vec3{10, 0, 0})
	a.Step(0.5)
	if v := a.Velocity(); v[0] != 4 {
		t.Errorf("Velocity = %v, want 4 along x", v)
	}
}

func TestMonsterConfigDefaults(t *testing.T) {
	brute := def(t, "brute")
	if brute.PunchDelay != 0.37 || brute.RepathInterval != 0.15 {
		t.Errorf("brute should inherit runner timings, got %+v", brute)
	}
	if brute.AttackDistance != 2.2 {
		t.Errorf("explicit value overridden: %v", brute.AttackDistance)
	}
	charger := def(t, "charger")
	if charger.SprintSpeed != 16 || charger.ExplosionDamage != 100 {
		t.Errorf("unexpected charger tuning: %+v", charger)
	}
	if _, err := testMonsters.GetMonsterByKey("missing"); err == nil {
		t.Error("expected error for missing key")
	}
	keys := testMonsters.GetAllMonsterKeys()
	if len(keys) != 3 || keys[0] != "brute" {
		t.Errorf("keys = %v", keys)
	}
}

func TestValidateMonsterConfiguration(t *testing.T) {
	bad := &MonsterYAMLConfig{Monsters: map[string]MonsterDefinition{
		"ghost":   {Archetype: "ghost"},
		"charger": {Archetype: ArchetypeCharger, MinChargeDistance: 200},
	}}
	if err := validateMonsterConfiguration(bad); err == nil {
		t.Error("expected validation errors")
	}
	if err := validateMonsterConfiguration(DefaultMonsterConfig()); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
