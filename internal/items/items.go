package items

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// PickupKind is what a pickup grants.
type PickupKind string

const (
	PickupAmmo   PickupKind = "ammo"
	PickupWeapon PickupKind = "weapon"
)

// WeaponDefinition is the immutable tuning of one gun.
type WeaponDefinition struct {
	Name            string  `yaml:"name"`
	FireRate        float64 `yaml:"fire_rate"`
	ClipSize        int     `yaml:"clip_size"`
	StartingReserve int     `yaml:"starting_reserve"`
	ReloadTime      float64 `yaml:"reload_time"`
	BulletDamage    int     `yaml:"bullet_damage"`
	BulletSpeed     float64 `yaml:"bullet_speed"`
	BulletSpread    float64 `yaml:"bullet_spread"`
	BulletLifetime  float64 `yaml:"bullet_lifetime"`
	ChargeSpeed     float64 `yaml:"charge_speed"`
	UltimateDamage  int     `yaml:"ultimate_damage"`
}

// DefaultWeapon returns the starting rifle.
func DefaultWeapon() WeaponDefinition {
	return WeaponDefinition{
		Name:            "Rifle",
		FireRate:        0.12,
		ClipSize:        30,
		StartingReserve: 120,
		ReloadTime:      1,
		BulletDamage:    1,
		BulletSpeed:     40,
		BulletSpread:    1.2,
		BulletLifetime:  0.4,
		ChargeSpeed:     0.5,
		UltimateDamage:  5,
	}
}

// PickupSpec describes what a dropped or placed pickup grants.
type PickupSpec struct {
	Kind    PickupKind `yaml:"kind"`
	Weapon  string     `yaml:"weapon,omitempty"`
	Bullets int        `yaml:"bullets,omitempty"`
}

// Pickup is a spec placed in the world.
type Pickup struct {
	ID        int
	Spec      PickupSpec
	Position  mgl64.Vec3
	Collected bool
}

// LootEntry is one candidate drop with its spawn chance in [0, 1].
type LootEntry struct {
	Name         string     `yaml:"name"`
	SpawnPercent float64    `yaml:"spawn_percent"`
	Pickup       PickupSpec `yaml:"pickup"`
}

// LootTable is an ordered list of candidate drops.
type LootTable struct {
	Entries []LootEntry `yaml:"entries"`
}

// Select picks an entry for the draw r. An entry qualifies when
// r <= SpawnPercent; the scan keeps the lowest percent seen so far but compares
// r against it, so the last qualifying entry in table order is returned.
// This matches the shipped drop behaviour and is not a weighted distribution.
func (t LootTable) Select(r float64) (LootEntry, bool) {
	var picked LootEntry
	found := false
	lowest := 1.0
	for _, e := range t.Entries {
		if r <= e.SpawnPercent && r <= lowest {
			picked = e
			found = true
			lowest = e.SpawnPercent
		}
	}
	return picked, found
}

// Roll draws r from rng and selects an entry.
func (t LootTable) Roll(rng *rand.Rand) (LootEntry, bool) {
	return t.Select(rng.Float64())
}

// Catalog holds the weapon and loot definitions loaded from YAML.
type Catalog struct {
	Weapons    map[string]WeaponDefinition `yaml:"weapons"`
	LootTables map[string]LootTable        `yaml:"loot_tables"`
}

// DefaultCatalog is used when no item file is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Weapons: map[string]WeaponDefinition{"rifle": DefaultWeapon()},
		LootTables: map[string]LootTable{
			"runner": {Entries: []LootEntry{
				{Name: "ammo", SpawnPercent: 0.35, Pickup: PickupSpec{Kind: PickupAmmo, Bullets: 10}},
			}},
		},
	}
}

func validateCatalog(c *Catalog) error {
	var problems []string
	for key, table := range c.LootTables {
		for _, e := range table.Entries {
			if e.SpawnPercent < 0 || e.SpawnPercent > 1 {
				problems = append(problems, fmt.Sprintf("loot table '%s' entry '%s' has spawn_percent %.2f outside [0,1]", key, e.Name, e.SpawnPercent))
			}
			if e.Pickup.Kind == PickupWeapon {
				if _, ok := c.Weapons[e.Pickup.Weapon]; !ok {
					problems = append(problems, fmt.Sprintf("loot table '%s' entry '%s' references unknown weapon '%s'", key, e.Name, e.Pickup.Weapon))
				}
			}
		}
	}
	for key, w := range c.Weapons {
		if w.ClipSize <= 0 {
			problems = append(problems, fmt.Sprintf("weapon '%s' needs a positive clip_size", key))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("item configuration errors:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// LoadCatalog loads weapons and loot tables from a YAML file.
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read item config file: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse item config YAML: %w", err)
	}
	if err := validateCatalog(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustLoadCatalog loads the catalog and panics on error.
func MustLoadCatalog(filename string) *Catalog {
	c, err := LoadCatalog(filename)
	if err != nil {
		panic("Failed to load item config: " + err.Error())
	}
	return c
}

// Weapon returns a weapon definition by key.
func (c *Catalog) Weapon(key string) (WeaponDefinition, error) {
	w, ok := c.Weapons[key]
	if !ok {
		return WeaponDefinition{}, fmt.Errorf("weapon with key '%s' not found", key)
	}
	return w, nil
}

// LootTable returns a loot table by key. A missing key yields an empty table.
func (c *Catalog) LootTable(key string) LootTable {
	return c.LootTables[key]
}
