package monster

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// MonsterDefinition holds the tuning of one enemy type from YAML. Distances
// named *_distance are compared against squared distances.
type MonsterDefinition struct {
	Name      string    `yaml:"name"`
	Archetype Archetype `yaml:"archetype"`
	Health    int       `yaml:"health"`
	Radius    float64   `yaml:"radius"`
	MoveSpeed float64   `yaml:"move_speed"`
	LootTable string    `yaml:"loot_table"`

	RepathInterval float64 `yaml:"repath_interval"`
	AttackSpeed    float64 `yaml:"attack_speed"`

	// Runner
	AttackDistance float64 `yaml:"attack_distance"`
	AttackDamage   int     `yaml:"attack_damage"`
	PunchDelay     float64 `yaml:"punch_delay"`
	LeadTime       float64 `yaml:"lead_time"`
	LeadDistance   float64 `yaml:"lead_distance"`

	// Charger
	SprintSpeed       float64 `yaml:"sprint_speed"`
	MinChargeDistance float64 `yaml:"min_charge_distance"`
	MaxChargeDistance float64 `yaml:"max_charge_distance"`
	ContactDistance   float64 `yaml:"contact_distance"`
	ExplosionDamage   int     `yaml:"explosion_damage"`
	ContactDamage     int     `yaml:"contact_damage"`
	RetargetProgress  float64 `yaml:"retarget_progress"`
	RetargetOffset    float64 `yaml:"retarget_offset"`
	ChargeEndDistance float64 `yaml:"charge_end_distance"`
	MaxChargeTime     float64 `yaml:"max_charge_time"`
}

// DefaultRunner returns the shipped Runner tuning.
func DefaultRunner() MonsterDefinition {
	return MonsterDefinition{
		Name:           "Runner",
		Archetype:      ArchetypeRunner,
		Health:         2,
		Radius:         0.4,
		MoveSpeed:      4.5,
		LootTable:      "runner",
		RepathInterval: 0.15,
		AttackSpeed:    1,
		AttackDistance: 1.8,
		AttackDamage:   1,
		PunchDelay:     0.37,
		LeadTime:       0.2,
		LeadDistance:   0.25,
	}
}

// DefaultCharger returns the shipped Charger tuning.
func DefaultCharger() MonsterDefinition {
	return MonsterDefinition{
		Name:              "Charger",
		Archetype:         ArchetypeCharger,
		Health:            3,
		Radius:            0.5,
		MoveSpeed:         3.7,
		RepathInterval:    0.25,
		AttackSpeed:       2,
		SprintSpeed:       16,
		MinChargeDistance: 30,
		MaxChargeDistance: 140,
		ContactDistance:   1.4,
		ExplosionDamage:   100,
		ContactDamage:     1,
		RetargetProgress:  0.5,
		RetargetOffset:    2.3,
		ChargeEndDistance: 0.1,
		MaxChargeTime:     3,
	}
}

// WithDefaults fills zero fields from the archetype's shipped tuning.
func (d MonsterDefinition) WithDefaults() MonsterDefinition {
	var base MonsterDefinition
	switch d.Archetype {
	case ArchetypeCharger:
		base = DefaultCharger()
	default:
		base = DefaultRunner()
		d.Archetype = ArchetypeRunner
	}
	setF := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setI := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	if d.Name == "" {
		d.Name = base.Name
	}
	if d.LootTable == "" {
		d.LootTable = base.LootTable
	}
	setI(&d.Health, base.Health)
	setF(&d.Radius, base.Radius)
	setF(&d.MoveSpeed, base.MoveSpeed)
	setF(&d.RepathInterval, base.RepathInterval)
	setF(&d.AttackSpeed, base.AttackSpeed)
	setF(&d.AttackDistance, base.AttackDistance)
	setI(&d.AttackDamage, base.AttackDamage)
	setF(&d.PunchDelay, base.PunchDelay)
	setF(&d.LeadTime, base.LeadTime)
	setF(&d.LeadDistance, base.LeadDistance)
	setF(&d.SprintSpeed, base.SprintSpeed)
	setF(&d.MinChargeDistance, base.MinChargeDistance)
	setF(&d.MaxChargeDistance, base.MaxChargeDistance)
	setF(&d.ContactDistance, base.ContactDistance)
	setI(&d.ExplosionDamage, base.ExplosionDamage)
	setI(&d.ContactDamage, base.ContactDamage)
	setF(&d.RetargetProgress, base.RetargetProgress)
	setF(&d.RetargetOffset, base.RetargetOffset)
	setF(&d.ChargeEndDistance, base.ChargeEndDistance)
	setF(&d.MaxChargeTime, base.MaxChargeTime)
	return d
}

// MonsterYAMLConfig holds every enemy definition from YAML.
type MonsterYAMLConfig struct {
	Monsters map[string]MonsterDefinition `yaml:"monsters"`
}

// DefaultMonsterConfig is used when no enemy file is configured.
func DefaultMonsterConfig() *MonsterYAMLConfig {
	return &MonsterYAMLConfig{Monsters: map[string]MonsterDefinition{
		"runner":  DefaultRunner(),
		"charger": DefaultCharger(),
	}}
}

func validateMonsterConfiguration(config *MonsterYAMLConfig) error {
	var problems []string
	for key, def := range config.Monsters {
		switch def.Archetype {
		case ArchetypeRunner, ArchetypeCharger:
		default:
			problems = append(problems, fmt.Sprintf("monster '%s' has unknown archetype '%s'", key, def.Archetype))
			continue
		}
		d := def.WithDefaults()
		if d.Archetype == ArchetypeCharger && d.MinChargeDistance >= d.MaxChargeDistance {
			problems = append(problems, fmt.Sprintf("monster '%s' charge window min %.1f must be below max %.1f", key, d.MinChargeDistance, d.MaxChargeDistance))
		}
		if d.RetargetProgress < 0 || d.RetargetProgress > 1 {
			problems = append(problems, fmt.Sprintf("monster '%s' retarget_progress must be within [0,1]", key))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("monster configuration errors:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// LoadMonsterConfig loads enemy definitions from a YAML file.
func LoadMonsterConfig(filename string) (*MonsterYAMLConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster config file: %w", err)
	}

	var config MonsterYAMLConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse monster config YAML: %w", err)
	}

	if err := validateMonsterConfiguration(&config); err != nil {
		return nil, err
	}
	for key, def := range config.Monsters {
		config.Monsters[key] = def.WithDefaults()
	}
	return &config, nil
}

// MustLoadMonsterConfig loads enemy definitions and panics on error.
func MustLoadMonsterConfig(filename string) *MonsterYAMLConfig {
	config, err := LoadMonsterConfig(filename)
	if err != nil {
		panic("Failed to load monster config: " + err.Error())
	}
	return config
}

// GetMonsterByKey returns an enemy definition by key.
func (c *MonsterYAMLConfig) GetMonsterByKey(key string) (MonsterDefinition, error) {
	def, exists := c.Monsters[key]
	if !exists {
		return MonsterDefinition{}, fmt.Errorf("monster with key '%s' not found", key)
	}
	return def, nil
}

// GetAllMonsterKeys returns all keys in sorted order.
func (c *MonsterYAMLConfig) GetAllMonsterKeys() []string {
	keys := make([]string, 0, len(c.Monsters))
	for key := range c.Monsters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
