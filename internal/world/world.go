// Package world is the simulation context: it owns the clock, the arena, the
// entity table and the event queue, and steps every entity in a fixed order.
package world

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/effects"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/monster"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/navigation"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/player"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/threading/core"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/threading/monitoring"
)

// PlayerArchetype labels player events.
const PlayerArchetype = "player"

type enemySlot struct {
	handle Handle
	enemy  monster.Enemy
}

// World is the simulation context.
type World struct {
	cfg      *config.Config
	clock    *clock.Clock
	rng      *rand.Rand
	fx       effects.Sink
	log      zerolog.Logger
	arena    *physics.Arena
	grid     *navigation.Grid
	paths    navigation.PathFinder
	monsters *monster.MonsterYAMLConfig
	catalog  *items.Catalog
	monitor  *monitoring.TickMonitor

	entities     entityStore
	player       *player.Player
	playerHandle Handle
	enemies      []*enemySlot
	byHandle     map[Handle]*enemySlot
	bullets      []*Bullet
	pickups      []*items.Pickup
	spawners     []*Spawner

	input         player.Controls
	acting        Handle
	events        EventQueue
	subscribers   []func(Event)
	parallelSense bool
}

// Option customizes a World.
type Option func(*World)

// WithEffects routes cosmetic calls to fx.
func WithEffects(fx effects.Sink) Option {
	return func(w *World) { w.fx = fx }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithRand replaces the seeded random source.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithMonitor attaches a tick monitor.
func WithMonitor(m *monitoring.TickMonitor) Option {
	return func(w *World) { w.monitor = m }
}

// WithMonsters supplies enemy definitions instead of loading them.
func WithMonsters(m *monster.MonsterYAMLConfig) Option {
	return func(w *World) { w.monsters = m }
}

// WithCatalog supplies weapons and loot tables instead of loading them.
func WithCatalog(c *items.Catalog) Option {
	return func(w *World) { w.catalog = c }
}

// WithPathFinder replaces the baked navigation grid.
func WithPathFinder(p navigation.PathFinder) Option {
	return func(w *World) { w.paths = p }
}

// New builds a world from cfg. Asset files named by cfg are loaded unless the
// matching option supplies them.
func New(cfg *config.Config, opts ...Option) (*World, error) {
	var placements []Placement
	if cfg.Arena.Map != "" {
		layout, err := LoadArenaMap(cfg.AssetPath(cfg.Arena.Map), cfg.Arena.TileSize)
		if err != nil {
			return nil, fmt.Errorf("loading arena map: %w", err)
		}
		local := *cfg
		layout.ApplyTo(&local.Arena)
		cfg = &local
		placements = layout.Placements
	}

	w := &World{
		cfg:           cfg,
		clock:         clock.New(),
		fx:            effects.Nop{},
		log:           zerolog.Nop(),
		byHandle:      make(map[Handle]*enemySlot),
		parallelSense: cfg.Simulation.ParallelPerception,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.clock.SetTimeScale(cfg.GetTimeScale())

	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(cfg.Simulation.Seed))
	}
	if w.monsters == nil {
		m, err := monster.LoadMonsterConfig(cfg.GetEnemiesPath())
		if err != nil {
			return nil, fmt.Errorf("loading enemies: %w", err)
		}
		w.monsters = m
	}
	if w.catalog == nil {
		c, err := items.LoadCatalog(cfg.GetItemsPath())
		if err != nil {
			return nil, fmt.Errorf("loading items: %w", err)
		}
		w.catalog = c
	}
	if w.monitor == nil {
		m, err := monitoring.NewTickMonitor(nil)
		if err != nil {
			return nil, err
		}
		w.monitor = m
	}

	w.arena = physics.NewArena(cfg.Surfaces(), cfg.Walls())
	if w.paths == nil {
		w.grid = navigation.NewGrid(w.arena, cfg.GetCellSize(), w.agentRadius())
		w.paths = w.grid
	}

	weapon, err := w.startingWeapon()
	if err != nil {
		return nil, err
	}
	w.playerHandle = w.entities.create()
	w.player = player.New(int(w.playerHandle), cfg.Player, cfg.Motor, weapon, w.arena, w.clock, w.fx, w.rng, cfg.GetPlayerSpawn())
	w.player.Vitals.OnDeath(w.onPlayerDeath)
	w.player.Vitals.OnRevive(w.onPlayerRevive)

	for _, wave := range cfg.Spawner.Waves {
		w.spawners = append(w.spawners, newSpawner(wave, w.clock.Now()))
	}
	for _, p := range placements {
		if _, err := w.SpawnEnemy(p.Monster, p.Position); err != nil {
			return nil, fmt.Errorf("map placement: %w", err)
		}
	}
	return w, nil
}

// MustNew panics when the world cannot be built.
func MustNew(cfg *config.Config, opts ...Option) *World {
	w, err := New(cfg, opts...)
	if err != nil {
		panic("Failed to build world: " + err.Error())
	}
	return w
}

func (w *World) startingWeapon() (*items.WeaponDefinition, error) {
	key := w.cfg.Player.StartingWeapon
	switch strings.ToLower(key) {
	case "none":
		return nil, nil
	case "":
		def := items.DefaultWeapon()
		return &def, nil
	}
	def, err := w.catalog.Weapon(key)
	if err != nil {
		return nil, fmt.Errorf("starting weapon: %w", err)
	}
	return &def, nil
}

// agentRadius is the widest enemy, used to bake the navigation grid.
func (w *World) agentRadius() float64 {
	r := 0.0
	for _, def := range w.monsters.Monsters {
		if def.Radius > r {
			r = def.Radius
		}
	}
	if r == 0 {
		r = 0.5
	}
	return r
}

// Env implementation for enemies.

// Now is the simulation time.
func (w *World) Now() float64 { return w.clock.Now() }

// Delta is the scaled length of the current tick.
func (w *World) Delta() float64 { return w.clock.Delta() }

// Paths is the path finder enemies navigate with.
func (w *World) Paths() navigation.PathFinder { return w.paths }

// Effects is the cosmetic sink.
func (w *World) Effects() effects.Sink { return w.fx }

// Rand is the seeded random source.
func (w *World) Rand() *rand.Rand { return w.rng }

// DamageTarget lets an enemy hurt the entity it is chasing.
func (w *World) DamageTarget(id, amount int) bool {
	h := Handle(id)
	if h != w.playerHandle || !w.entities.isAlive(h) {
		return false
	}
	return w.damagePlayer(amount, w.acting)
}

// damagePlayer reports the hit before applying it so a lethal hit is seen
// ahead of the death it causes.
func (w *World) damagePlayer(amount int, source Handle) bool {
	if amount < 0 || !w.player.Vulnerable() {
		return false
	}
	w.push(Event{
		Kind:      EventDamage,
		Entity:    w.playerHandle,
		Source:    source,
		Archetype: PlayerArchetype,
		Amount:    amount,
		Position:  w.player.Position(),
	})
	w.monitor.RecordDamage(PlayerArchetype, amount)
	return w.player.ApplyDamage(amount)
}

// SpawnPickup places a pickup in the world.
func (w *World) SpawnPickup(pos mgl64.Vec3, spec items.PickupSpec) {
	h := w.entities.create()
	w.pickups = append(w.pickups, &items.Pickup{ID: int(h), Spec: spec, Position: pos})
	w.fx.Spawn(effects.EffectLootSpawned, pos, 0)
}

// Notify translates an enemy report into a world event.
func (w *World) Notify(ev monster.Event) {
	h := Handle(ev.Monster.ID)
	out := Event{
		Entity:    h,
		Source:    w.playerHandle,
		Archetype: ev.Monster.Key,
		Amount:    ev.Amount,
		Position:  ev.Position,
		Detail:    ev.Detail,
	}
	switch ev.Kind {
	case monster.EventAttack:
		out.Kind = EventAttack
		out.Source = h
	case monster.EventHit:
		if ev.Detail != "" {
			// hits on the player are reported by damagePlayer
			return
		}
		out.Kind = EventDamage
		w.monitor.RecordDamage(out.Archetype, ev.Amount)
	case monster.EventChargeStarted:
		out.Kind = EventChargeStarted
	case monster.EventChargeRetargeted:
		out.Kind = EventChargeRetargeted
	case monster.EventChargeEnded:
		out.Kind = EventChargeEnded
	case monster.EventDied, monster.EventExploded:
		out.Kind = EventDeath
		if ev.Kind == monster.EventExploded {
			out.Source = h
		}
		w.monitor.RecordDamage(out.Archetype, ev.Amount)
	case monster.EventLootDropped:
		out.Kind = EventLoot
	default:
		return
	}
	w.push(out)
}

func (w *World) onPlayerDeath(lethal int) {
	w.monitor.RecordPlayerDeath()
	w.push(Event{
		Kind:      EventDeath,
		Entity:    w.playerHandle,
		Archetype: PlayerArchetype,
		Amount:    lethal,
		Position:  w.player.Position(),
	})
	w.log.Info().Float64("time", w.clock.Now()).Int("deaths", w.player.Vitals.Deaths()).Msg("player incapacitated")
}

func (w *World) onPlayerRevive(hp int) {
	w.push(Event{
		Kind:      EventRevive,
		Entity:    w.playerHandle,
		Archetype: PlayerArchetype,
		Amount:    hp,
		Position:  w.player.Position(),
	})
}

func (w *World) push(ev Event) {
	ev.Tick = w.clock.Ticks()
	ev.Time = w.clock.Now()
	w.events.Push(ev)
}

// Subscribe registers fn to receive every event at the end of each tick.
func (w *World) Subscribe(fn func(Event)) {
	w.subscribers = append(w.subscribers, fn)
}

// SetInput latches the controls used by the next Step.
func (w *World) SetInput(in player.Controls) {
	w.input = in
}

// SetPaused freezes or resumes simulation time.
func (w *World) SetPaused(paused bool) {
	w.clock.SetPaused(paused)
}

// Paused reports whether simulation time is frozen.
func (w *World) Paused() bool { return w.clock.Paused() }

// Step advances the simulation by dt seconds of wall time.
func (w *World) Step(dt float64) {
	timer := w.monitor.StartTick()
	w.clock.Advance(dt)
	in := w.input
	w.input = player.Controls{}

	if !w.clock.Paused() && w.clock.Delta() > 0 {
		w.stepPlayer(in)
		w.sense()
		w.updateEnemies()
		w.separate()
		w.stepBullets()
		w.removeDead()
		w.stepSpawners()
	}

	w.monitor.SetPopulation(len(w.enemies), len(w.bullets))
	w.flush()
	timer.End()
}

func (w *World) stepPlayer(in player.Controls) {
	for _, shot := range w.player.Update(in) {
		w.fire(shot)
	}
	if in.Interact {
		w.interact()
	}
	w.collectPickups()
}

// targetSnapshot is the read-only view of the player every enemy senses.
func (w *World) targetSnapshot() (monster.Target, bool) {
	if !w.entities.isAlive(w.playerHandle) {
		return monster.Target{}, false
	}
	return monster.Target{
		ID:         int(w.playerHandle),
		Position:   w.player.Position(),
		Velocity:   w.player.Velocity(),
		Vulnerable: w.player.Vulnerable(),
	}, true
}

// sense hands every enemy the same snapshot. Sense only writes the enemy's
// own fields, so it may run in parallel.
func (w *World) sense() {
	snap, ok := w.targetSnapshot()
	live := w.Enemies()
	if w.parallelSense && len(live) > 1 {
		core.ParallelForEach(live, func(e monster.Enemy) {
			e.Sense(snap, ok)
		})
		return
	}
	for _, e := range live {
		e.Sense(snap, ok)
	}
}

// updateEnemies runs each enemy to completion in registry order.
func (w *World) updateEnemies() {
	for _, s := range w.enemies {
		if !s.enemy.IsDead() {
			w.acting = s.handle
			s.enemy.Update()
		}
	}
	w.acting = 0
}

// separate pushes overlapping enemies apart. Agents with avoidance off
// (charging) are not pushed but still push others.
func (w *World) separate() {
	live := w.Enemies()
	for i := 0; i < len(live); i++ {
		a := live[i].Core()
		for j := i + 1; j < len(live); j++ {
			b := live[j].Core()
			if !a.Agent.Avoidance && !b.Agent.Avoidance {
				continue
			}
			diff := mgl64.Vec3{a.Agent.Position[0] - b.Agent.Position[0], 0, a.Agent.Position[2] - b.Agent.Position[2]}
			dist := diff.Len()
			minDist := a.Agent.Radius + b.Agent.Radius
			if dist >= minDist || dist < 1e-9 {
				continue
			}
			push := diff.Mul((minDist - dist) / dist)
			switch {
			case a.Agent.Avoidance && b.Agent.Avoidance:
				w.nudge(a, push.Mul(0.5))
				w.nudge(b, push.Mul(-0.5))
			case a.Agent.Avoidance:
				w.nudge(a, push)
			default:
				w.nudge(b, push.Mul(-1))
			}
		}
	}
}

func (w *World) nudge(m *monster.Monster, delta mgl64.Vec3) {
	if w.arena.Walkable(m.Agent.Position.Add(delta), m.Agent.Radius) {
		m.Agent.Nudge(delta)
	}
}

// removeDead frees the handles of enemies that died this tick.
func (w *World) removeDead() {
	kept := w.enemies[:0]
	for _, s := range w.enemies {
		if s.enemy.IsDead() {
			w.entities.destroy(s.handle)
			delete(w.byHandle, s.handle)
			w.monitor.RecordKill(s.enemy.Core().Key)
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(w.enemies); i++ {
		w.enemies[i] = nil
	}
	w.enemies = kept
}

func (w *World) flush() {
	for _, ev := range w.events.Drain() {
		for _, fn := range w.subscribers {
			fn(ev)
		}
	}
}

// SpawnEnemy creates an enemy of the given definition key at pos, snapped to
// the ground.
func (w *World) SpawnEnemy(key string, pos mgl64.Vec3) (Handle, error) {
	def, err := w.monsters.GetMonsterByKey(key)
	if err != nil {
		return 0, err
	}
	if h, ok := w.arena.GroundHeight(pos[0], pos[2]); ok {
		pos[1] = h
	}

	h := w.entities.create()
	var e monster.Enemy
	switch def.Archetype {
	case monster.ArchetypeCharger:
		e = monster.NewCharger(int(h), key, def, pos, w)
	default:
		e = monster.NewRunner(int(h), key, def, w.catalog.LootTable(def.LootTable), pos, w)
	}
	slot := &enemySlot{handle: h, enemy: e}
	w.enemies = append(w.enemies, slot)
	w.byHandle[h] = slot

	w.push(Event{Kind: EventSpawn, Entity: h, Archetype: key, Position: pos})
	w.log.Debug().Str("archetype", key).Stringer("entity", h).Msg("enemy spawned")
	return h, nil
}

// ApplyDamage hurts the entity behind h. Stale handles are ignored.
func (w *World) ApplyDamage(h Handle, amount int) bool {
	if !w.entities.isAlive(h) {
		return false
	}
	if h == w.playerHandle {
		return w.damagePlayer(amount, 0)
	}
	if s, ok := w.byHandle[h]; ok {
		return s.enemy.ApplyDamage(amount)
	}
	return false
}

// Accessors.

// Config returns the configuration the world was built from.
func (w *World) Config() *config.Config { return w.cfg }

// Clock returns the simulation clock.
func (w *World) Clock() *clock.Clock { return w.clock }

// Arena returns the static level.
func (w *World) Arena() *physics.Arena { return w.arena }

// Grid returns the baked navigation grid, nil when a custom path finder is used.
func (w *World) Grid() *navigation.Grid { return w.grid }

// Catalog returns weapons and loot tables.
func (w *World) Catalog() *items.Catalog { return w.catalog }

// Monsters returns the enemy definitions.
func (w *World) Monsters() *monster.MonsterYAMLConfig { return w.monsters }

// Monitor returns the tick monitor.
func (w *World) Monitor() *monitoring.TickMonitor { return w.monitor }

// Player returns the player entity.
func (w *World) Player() *player.Player { return w.player }

// PlayerHandle returns the player's handle.
func (w *World) PlayerHandle() Handle { return w.playerHandle }

// Alive reports whether h names a live entity.
func (w *World) Alive(h Handle) bool { return w.entities.isAlive(h) }

// EntityCount is the number of live handles.
func (w *World) EntityCount() int { return w.entities.count() }

// Enemy resolves a handle to a live enemy.
func (w *World) Enemy(h Handle) (monster.Enemy, bool) {
	if !w.entities.isAlive(h) {
		return nil, false
	}
	s, ok := w.byHandle[h]
	if !ok {
		return nil, false
	}
	return s.enemy, true
}

// Enemies returns the enemies still alive, in registry order.
func (w *World) Enemies() []monster.Enemy {
	out := make([]monster.Enemy, 0, len(w.enemies))
	for _, s := range w.enemies {
		if !s.enemy.IsDead() {
			out = append(out, s.enemy)
		}
	}
	return out
}

// EnemyHandles returns the handles of enemies in the registry.
func (w *World) EnemyHandles() []Handle {
	out := make([]Handle, len(w.enemies))
	for i, s := range w.enemies {
		out[i] = s.handle
	}
	return out
}

// Pickups returns copies of the uncollected pickups.
func (w *World) Pickups() []items.Pickup {
	out := make([]items.Pickup, 0, len(w.pickups))
	for _, p := range w.pickups {
		out = append(out, *p)
	}
	return out
}

// Spawners returns the wave spawners.
func (w *World) Spawners() []*Spawner { return w.spawners }
