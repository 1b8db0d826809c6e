package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/config"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/items"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/monster"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/recorder"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/threading/core"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/threading/monitoring"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/world"
)

// checkEvery is how many ticks pass between context checks.
const checkEvery = 60

// Result summarises one headless match.
type Result struct {
	Run      int
	Seed     int64
	MatchID  uint
	SimTime  float64
	Ticks    uint64
	Kills    int
	Deaths   int
	Survived int // enemies still alive at the end
	Counts   map[string]int
	Metrics  monitoring.TickMetrics
	Wall     time.Duration
}

// shared holds what every run reads but never writes.
type shared struct {
	cfg      *config.Config
	monsters *monster.MonsterYAMLConfig
	catalog  *items.Catalog
	backend  recorder.Backend
	log      zerolog.Logger
}

func loadShared(cfg *config.Config, backend recorder.Backend, log zerolog.Logger) (*shared, error) {
	monsters, err := monster.LoadMonsterConfig(cfg.GetEnemiesPath())
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	catalog, err := items.LoadCatalog(cfg.GetItemsPath())
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	return &shared{cfg: cfg, monsters: monsters, catalog: catalog, backend: backend, log: log}, nil
}

// runMatch plays one seeded match for duration of simulated time.
func runMatch(ctx context.Context, sh *shared, run int, seed int64, duration time.Duration) (Result, error) {
	start := time.Now()
	log := sh.log.With().Int("run", run).Int64("seed", seed).Logger()

	cfg := *sh.cfg
	cfg.Simulation.Seed = seed
	w, err := world.New(&cfg,
		world.WithMonsters(sh.monsters),
		world.WithCatalog(sh.catalog),
		world.WithRand(rand.New(rand.NewSource(seed))),
		world.WithLogger(log),
	)
	if err != nil {
		return Result{}, err
	}
	session, err := recorder.Attach(sh.backend, w, fmt.Sprintf("headless-%d", run), log)
	if err != nil {
		return Result{}, err
	}

	dt := cfg.GetTickDelta()
	ticks := int(duration.Seconds() / dt)
	var b bot
	for i := 0; i < ticks; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		w.SetInput(b.controls(w, dt))
		w.Step(dt)
	}

	m, err := session.Finish()
	if err != nil {
		return Result{}, err
	}
	counts, err := sh.backend.CountByKind(m.ID)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Run:      run,
		Seed:     seed,
		MatchID:  m.ID,
		SimTime:  m.SimTime,
		Ticks:    m.Ticks,
		Kills:    m.Kills,
		Deaths:   m.Deaths,
		Survived: len(w.Enemies()),
		Counts:   counts,
		Metrics:  w.Monitor().Snapshot(),
		Wall:     time.Since(start),
	}
	log.Info().Int("kills", res.Kills).Int("deaths", res.Deaths).Dur("wall", res.Wall).Msg("Match finished")
	return res, nil
}

// runBatch plays runs matches on a worker pool. Seeds are consecutive from
// firstSeed so a batch is reproducible.
func runBatch(ctx context.Context, sh *shared, s Settings) ([]Result, error) {
	pool := core.NewWorkerPool(s.Workers)
	pool.Start()
	defer pool.Stop()

	results := make([]Result, s.Runs)
	jobs := make([]func(context.Context) error, s.Runs)
	for run := range jobs {
		jobs[run] = func(ctx context.Context) error {
			res, err := runMatch(ctx, sh, run, s.Seed+int64(run), s.Duration)
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			results[run] = res
			return nil
		}
	}
	if err := pool.RunAll(ctx, jobs...); err != nil {
		return nil, err
	}
	return results, nil
}

// writeReport prints a per-run table and totals.
func writeReport(out io.Writer, results []Result) {
	fmt.Fprintf(out, "%-4s %-8s %-6s %-6s %-6s %-8s %-10s %s\n", "run", "seed", "kills", "deaths", "alive", "sim(s)", "avg tick", "events")
	totals := make(map[string]int)
	var kills, deaths int
	var avg time.Duration
	for _, r := range results {
		kinds := make([]string, 0, len(r.Counts))
		for k, n := range r.Counts {
			totals[k] += n
			kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
		}
		sort.Strings(kinds)
		fmt.Fprintf(out, "%-4d %-8d %-6d %-6d %-6d %-8.1f %-10s %s\n",
			r.Run, r.Seed, r.Kills, r.Deaths, r.Survived, r.SimTime, r.Metrics.AverageTick, strings.Join(kinds, " "))
		kills += r.Kills
		deaths += r.Deaths
		avg += r.Metrics.AverageTick
	}
	if len(results) == 0 {
		return
	}
	avg /= time.Duration(len(results))
	fmt.Fprintf(out, "\n%d runs: %d kills, %d player deaths, mean tick %s\n", len(results), kills, deaths, avg)
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-18s %d\n", k, totals[k])
	}
}
