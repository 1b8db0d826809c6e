// Package monitoring measures simulation ticks and combat activity. Counters
// are kept locally for the HUD and report, and mirrored to OpenTelemetry
// instruments.
package monitoring

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/UnityGamesRoland/Third-Person-Action-Game/internal/threading/monitoring"

// TickMonitor tracks tick timing and combat counters.
type TickMonitor struct {
	ticks     atomic.Uint64
	lastTick  atomic.Int64 // nanoseconds
	totalTick atomic.Int64

	enemies atomic.Int32
	bullets atomic.Int32

	kills        atomic.Uint64
	damage       atomic.Uint64
	playerDeaths atomic.Uint64

	mutex     sync.RWMutex
	peakTick  time.Duration
	startTime time.Time

	tickDuration   metric.Float64Histogram
	killCounter    metric.Int64Counter
	damageCounter  metric.Int64Counter
	deathCounter   metric.Int64Counter
	populationGauge metric.Int64ObservableGauge
}

// NewTickMonitor creates a monitor on m, or on the global meter when m is nil
// (a no-op unless a provider has been installed).
func NewTickMonitor(m metric.Meter) (*TickMonitor, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	tm := &TickMonitor{startTime: time.Now()}

	var err error
	tm.tickDuration, err = m.Float64Histogram(
		"arena.tick.duration",
		metric.WithDescription("Wall time spent in one simulation tick"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick histogram: %w", err)
	}

	tm.killCounter, err = m.Int64Counter(
		"arena.enemies.killed",
		metric.WithDescription("Enemies killed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kill counter: %w", err)
	}

	tm.damageCounter, err = m.Int64Counter(
		"arena.damage.dealt",
		metric.WithDescription("Hit points removed from any entity"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	tm.deathCounter, err = m.Int64Counter(
		"arena.player.deaths",
		metric.WithDescription("Times the player was incapacitated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating death counter: %w", err)
	}

	tm.populationGauge, err = m.Int64ObservableGauge(
		"arena.population",
		metric.WithDescription("Live entities by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating population gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(tm.populationGauge, int64(tm.enemies.Load()),
				metric.WithAttributes(attribute.String("kind", "enemy")))
			o.ObserveInt64(tm.populationGauge, int64(tm.bullets.Load()),
				metric.WithAttributes(attribute.String("kind", "bullet")))
			return nil
		},
		tm.populationGauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering population callback: %w", err)
	}

	return tm, nil
}

// MustNewTickMonitor panics when the instruments cannot be created.
func MustNewTickMonitor(m metric.Meter) *TickMonitor {
	tm, err := NewTickMonitor(m)
	if err != nil {
		panic(err)
	}
	return tm
}

// TickTimer measures one tick.
type TickTimer struct {
	monitor   *TickMonitor
	startTime time.Time
}

// StartTick begins tick timing.
func (tm *TickMonitor) StartTick() *TickTimer {
	return &TickTimer{monitor: tm, startTime: time.Now()}
}

// End completes tick timing and returns the elapsed wall time.
func (tt *TickTimer) End() time.Duration {
	elapsed := time.Since(tt.startTime)
	tm := tt.monitor
	tm.lastTick.Store(elapsed.Nanoseconds())
	tm.totalTick.Add(elapsed.Nanoseconds())
	tm.ticks.Add(1)

	tm.mutex.Lock()
	if elapsed > tm.peakTick {
		tm.peakTick = elapsed
	}
	tm.mutex.Unlock()

	tm.tickDuration.Record(context.Background(), float64(elapsed)/float64(time.Millisecond))
	return elapsed
}

// SetPopulation stores the live entity counts observed by the gauge.
func (tm *TickMonitor) SetPopulation(enemies, bullets int) {
	tm.enemies.Store(int32(enemies))
	tm.bullets.Store(int32(bullets))
}

// RecordKill counts one enemy death of the given archetype.
func (tm *TickMonitor) RecordKill(archetype string) {
	tm.kills.Add(1)
	tm.killCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("archetype", archetype)))
}

// RecordDamage counts hit points removed from target ("player" or an archetype).
func (tm *TickMonitor) RecordDamage(target string, amount int) {
	if amount <= 0 {
		return
	}
	tm.damage.Add(uint64(amount))
	tm.damageCounter.Add(context.Background(), int64(amount),
		metric.WithAttributes(attribute.String("target", target)))
}

// RecordPlayerDeath counts one incapacitation.
func (tm *TickMonitor) RecordPlayerDeath() {
	tm.playerDeaths.Add(1)
	tm.deathCounter.Add(context.Background(), 1)
}

// TickMetrics is a point-in-time copy of the counters.
type TickMetrics struct {
	Ticks        uint64
	LastTick     time.Duration
	AverageTick  time.Duration
	PeakTick     time.Duration
	Enemies      int32
	Bullets      int32
	Kills        uint64
	Damage       uint64
	PlayerDeaths uint64
	Uptime       time.Duration
}

// Snapshot returns the current counters.
func (tm *TickMonitor) Snapshot() TickMetrics {
	tm.mutex.RLock()
	peak := tm.peakTick
	start := tm.startTime
	tm.mutex.RUnlock()

	ticks := tm.ticks.Load()
	var avg time.Duration
	if ticks > 0 {
		avg = time.Duration(tm.totalTick.Load() / int64(ticks))
	}
	return TickMetrics{
		Ticks:        ticks,
		LastTick:     time.Duration(tm.lastTick.Load()),
		AverageTick:  avg,
		PeakTick:     peak,
		Enemies:      tm.enemies.Load(),
		Bullets:      tm.bullets.Load(),
		Kills:        tm.kills.Load(),
		Damage:       tm.damage.Load(),
		PlayerDeaths: tm.playerDeaths.Load(),
		Uptime:       time.Since(start),
	}
}

// PerformanceAlert is a budget warning.
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckAlerts reports ticks running over budget.
func (tm *TickMonitor) CheckAlerts(budget time.Duration) []PerformanceAlert {
	var alerts []PerformanceAlert
	now := time.Now()
	last := time.Duration(tm.lastTick.Load())
	if budget > 0 && last > budget {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_tick",
			Message:   fmt.Sprintf("tick took %s, budget %s", last, budget),
			Value:     float64(last) / float64(time.Millisecond),
			Threshold: float64(budget) / float64(time.Millisecond),
			Timestamp: now,
		})
	}
	return alerts
}

// Reset clears every counter.
func (tm *TickMonitor) Reset() {
	tm.ticks.Store(0)
	tm.lastTick.Store(0)
	tm.totalTick.Store(0)
	tm.enemies.Store(0)
	tm.bullets.Store(0)
	tm.kills.Store(0)
	tm.damage.Store(0)
	tm.playerDeaths.Store(0)

	tm.mutex.Lock()
	tm.peakTick = 0
	tm.startTime = time.Now()
	tm.mutex.Unlock()
}
