package monitoring

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestTickTiming(t *testing.T) {
	tm := MustNewTickMonitor(noop.Meter{})

	timer := tm.StartTick()
	time.Sleep(5 * time.Millisecond)
	elapsed := timer.End()

	snap := tm.Snapshot()
	if snap.Ticks != 1 {
		t.Fatalf("expected 1 tick, got %d", snap.Ticks)
	}
	if snap.LastTick < 5*time.Millisecond {
		t.Errorf("expected last tick >= 5ms, got %s", snap.LastTick)
	}
	if snap.PeakTick != elapsed || snap.AverageTick != elapsed {
		t.Errorf("expected peak and average %s, got %s and %s", elapsed, snap.PeakTick, snap.AverageTick)
	}
}

func TestCombatCounters(t *testing.T) {
	tm, err := NewTickMonitor(nil)
	if err != nil {
		t.Fatalf("NewTickMonitor: %v", err)
	}

	tm.RecordKill("runner")
	tm.RecordKill("charger")
	tm.RecordDamage("player", 2)
	tm.RecordDamage("runner", 0)
	tm.RecordPlayerDeath()
	tm.SetPopulation(4, 7)

	snap := tm.Snapshot()
	if snap.Kills != 2 {
		t.Errorf("expected 2 kills, got %d", snap.Kills)
	}
	if snap.Damage != 2 {
		t.Errorf("expected 2 damage, got %d", snap.Damage)
	}
	if snap.PlayerDeaths != 1 {
		t.Errorf("expected 1 death, got %d", snap.PlayerDeaths)
	}
	if snap.Enemies != 4 || snap.Bullets != 7 {
		t.Errorf("expected population 4/7, got %d/%d", snap.Enemies, snap.Bullets)
	}

	tm.Reset()
	if snap := tm.Snapshot(); snap.Kills != 0 || snap.Ticks != 0 || snap.Enemies != 0 {
		t.Errorf("expected reset counters, got %+v", snap)
	}
}

func TestCheckAlerts(t *testing.T) {
	tm := MustNewTickMonitor(noop.Meter{})
	tm.lastTick.Store(int64(20 * time.Millisecond))

	alerts := tm.CheckAlerts(10 * time.Millisecond)
	if len(alerts) != 1 || alerts[0].Type != "slow_tick" {
		t.Fatalf("expected one slow_tick alert, got %+v", alerts)
	}
	if got := tm.CheckAlerts(0); len(got) != 0 {
		t.Errorf("zero budget should disable alerts, got %+v", got)
	}
}
