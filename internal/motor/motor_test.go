package motor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
)

const dt = 1.0 / 60

// MockPhysics answers probes through a callback and moves freely, reporting
// ground when the move ends at or below floorY.
type MockPhysics struct {
	castDown func(origin mgl64.Vec3, maxDist float64) (physics.Hit, bool)
	floorY   float64
	moves    []mgl64.Vec3
}

func (m *MockPhysics) CastDown(origin mgl64.Vec3, maxDist float64) (physics.Hit, bool) {
	if m.castDown == nil {
		return physics.Hit{}, false
	}
	return m.castDown(origin, maxDist)
}

func (m *MockPhysics) Move(pos, delta mgl64.Vec3, radius float64) physics.MoveResult {
	m.moves = append(m.moves, delta)
	next := pos.Add(delta)
	grounded := false
	if next[1] <= m.floorY {
		next[1] = m.floorY
		grounded = true
	}
	return physics.MoveResult{Position: next, Grounded: grounded}
}

// flatFloor reports a level floor at y=0 under every probe.
func flatFloor(origin mgl64.Vec3, maxDist float64) (physics.Hit, bool) {
	if origin[1] > maxDist {
		return physics.Hit{}, false
	}
	return physics.Hit{Distance: origin[1], Normal: mgl64.Vec3{0, 1, 0}}, true
}

type harness struct {
	clk   *clock.Clock
	seq   *clock.Sequencer
	phys  *MockPhysics
	motor *Motor
}

func newHarness(cfg Config) *harness {
	h := &harness{clk: clock.New(), seq: clock.NewSequencer(), phys: &MockPhysics{castDown: flatFloor}}
	h.motor = New(cfg, h.phys, h.seq, mgl64.Vec3{})
	return h
}

func (h *harness) tick(in Input) {
	h.clk.Advance(dt)
	h.seq.Advance(h.clk.Now())
	h.motor.Step(h.clk.Now(), dt, in)
}

func TestMotorReachesMoveSpeed(t *testing.T) {
	h := newHarness(DefaultConfig())
	for i := 0; i < 60; i++ {
		h.tick(Input{Move: mgl64.Vec2{1, 0}})
	}
	assert.InDelta(t, 5.9, h.motor.Velocity()[0], 1e-3)
	assert.InDelta(t, 0.0, h.motor.Velocity()[2], 1e-9)
	assert.True(t, h.motor.Grounded())
	assert.Equal(t, 0.0, h.motor.Velocity()[1], "grounded and not descending resets vertical speed")
	assert.InDelta(t, 90.0, h.motor.Yaw, 1.0, "faces the move direction")
}

func TestMotorStopsWhenCannotMove(t *testing.T) {
	h := newHarness(DefaultConfig())
	for i := 0; i < 30; i++ {
		h.tick(Input{Move: mgl64.Vec2{0, 1}})
	}
	h.motor.CanMove = false
	for i := 0; i < 60; i++ {
		h.tick(Input{Move: mgl64.Vec2{0, 1}})
	}
	assert.InDelta(t, 0.0, h.motor.Velocity()[2], 1e-3)
}

func TestMotorFreeFallWithoutGround(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.phys.castDown = nil
	h.phys.floorY = math.Inf(-1)
	for i := 0; i < 30; i++ {
		h.tick(Input{})
	}
	assert.False(t, h.motor.Grounded())
	assert.InDelta(t, -20*0.5, h.motor.Velocity()[1], 1e-6)
	assert.Less(t, h.motor.Position[1], 0.0)
}

func TestMotorDashLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DashCooldown = 0.2
	h := newHarness(cfg)
	dashes := 0
	h.motor.OnDash(func() { dashes++ })

	h.tick(Input{Move: mgl64.Vec2{1, 0}, Dash: true})
	require.True(t, h.motor.Dashing())
	assert.False(t, h.motor.CanDash())
	assert.InDelta(t, 5.9*2.7, h.motor.TargetVelocity()[0], 1e-9)

	// a second press mid-dash does nothing
	h.tick(Input{Move: mgl64.Vec2{0, 1}, Dash: true})
	assert.Equal(t, 1, dashes)
	assert.InDelta(t, 5.9*2.7, h.motor.TargetVelocity()[0], 1e-9, "dash velocity holds for the dash")

	for h.clk.Now() < 0.25+dt/2 {
		h.tick(Input{Move: mgl64.Vec2{1, 0}})
	}
	h.tick(Input{Move: mgl64.Vec2{1, 0}})
	assert.False(t, h.motor.Dashing())
	assert.False(t, h.motor.CanDash(), "cooldown still running")

	for h.clk.Now() < 0.25+0.2+3*dt {
		h.tick(Input{Move: mgl64.Vec2{1, 0}})
	}
	assert.True(t, h.motor.CanDash())
}

func TestMotorDashNeedsInput(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.tick(Input{Dash: true})
	assert.False(t, h.motor.Dashing())
}

func TestMotorHaltClearsDash(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.tick(Input{Move: mgl64.Vec2{1, 0}, Dash: true})
	h.motor.Halt()
	assert.False(t, h.motor.Dashing())
	assert.True(t, h.motor.CanDash())
	assert.Equal(t, 0, h.seq.Len())
}

// slopeUnder reports slopes falling toward +X, 0.3 below the probes listed in
// angles, and flat ground under the rest.
func slopeUnder(m **Motor, angles map[Probe]float64) func(mgl64.Vec3, float64) (physics.Hit, bool) {
	return func(origin mgl64.Vec3, maxDist float64) (physics.Hit, bool) {
		pos := (*m).Position
		var p Probe
		switch {
		case origin[0] < pos[0]:
			p = ProbeLeft
		case origin[0] > pos[0]:
			p = ProbeRight
		case origin[2] > pos[2]:
			p = ProbeFront
		default:
			p = ProbeBack
		}
		angle, ok := angles[p]
		if !ok {
			return flatFloor(origin, maxDist)
		}
		dist := 0.3
		if dist > maxDist {
			return physics.Hit{}, false
		}
		rad := angle * math.Pi / 180
		return physics.Hit{Distance: dist, Angle: angle, Normal: mgl64.Vec3{math.Sin(rad), math.Cos(rad), 0}}, true
	}
}

func TestMotorSlopeDescentUsesFirstQualifyingProbe(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.phys.castDown = slopeUnder(&h.motor, map[Probe]float64{ProbeRight: 30, ProbeFront: 20})
	h.phys.floorY = math.Inf(-1)

	for i := 0; i < 30; i++ {
		h.tick(Input{Move: mgl64.Vec2{1, 0}})
	}
	c := h.motor.LastCorrection()
	require.True(t, c.Applied)
	assert.Equal(t, ProbeRight, c.Probe)
	assert.Equal(t, 30.0, c.Angle)

	speed := math.Hypot(h.motor.Velocity()[0], h.motor.Velocity()[2])
	assert.InDelta(t, math.Sin(math.Pi/6)*speed, c.Vertical, 1e-9)
	assert.True(t, h.motor.Descending())
	assert.True(t, h.motor.Grounded())

	last := h.phys.moves[len(h.phys.moves)-1]
	assert.InDelta(t, h.motor.Velocity()[0]*math.Cos(math.Pi/6)*dt, last[0], 1e-9)
}

func TestMotorSlopeIgnoredWhenTooSlowOrTooSteep(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.phys.castDown = slopeUnder(&h.motor, map[Probe]float64{ProbeLeft: 60, ProbeRight: 30})
	h.tick(Input{})
	assert.False(t, h.motor.LastCorrection().Applied, "standing still cannot reach a slope 0.3 below")

	for i := 0; i < 30; i++ {
		h.tick(Input{Move: mgl64.Vec2{1, 0}})
	}
	assert.Equal(t, ProbeRight, h.motor.LastCorrection().Probe, "60 degrees is past the slope limit")
}

func TestMotorCombatFacesAimPoint(t *testing.T) {
	h := newHarness(DefaultConfig())
	h.motor.Combat = true
	aim := &Ray{Origin: mgl64.Vec3{3, 10, 0}, Direction: mgl64.Vec3{0, -1, 0}}
	h.tick(Input{Move: mgl64.Vec2{0, 1}, Aim: aim})
	assert.InDelta(t, 90.0, h.motor.Yaw, 1.0, "aim wins over the move direction")

	p, ok := h.motor.AimPoint(&Ray{Origin: mgl64.Vec3{0, 10, 0}, Direction: mgl64.Vec3{0, 1, 0}})
	assert.False(t, ok, "ray pointing away from the plane")
	assert.Equal(t, mgl64.Vec3{}, p)
}

func rampArena() *physics.Arena {
	return physics.NewArena([]physics.Surface{
		{Name: "floor", MinX: -20, MinZ: -20, MaxX: 4, MaxZ: 20},
		{Name: "ramp", MinX: 4, MinZ: -4, MaxX: 10, MaxZ: 0, Rise: 2, Axis: physics.AxisX},
	}, nil)
}

func TestMotorClimbingRampKeepsVerticalSpeedZero(t *testing.T) {
	arena := rampArena()
	clk, seq := clock.New(), clock.NewSequencer()
	m := New(DefaultConfig(), arena, seq, mgl64.Vec3{4.5, rampHeight(4.5), -2})

	for i := 0; i < 50; i++ {
		clk.Advance(dt)
		seq.Advance(clk.Now())
		m.Step(clk.Now(), dt, Input{Move: mgl64.Vec2{1, 0}})
		require.False(t, m.Descending(), "tick %d", i)
		require.Equal(t, 0.0, m.Velocity()[1], "tick %d", i)
	}
	h, _ := arena.GroundHeight(m.Position[0], m.Position[2])
	assert.Greater(t, m.Position[0], 8.0)
	assert.InDelta(t, h, m.Position[1], 1e-9)
}

func TestMotorDescendingRampDoesNotAccumulateGravity(t *testing.T) {
	arena := rampArena()
	clk, seq := clock.New(), clock.NewSequencer()
	m := New(DefaultConfig(), arena, seq, mgl64.Vec3{9, rampHeight(9), -2})

	descending := 0
	for i := 0; i < 50; i++ {
		clk.Advance(dt)
		seq.Advance(clk.Now())
		m.Step(clk.Now(), dt, Input{Move: mgl64.Vec2{-1, 0}})
		if m.Descending() {
			descending++
		}
		require.True(t, m.Grounded(), "tick %d", i)
		require.InDelta(t, 0.0, m.Velocity()[1], 1e-9, "tick %d", i)
	}
	assert.Greater(t, descending, 40)
	h, _ := arena.GroundHeight(m.Position[0], m.Position[2])
	assert.Less(t, m.Position[0], 6.0)
	assert.InDelta(t, h, m.Position[1], 1e-9)
}

func rampHeight(x float64) float64 { return 2 * (x - 4) / 6 }
