// Package motor integrates the player's locomotion one tick at a time: ground
// probing, smoothed horizontal speed, gravity, slope descent, dash and facing.
package motor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/clock"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/mathutil"
	"github.com/UnityGamesRoland/Third-Person-Action-Game/internal/physics"
)

// Physics is the subset of the geometry facade the motor queries.
type Physics interface {
	CastDown(origin mgl64.Vec3, maxDist float64) (physics.Hit, bool)
	Move(pos, delta mgl64.Vec3, radius float64) physics.MoveResult
}

// Ray is a world-space ray, used for the aim point in combat mode.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// Input is the latched control state for one tick. Move is a normalized
// ground-plane direction as (x, z).
type Input struct {
	Move mgl64.Vec2
	Dash bool
	Aim  *Ray
}

// Probe identifies one of the four footprint probes, in sampling order.
type Probe int

const (
	ProbeLeft Probe = iota
	ProbeRight
	ProbeFront
	ProbeBack
	probeCount
)

func (p Probe) String() string {
	return [...]string{"left", "right", "front", "back"}[p]
}

// Correction records the slope descent adjustment applied during a tick.
type Correction struct {
	Applied  bool
	Probe    Probe
	Angle    float64
	Vertical float64
}

// Motor is the player locomotion state.
type Motor struct {
	cfg  Config
	phys Physics
	seq  *clock.Sequencer

	Position mgl64.Vec3
	Yaw      float64
	CanMove  bool
	Combat   bool

	velocity       mgl64.Vec3
	targetVelocity mgl64.Vec3
	dashDirection  mgl64.Vec2

	speedVelX float64
	speedVelZ float64
	yawVel    float64

	grounded   bool
	descending bool
	dashing    bool
	canDash    bool

	correction Correction
	onDash     []func()
}

// New creates a motor at pos. Dash timers are scheduled on seq, which the
// owner must advance every tick before Step.
func New(cfg Config, phys Physics, seq *clock.Sequencer, pos mgl64.Vec3) *Motor {
	return &Motor{
		cfg:      cfg.Normalize(),
		phys:     phys,
		seq:      seq,
		Position: pos,
		CanMove:  true,
		canDash:  true,
	}
}

// Config returns the normalized tuning.
func (m *Motor) Config() Config { return m.cfg }

// Velocity is the current (smoothed) velocity.
func (m *Motor) Velocity() mgl64.Vec3 { return m.velocity }

// TargetVelocity is the velocity the smoothing is heading for.
func (m *Motor) TargetVelocity() mgl64.Vec3 { return m.targetVelocity }

// Grounded reports ground contact from the last tick.
func (m *Motor) Grounded() bool { return m.grounded }

// Descending reports whether the last tick applied a slope correction.
func (m *Motor) Descending() bool { return m.descending }

// Dashing reports whether a dash is in progress.
func (m *Motor) Dashing() bool { return m.dashing }

// CanDash reports whether the dash cooldown has cleared.
func (m *Motor) CanDash() bool { return m.canDash }

// LastCorrection returns the slope correction of the last tick.
func (m *Motor) LastCorrection() Correction { return m.correction }

// OnDash registers a listener for dash starts.
func (m *Motor) OnDash(fn func()) { m.onDash = append(m.onDash, fn) }

// Halt stops all motion and clears dash state. Used when the owner dies.
func (m *Motor) Halt() {
	m.velocity = mgl64.Vec3{}
	m.targetVelocity = mgl64.Vec3{}
	m.speedVelX, m.speedVelZ = 0, 0
	m.dashing = false
	m.canDash = true
	m.seq.Cancel(clock.TaskDash)
	m.seq.Cancel(clock.TaskDashCooldown)
}

// Step advances the motor by dt seconds of simulation time.
func (m *Motor) Step(now, dt float64, in Input) {
	if dt <= 0 {
		return
	}
	m.grounded = m.groundContact()
	m.descending = false
	m.correction = Correction{}

	m.setTargetVelocity(now, in)

	m.velocity[0] = mathutil.SmoothDamp(m.velocity[0], m.targetVelocity[0], &m.speedVelX, m.cfg.SpeedSmoothTime, dt)
	m.velocity[2] = mathutil.SmoothDamp(m.velocity[2], m.targetVelocity[2], &m.speedVelZ, m.cfg.SpeedSmoothTime, dt)
	fallSpeed := m.velocity[1]
	m.velocity[1] += m.cfg.Gravity * dt

	move := m.velocity
	m.descendSlope(&move)

	res := m.phys.Move(m.Position, move.Mul(dt), m.cfg.Radius)
	m.Position = res.Position
	if res.Grounded {
		m.grounded = true
	}
	switch {
	case m.grounded && m.descending:
		// the slope correction carries the character down; gravity does not pile up
		m.velocity[1] = fallSpeed
	case m.grounded:
		m.velocity[1] = 0
	}

	m.rotate(dt, in)
}

func (m *Motor) probeOrigin(p Probe) mgl64.Vec3 {
	o := m.Position
	o[1] += m.cfg.SkinWidth
	switch p {
	case ProbeLeft:
		o[0] -= m.cfg.Radius
	case ProbeRight:
		o[0] += m.cfg.Radius
	case ProbeFront:
		o[2] += m.cfg.Radius
	case ProbeBack:
		o[2] -= m.cfg.Radius
	}
	return o
}

func (m *Motor) groundContact() bool {
	reach := m.cfg.SkinWidth + m.cfg.GroundCheckDistance
	for p := Probe(0); p < probeCount; p++ {
		if _, ok := m.phys.CastDown(m.probeOrigin(p), reach); ok {
			return true
		}
	}
	return false
}

func (m *Motor) setTargetVelocity(now float64, in Input) {
	if !m.dashing {
		if m.CanMove {
			m.targetVelocity = mgl64.Vec3{in.Move[0] * m.cfg.MoveSpeed, 0, in.Move[1] * m.cfg.MoveSpeed}
		} else {
			m.targetVelocity = mgl64.Vec3{}
		}
	}
	if in.Dash && in.Move.Len() > 0 && m.canDash && !m.dashing && m.CanMove {
		m.startDash(now, in.Move)
	}
}

func (m *Motor) startDash(now float64, dir mgl64.Vec2) {
	speed := m.cfg.MoveSpeed * m.cfg.DashMultiplier
	m.targetVelocity = mgl64.Vec3{dir[0] * speed, 0, dir[1] * speed}
	m.dashDirection = dir
	m.dashing = true
	m.canDash = false
	m.seq.After(clock.TaskDash, now, m.cfg.DashTime, m.endDash)
	for _, fn := range m.onDash {
		fn()
	}
}

func (m *Motor) endDash(now float64) {
	m.dashing = false
	m.seq.After(clock.TaskDashCooldown, now, m.cfg.DashCooldown, func(float64) {
		m.canDash = true
	})
}

// descendSlope bends the move toward a slope the character is about to run
// down. Only the first qualifying probe is used; slopes the move climbs are
// left to the mover.
func (m *Motor) descendSlope(move *mgl64.Vec3) {
	flat := mathutil.Flat(*move)
	speed := flat.Len()
	for p := Probe(0); p < probeCount; p++ {
		hit, ok := m.phys.CastDown(m.probeOrigin(p), m.cfg.SlopeProbeDistance)
		if !ok || hit.Angle <= 0 || hit.Angle > m.cfg.SlopeLimit {
			continue
		}
		if flat.Dot(mathutil.Flat(hit.Normal)) <= 0 {
			continue
		}
		rad := hit.Angle * math.Pi / 180
		if hit.Distance-m.cfg.SkinWidth > math.Tan(rad)*speed {
			continue
		}
		drop := math.Sin(rad) * speed
		move[0] *= math.Cos(rad)
		move[2] *= math.Cos(rad)
		move[1] -= drop
		m.grounded = true
		m.descending = true
		m.correction = Correction{Applied: true, Probe: p, Angle: hit.Angle, Vertical: drop}
		return
	}
}

func (m *Motor) rotate(dt float64, in Input) {
	if m.Combat {
		if point, ok := m.aimPoint(in.Aim); ok && mathutil.FlatLen(point.Sub(m.Position)) > 1e-6 {
			m.Yaw = mathutil.YawTowards(m.Position, point)
		}
		return
	}
	if in.Move.Len() == 0 {
		return
	}
	dir := in.Move
	if m.dashing {
		dir = m.dashDirection
	}
	target := mathutil.YawOf(dir[0], dir[1])
	m.Yaw = mathutil.SmoothDampAngle(m.Yaw, target, &m.yawVel, m.cfg.RotationSmoothTime, dt)
}

// aimPoint intersects the aim ray with the horizontal plane at the
// character's height.
func (m *Motor) aimPoint(aim *Ray) (mgl64.Vec3, bool) {
	if aim == nil || math.Abs(aim.Direction[1]) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := (m.Position[1] - aim.Origin[1]) / aim.Direction[1]
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return aim.Origin.Add(aim.Direction.Mul(t)), true
}

// AimPoint exposes the aim plane intersection for weapons.
func (m *Motor) AimPoint(aim *Ray) (mgl64.Vec3, bool) { return m.aimPoint(aim) }
