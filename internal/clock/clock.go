// Package clock provides the simulation time source and the named, cancellable
// task sequencer every entity uses for its timed waits.
package clock

// Clock is the monotonic simulation time source. It only moves when Advance is
// called, so a paused or zero-scale clock freezes every deadline built on it.
type Clock struct {
	now       float64
	delta     float64
	timeScale float64
	paused    bool
	ticks     uint64
}

// New creates a clock at time zero with a time scale of 1.
func New() *Clock {
	return &Clock{timeScale: 1}
}

// Now returns the current simulation time in seconds.
func (c *Clock) Now() float64 { return c.now }

// Delta returns the scaled length of the last tick.
func (c *Clock) Delta() float64 { return c.delta }

// Ticks returns how many ticks have been advanced.
func (c *Clock) Ticks() uint64 { return c.ticks }

// TimeScale returns the current scale applied to raw tick lengths.
func (c *Clock) TimeScale() float64 { return c.timeScale }

// SetTimeScale changes the scale applied to raw tick lengths. Negative values clamp to 0.
func (c *Clock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.timeScale = scale
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool { return c.paused }

// SetPaused freezes or resumes the clock.
func (c *Clock) SetPaused(paused bool) { c.paused = paused }

// Advance moves time forward by dt scaled by the time scale and returns the
// scaled delta. A paused clock still counts the tick but does not move.
func (c *Clock) Advance(dt float64) float64 {
	c.ticks++
	if c.paused || dt <= 0 {
		c.delta = 0
		return 0
	}
	c.delta = dt * c.timeScale
	c.now += c.delta
	return c.delta
}

// Deadline is a cooldown gate: it is ready once the clock reaches At.
type Deadline struct {
	At float64
}

// Ready reports whether now has reached the deadline.
func (d Deadline) Ready(now float64) bool { return now >= d.At }

// Passed reports whether now is strictly past the deadline.
func (d Deadline) Passed(now float64) bool { return now > d.At }

// Arm pushes the deadline to now + wait.
func (d *Deadline) Arm(now, wait float64) { d.At = now + wait }
