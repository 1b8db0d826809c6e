package motor

// Config tunes the player motor. Zero fields fall back to DefaultConfig values
// through Normalize.
type Config struct {
	MoveSpeed           float64 `yaml:"move_speed"`
	DashMultiplier      float64 `yaml:"dash_multiplier"`
	DashTime            float64 `yaml:"dash_time"`
	DashCooldown        float64 `yaml:"dash_cooldown"`
	Gravity             float64 `yaml:"gravity"`
	SpeedSmoothTime     float64 `yaml:"speed_smooth_time"`
	RotationSmoothTime  float64 `yaml:"rotation_smooth_time"`
	SkinWidth           float64 `yaml:"skin_width"`
	SlopeLimit          float64 `yaml:"slope_limit"`
	GroundCheckDistance float64 `yaml:"ground_check_distance"`
	SlopeProbeDistance  float64 `yaml:"slope_probe_distance"`
	Radius              float64 `yaml:"radius"`
	Height              float64 `yaml:"height"`
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:           5.9,
		DashMultiplier:      2.7,
		DashTime:            0.25,
		DashCooldown:        0.4,
		Gravity:             -20,
		SpeedSmoothTime:     0.05,
		RotationSmoothTime:  0.07,
		SkinWidth:           0.08,
		SlopeLimit:          45,
		GroundCheckDistance: 0.1,
		SlopeProbeDistance:  100,
		Radius:              0.5,
		Height:              2,
	}
}

// Normalize fills zero fields from DefaultConfig. DashCooldown may legitimately
// be zero and is only defaulted when negative.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.MoveSpeed, d.MoveSpeed)
	fill(&c.DashMultiplier, d.DashMultiplier)
	fill(&c.DashTime, d.DashTime)
	fill(&c.Gravity, d.Gravity)
	fill(&c.SpeedSmoothTime, d.SpeedSmoothTime)
	fill(&c.RotationSmoothTime, d.RotationSmoothTime)
	fill(&c.SkinWidth, d.SkinWidth)
	fill(&c.SlopeLimit, d.SlopeLimit)
	fill(&c.GroundCheckDistance, d.GroundCheckDistance)
	fill(&c.SlopeProbeDistance, d.SlopeProbeDistance)
	fill(&c.Radius, d.Radius)
	fill(&c.Height, d.Height)
	if c.DashCooldown < 0 {
		c.DashCooldown = d.DashCooldown
	}
	return c
}
