package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSmoothDampConverges(t *testing.T) {
	var vel float64
	x := 0.0
	for i := 0; i < 60; i++ {
		x = SmoothDamp(x, 5.9, &vel, 0.05, 1.0/60)
	}
	assert.InDelta(t, 5.9, x, 1e-3)
}

func TestSmoothDampNeverOvershoots(t *testing.T) {
	var vel float64
	x := 0.0
	for i := 0; i < 200; i++ {
		x = SmoothDamp(x, 1, &vel, 0.05, 0.1)
		if x > 1+1e-12 {
			t.Fatalf("overshoot at step %d: %f", i, x)
		}
	}
}

func TestSmoothDampZeroDelta(t *testing.T) {
	var vel float64
	assert.Equal(t, 3.0, SmoothDamp(3, 10, &vel, 0.05, 0))
}

func TestDeltaAngleWraps(t *testing.T) {
	assert.InDelta(t, 20.0, DeltaAngle(350, 10), 1e-9)
	assert.InDelta(t, -20.0, DeltaAngle(10, 350), 1e-9)
	assert.InDelta(t, 180.0, DeltaAngle(0, 180), 1e-9)
}

func TestSmoothDampAngleTakesShortWay(t *testing.T) {
	var vel float64
	a := SmoothDampAngle(350, 10, &vel, 0.07, 1.0/60)
	if a < 350 {
		t.Errorf("expected rotation through 360, got %f", a)
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 0.5, Round1(0.46))
	assert.Equal(t, 0.4, Round1(0.44))
	assert.Equal(t, 1.0, Round1(0.96))
}

func TestNormalizedMagnitude(t *testing.T) {
	assert.Equal(t, 0.0, NormalizedMagnitude(mgl64.Vec3{}))
	assert.InDelta(t, 1.0, NormalizedMagnitude(mgl64.Vec3{0.01, 0, 3}), 1e-9)
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float64{0, 45, 90, -90, 135} {
		f := Forward(yaw)
		assert.InDelta(t, yaw, YawOf(f[0], f[2]), 1e-9)
	}
	assert.InDelta(t, 90.0, YawTowards(mgl64.Vec3{}, mgl64.Vec3{2, 0, 0}), 1e-9)
	assert.False(t, math.IsNaN(SafeNormalize(mgl64.Vec3{}).Len()))
}
