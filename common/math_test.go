package common

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphericalRoundTrip(t *testing.T) {
	cases := []Vec3{
		V3(-0.1, 0.5, 3.6),
		V3(1, 1, 1),
		V3(0, -2, 0.5),
	}
	for _, v := range cases {
		got := SphericalFromVec3(v).Vec3()
		assert.InDelta(t, v.X, got.X, 1e-9)
		assert.InDelta(t, v.Y, got.Y, 1e-9)
		assert.InDelta(t, v.Z, got.Z, 1e-9)
	}
}

func TestSphericalConvention(t *testing.T) {
	s := SphericalFromVec3(V3(0, 0, 2))
	assert.InDelta(t, 2, s.Radius, 1e-9)
	assert.InDelta(t, math.Pi/2, s.Phi, 1e-9)
	assert.InDelta(t, 0, s.Theta, 1e-9)

	s = SphericalFromVec3(V3(0, 3, 0))
	assert.InDelta(t, 0, s.Phi, 1e-9)
}

func TestVec3Lerp(t *testing.T) {
	got := V3(0, 0, 0).Lerp(V3(10, -10, 2), 0.1)
	assert.InDelta(t, 1, got.X, 1e-12)
	assert.InDelta(t, -1, got.Y, 1e-12)
	assert.InDelta(t, 0.2, got.Z, 1e-12)
	assert.InDelta(t, 5, V3(0, 0, 0).Distance(V3(3, 4, 0)), 1e-12)
}

func TestDeadline(t *testing.T) {
	var d Deadline
	now := time.Unix(0, 0)
	require.False(t, d.Fired(now))

	d.Arm(now, 150*time.Millisecond)
	require.True(t, d.Pending())
	require.False(t, d.Fired(now.Add(149*time.Millisecond)))

	d.Arm(now.Add(100*time.Millisecond), 150*time.Millisecond)
	require.False(t, d.Fired(now.Add(200*time.Millisecond)), "re-arming must replace the earlier deadline")
	require.True(t, d.Fired(now.Add(250*time.Millisecond)))
	require.False(t, d.Fired(now.Add(300*time.Millisecond)), "fires once")

	d.Arm(now, time.Millisecond)
	d.Cancel()
	require.False(t, d.Fired(now.Add(time.Second)))
}

func TestViewProjectCenterAndRay(t *testing.T) {
	v := View{Eye: V3(0, 0, 5), Target: V3(0, 0, 0), FOV: 40, Width: 1280, Height: 720}

	x, y, depth, ok := v.Project(V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 640, x, 1e-9)
	assert.InDelta(t, 360, y, 1e-9)
	assert.InDelta(t, 5, depth, 1e-9)

	// A point above the target lands above screen center.
	_, y, _, ok = v.Project(V3(0, 1, 0))
	require.True(t, ok)
	assert.Less(t, y, 360.0)

	_, _, _, ok = v.Project(V3(0, 0, 6))
	assert.False(t, ok)

	px, py, _, _ := v.Project(V3(0.3, -0.2, 1))
	ray := v.Ray(px, py)
	want := V3(0.3, -0.2, 1).Sub(v.Eye).Normalize()
	assert.InDelta(t, 0, ray.Distance(want), 1e-9)
}

func TestViewNDC(t *testing.T) {
	v := View{Width: 200, Height: 100}
	x, y := v.NDC(0, 0)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 1.0, y)
	x, y = v.NDC(100, 50)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}
