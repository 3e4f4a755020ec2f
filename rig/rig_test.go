package rig

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

type harness struct {
	rig *Rig
	now time.Time
}

func newHarness() *harness {
	return &harness{rig: New(DefaultConfig()), now: time.Unix(1000, 0)}
}

func (h *harness) step(n int, ndcX, ndcY float64) {
	for i := 0; i < n; i++ {
		h.now = h.now.Add(frame)
		h.rig.Update(h.now, ndcX, ndcY)
	}
}

func TestStartsAtBasePose(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()

	assert.Equal(t, Idle, h.rig.State())
	assert.InDelta(t, 0, h.rig.Position().Distance(cfg.Base.Position), 1e-9)
	assert.Equal(t, cfg.Base.LookAt, h.rig.LookAt())
}

func TestDragOrbitsAroundLookAt(t *testing.T) {
	h := newHarness()
	theta0, phi0 := h.rig.Angles()
	radius := h.rig.Position().Distance(h.rig.LookAt())

	h.rig.PointerDown(h.now, 100, 100)
	require.Equal(t, Dragging, h.rig.State())
	h.rig.PointerMove(h.now, 150, 130)

	theta, phi := h.rig.Angles()
	assert.InDelta(t, theta0-0.25, theta, 1e-9)
	assert.InDelta(t, phi0-0.15, phi, 1e-9)
	assert.InDelta(t, radius, h.rig.Position().Distance(h.rig.LookAt()), 1e-9)

	// Frames while dragging do not ease the camera away from the orbit.
	pos := h.rig.Position()
	h.step(5, 0.7, -0.4)
	assert.Equal(t, pos, h.rig.Position())
}

func TestPhiStaysAwayFromPoles(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))

	h.rig.PointerDown(h.now, 0, 0)
	x, y := 0.0, 0.0
	for i := 0; i < 2000; i++ {
		x += rng.Float64()*400 - 200
		y += rng.Float64()*400 - 200
		h.rig.PointerMove(h.now, x, y)

		_, phi := h.rig.Angles()
		require.GreaterOrEqual(t, phi, cfg.PhiMargin)
		require.LessOrEqual(t, phi, math.Pi-cfg.PhiMargin)
	}
}

func TestReleaseKeepsOrbitedPose(t *testing.T) {
	h := newHarness()

	h.rig.PointerDown(h.now, 0, 0)
	h.rig.PointerMove(h.now, 80, 0)
	h.rig.PointerUp(h.now)
	require.Equal(t, Idle, h.rig.State())
	assert.True(t, h.rig.IdlePending())

	released := h.rig.Position()
	// Pointer resting at the center keeps the rig at the released pose.
	h.step(30, 0, 0)
	assert.InDelta(t, 0, h.rig.Position().Distance(released), 1e-6)
}

func TestParallaxEasesTowardOffsetTarget(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()

	h.step(1, 1, 1)
	want := cfg.Base.Position
	want.X -= cfg.MaxOffset
	want.Y -= cfg.MaxOffset
	assert.InDelta(t, 0, h.rig.Target().Distance(want), 1e-9)

	// One frame moves by the ease fraction only.
	moved := h.rig.Position().Distance(cfg.Base.Position)
	assert.InDelta(t, cfg.Ease*cfg.Base.Position.Distance(want), moved, 1e-9)

	// Holding the pointer still converges on the offset target.
	h.step(int(cfg.IdleDelay/frame)-2, 1, 1)
	assert.Less(t, h.rig.Position().Distance(want), 1e-3)
}

func TestIdleResetReturnsToBasePose(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()

	h.rig.PointerDown(h.now, 0, 0)
	h.rig.PointerMove(h.now, 120, -60)
	h.rig.PointerUp(h.now)
	h.step(10, 0.5, 0.5)

	// No input for the idle delay starts the reset.
	h.step(int(cfg.IdleDelay/frame)+1, 0.5, 0.5)
	require.Equal(t, Resetting, h.rig.State())

	for i := 0; i < 600 && h.rig.State() == Resetting; i++ {
		h.step(1, 0.5, 0.5)
	}
	require.Equal(t, Idle, h.rig.State())
	assert.Less(t, h.rig.Position().Distance(cfg.Base.Position), cfg.Epsilon)

	// Without new movement the rig stays at the base pose.
	h.step(120, 0.5, 0.5)
	assert.Less(t, h.rig.Position().Distance(cfg.Base.Position), cfg.Epsilon)
}

func TestHoverCancelsReset(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()

	h.step(1, 0.3, 0)
	h.step(int(cfg.IdleDelay/frame)+1, 0.3, 0)
	require.Equal(t, Resetting, h.rig.State())

	h.step(1, -0.3, 0)
	assert.Equal(t, Idle, h.rig.State())
	assert.True(t, h.rig.IdlePending())
}

func TestPressCancelsReset(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()

	h.step(1, 0.3, 0)
	h.step(int(cfg.IdleDelay/frame)+1, 0.3, 0)
	require.Equal(t, Resetting, h.rig.State())

	h.rig.PointerDown(h.now, 10, 10)
	assert.Equal(t, Dragging, h.rig.State())
	assert.False(t, h.rig.IdlePending())

	// A long drag never triggers a reset.
	h.step(300, 0.3, 0)
	assert.Equal(t, Dragging, h.rig.State())
}

func TestPressDuringResetOrbitsFromCurrentPose(t *testing.T) {
	h := newHarness()
	cfg := DefaultConfig()

	h.rig.PointerDown(h.now, 0, 0)
	h.rig.PointerMove(h.now, 300, -120)
	h.rig.PointerUp(h.now)
	h.step(int(cfg.IdleDelay/frame)+1, 0, 0)
	require.Equal(t, Resetting, h.rig.State())
	h.step(10, 0, 0)
	require.Equal(t, Resetting, h.rig.State())
	mid := h.rig.Position()

	// A zero-length move after the press must not snap back to the old drag.
	h.rig.PointerDown(h.now, 50, 50)
	h.rig.PointerMove(h.now, 50, 50)
	assert.InDelta(t, 0, h.rig.Position().Distance(mid), 1e-6)

	h.rig.PointerMove(h.now, 52, 50)
	assert.Less(t, h.rig.Position().Distance(mid), 0.05)
}

func TestPointerLeaveEndsDrag(t *testing.T) {
	h := newHarness()

	h.rig.PointerDown(h.now, 0, 0)
	h.rig.PointerMove(h.now, 40, 0)
	h.rig.PointerLeave(h.now)

	assert.Equal(t, Idle, h.rig.State())
	assert.False(t, h.rig.IdlePending())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "resetting", Resetting.String())
	assert.Equal(t, "unknown", State(9).String())
}
