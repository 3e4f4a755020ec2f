package system

import (
	"testing"
	"time"

	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/rig"
	"github.com/stretchr/testify/assert"
)

func TestCameraRigSystemDragAndLeave(t *testing.T) {
	h := newHarness(t, NewCameraRigSystem())
	in := h.input()
	in.X, in.Y, in.Inside = 400, 300, true
	h.step(frame)

	theta0, _ := h.rig.Angles()

	h.input().Moved = true
	h.press()
	h.step(frame)
	assert.Equal(t, rig.Dragging, h.rig.State())

	in = h.input()
	in.X += 100
	in.Moved = true
	h.step(frame)
	theta1, _ := h.rig.Angles()
	assert.InDelta(t, theta0-100*h.rig.Config().RotateSpeed, theta1, 1e-9)

	h.input().Inside = false
	h.step(frame)
	assert.Equal(t, rig.Idle, h.rig.State(), "leaving the window ends the drag")
}

func TestCameraRigSystemIdleReset(t *testing.T) {
	h := newHarness(t, NewCameraRigSystem())
	in := h.input()
	in.X, in.Y, in.Inside, in.Moved = 700, 100, true, true
	h.step(frame)
	h.run(30)
	assert.NotEqual(t, h.rig.Config().Base.Position, h.rig.Position(), "parallax moved the camera")

	h.step(time.Second)
	assert.Equal(t, rig.Resetting, h.rig.State())

	h.run(240)
	assert.Equal(t, rig.Idle, h.rig.State())
	assert.InDelta(t, 0, h.rig.Position().Distance(h.rig.Config().Base.Position), 2e-3)
}

type fakeSource struct {
	next  component.Input
	polls int
}

func (s *fakeSource) Poll(prev component.Input) component.Input {
	s.polls++
	out := s.next
	out.Moved = out.X != prev.X || out.Y != prev.Y
	return out
}

func TestInputSystemCopiesSource(t *testing.T) {
	src := &fakeSource{next: component.Input{X: 10, Y: 20, Width: 800, Height: 600, Inside: true}}
	h := newHarness(t, NewInputSystem(src))

	h.step(frame)
	assert.Equal(t, 1, src.polls)
	in := h.input()
	assert.Equal(t, 10.0, in.X)
	assert.True(t, in.Inside)

	NewInputSystem(nil).Update(h.w)
	assert.Equal(t, 1, src.polls)
}
