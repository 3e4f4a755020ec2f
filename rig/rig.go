// Package rig drives the scene camera: hover parallax around a resting pose,
// drag-to-orbit around a fixed look-at point, and an eased return to the base
// pose once the pointer has been idle for a while.
package rig

import (
	"math"
	"time"

	"github.com/milk9111/folio/common"
)

type State int

const (
	Idle State = iota
	Dragging
	Resetting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Pose is a camera position looking at a fixed point.
type Pose struct {
	Position common.Vec3
	LookAt   common.Vec3
}

type Config struct {
	Base Pose
	// FOV is the vertical field of view in degrees.
	FOV float64
	// MaxOffset bounds the parallax displacement on each axis.
	MaxOffset float64
	Ease      float64
	ResetEase float64
	// RotateSpeed is radians of orbit per pixel dragged.
	RotateSpeed float64
	// PhiMargin keeps the polar angle inside [PhiMargin, Pi-PhiMargin].
	PhiMargin float64
	IdleDelay time.Duration
	Epsilon   float64
	// PointerEpsilon is the smallest normalized pointer change that counts
	// as hover movement.
	PointerEpsilon float64
}

func DefaultConfig() Config {
	return Config{
		Base: Pose{
			Position: common.V3(0.4, 0.5, 3.6),
			LookAt:   common.V3(0.5, 0, 0),
		},
		FOV:            40,
		MaxOffset:      0.1,
		Ease:           0.1,
		ResetEase:      0.12,
		RotateSpeed:    0.005,
		PhiMargin:      0.1,
		IdleDelay:      time.Second,
		Epsilon:        0.001,
		PointerEpsilon: 0.001,
	}
}

type Rig struct {
	cfg Config

	state     State
	spherical common.Spherical
	base      common.Spherical

	position common.Vec3
	current  common.Vec3
	target   common.Vec3

	idle      common.Deadline
	lastInput time.Time

	dragX, dragY float64
	pointerX     float64
	pointerY     float64
	parallax     bool
}

func New(cfg Config) *Rig {
	r := &Rig{cfg: cfg}
	r.spherical = common.SphericalFromVec3(cfg.Base.Position.Sub(cfg.Base.LookAt))
	r.base = r.spherical
	r.position = cfg.Base.Position
	r.current = cfg.Base.Position
	r.target = cfg.Base.Position
	return r
}

func (r *Rig) Config() Config        { return r.cfg }
func (r *Rig) State() State          { return r.state }
func (r *Rig) Position() common.Vec3 { return r.position }
func (r *Rig) LookAt() common.Vec3   { return r.cfg.Base.LookAt }
func (r *Rig) Target() common.Vec3   { return r.target }
func (r *Rig) LastInput() time.Time  { return r.lastInput }
func (r *Rig) IdlePending() bool     { return r.idle.Pending() }

// Angles returns the current orbit (theta, phi).
func (r *Rig) Angles() (theta, phi float64) {
	return r.spherical.Theta, r.spherical.Phi
}

// PointerDown starts a drag at pixel (x, y). Only the primary button orbits.
func (r *Rig) PointerDown(now time.Time, x, y float64) {
	if r.state == Resetting {
		// Orbit from where the reset left the camera, not from the pre-reset drag.
		r.spherical = common.SphericalFromVec3(r.position.Sub(r.cfg.Base.LookAt))
		r.spherical.Phi = r.clampPhi(r.spherical.Phi)
	}
	r.state = Dragging
	r.dragX, r.dragY = x, y
	r.idle.Cancel()
	r.lastInput = now
}

// PointerUp ends a drag; the released pose becomes the new parallax base.
func (r *Rig) PointerUp(now time.Time) {
	if r.state != Dragging {
		return
	}
	r.release()
	r.idle.Arm(now, r.cfg.IdleDelay)
}

// PointerLeave ends any drag and stops the idle countdown.
func (r *Rig) PointerLeave(now time.Time) {
	if r.state == Dragging {
		r.release()
	}
	r.idle.Cancel()
}

// PointerMove handles a raw move event at pixel (x, y).
func (r *Rig) PointerMove(now time.Time, x, y float64) {
	r.lastInput = now
	r.idle.Arm(now, r.cfg.IdleDelay)

	if r.state != Dragging {
		return
	}
	dx := x - r.dragX
	dy := y - r.dragY
	r.dragX, r.dragY = x, y

	r.spherical.Theta -= dx * r.cfg.RotateSpeed
	r.spherical.Phi = r.clampPhi(r.spherical.Phi - dy*r.cfg.RotateSpeed)
	r.position = r.cfg.Base.LookAt.Add(r.spherical.Vec3())
}

// Update advances one frame. ndcX and ndcY are the pointer position
// normalized to [-1, 1] with +Y up.
func (r *Rig) Update(now time.Time, ndcX, ndcY float64) {
	if r.idle.Fired(now) && r.state != Dragging {
		r.beginReset()
	}
	if r.state == Dragging {
		return
	}

	moved := math.Abs(ndcX-r.pointerX) > r.cfg.PointerEpsilon ||
		math.Abs(ndcY-r.pointerY) > r.cfg.PointerEpsilon
	r.pointerX, r.pointerY = ndcX, ndcY

	if moved {
		r.lastInput = now
		r.idle.Arm(now, r.cfg.IdleDelay)
		r.parallax = true
		if r.state == Resetting {
			r.state = Idle
		}
	}

	if r.state == Resetting {
		r.current = r.current.Lerp(r.target, r.cfg.ResetEase)
		r.position = r.current
		if r.current.Distance(r.target) < r.cfg.Epsilon {
			r.spherical = common.SphericalFromVec3(r.position.Sub(r.cfg.Base.LookAt))
			r.state = Idle
		}
		return
	}

	basePos := r.cfg.Base.LookAt.Add(r.base.Vec3())
	r.target = basePos
	if r.parallax {
		r.target = common.V3(
			basePos.X-common.Clamp(ndcX, -1, 1)*r.cfg.MaxOffset,
			basePos.Y-common.Clamp(ndcY, -1, 1)*r.cfg.MaxOffset,
			basePos.Z,
		)
	}
	r.current = r.current.Lerp(r.target, r.cfg.Ease)
	r.position = r.current
}

func (r *Rig) release() {
	r.state = Idle
	r.base = r.spherical
	r.current = r.position
	r.target = r.position
}

func (r *Rig) beginReset() {
	r.state = Resetting
	r.parallax = false
	r.base = common.SphericalFromVec3(r.cfg.Base.Position.Sub(r.cfg.Base.LookAt))
	r.target = r.cfg.Base.Position
}

func (r *Rig) clampPhi(phi float64) float64 {
	return common.Clamp(phi, r.cfg.PhiMargin, math.Pi-r.cfg.PhiMargin)
}
