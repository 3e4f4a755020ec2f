// Package scroll turns wheel input into a carousel-style offset over an
// ordered stack of panels: wheel deltas nudge the target and feed a
// momentum accumulator, momentum coasts and decays every frame, and once it
// dies out the target settles on the nearest panel. The displayed offset
// chases the target through a critically damped spring.
package scroll

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/milk9111/folio/common"
)

type Config struct {
	// Sensitivity converts wheel pixels into offset units.
	Sensitivity float64
	// MomentumShare is the fraction of each wheel delta fed into momentum.
	MomentumShare float64
	MaxMomentum   float64
	// Friction is the per-frame multiplicative momentum decay (< 1).
	Friction    float64
	MinVelocity float64
	Spacing     float64
	// DepthOffset is how far panels recede in Z while they are not centered.
	DepthOffset  float64
	ScaleFalloff float64

	WheelSnapDelay time.Duration
	CoastSnapDelay time.Duration

	SpringFrequency float64
	SpringDamping   float64
	FPS             int
}

func DefaultConfig() Config {
	return Config{
		Sensitivity:     0.002,
		MomentumShare:   0.5,
		MaxMomentum:     0.1,
		Friction:        0.92,
		MinVelocity:     0.001,
		Spacing:         1.0,
		DepthOffset:     0.15,
		ScaleFalloff:    0.1,
		WheelSnapDelay:  200 * time.Millisecond,
		CoastSnapDelay:  150 * time.Millisecond,
		SpringFrequency: math.Sqrt(280),
		SpringDamping:   1.0,
		FPS:             60,
	}
}

// PanelPose is where a panel sits relative to the stack origin.
type PanelPose struct {
	Y       float64
	Z       float64
	Scale   float64
	Visible bool
}

type Scroller struct {
	cfg    Config
	spring harmonica.Spring

	count    int
	target   float64
	current  float64
	velocity float64
	momentum float64

	hovered bool
	settled bool
	snap    common.Deadline

	active   int
	onActive func(int)
}

func New(cfg Config, panelCount int) *Scroller {
	if cfg.Spacing <= 0 {
		cfg.Spacing = 1
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	s := &Scroller{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.SpringFrequency, cfg.SpringDamping),
	}
	s.Reset(panelCount)
	return s
}

// OnActiveChange registers fn to be told whenever the active index changes.
func (s *Scroller) OnActiveChange(fn func(int)) {
	s.onActive = fn
}

// Reset discards all motion and pending snaps for a new panel set.
func (s *Scroller) Reset(panelCount int) {
	if panelCount < 0 {
		panelCount = 0
	}
	s.count = panelCount
	s.current = 0
	s.velocity = 0
	s.momentum = 0
	s.settled = true
	s.snap.Cancel()
	s.setTarget(0, true)
}

// SetHovered records whether the pointer is over the scroll region.
func (s *Scroller) SetHovered(hovered bool) {
	s.hovered = hovered
}

func (s *Scroller) Hovered() bool {
	return s.hovered
}

// OnScroll applies one wheel event and reports whether it was consumed.
func (s *Scroller) OnScroll(now time.Time, deltaY float64) bool {
	if !s.hovered || s.MaxOffset() == 0 || deltaY == 0 {
		return false
	}
	delta := deltaY * s.cfg.Sensitivity

	s.momentum = common.Clamp(s.momentum+delta*s.cfg.MomentumShare, -s.cfg.MaxMomentum, s.cfg.MaxMomentum)
	s.setTarget(common.Clamp(s.target+delta, 0, s.MaxOffset()), false)

	s.settled = false
	s.snap.Arm(now, s.cfg.WheelSnapDelay)
	return true
}

// Update advances one frame.
func (s *Scroller) Update(now time.Time) {
	if math.Abs(s.momentum) > s.cfg.MinVelocity {
		next := s.target + s.momentum
		clamped := common.Clamp(next, 0, s.MaxOffset())
		if clamped != next {
			s.momentum = 0
		}
		s.setTarget(clamped, false)
		s.momentum *= s.cfg.Friction
		s.snap.Cancel()
		s.settled = false
	} else {
		switch {
		case s.snap.Fired(now):
			s.setTarget(s.nearest(s.target), false)
			s.settled = true
		case !s.snap.Pending() && !s.settled:
			s.snap.Arm(now, s.cfg.CoastSnapDelay)
		}
	}

	s.current, s.velocity = s.spring.Update(s.current, s.velocity, s.target)
}

func (s *Scroller) MaxOffset() float64 {
	if s.count <= 1 {
		return 0
	}
	return float64(s.count-1) * s.cfg.Spacing
}

func (s *Scroller) Target() float64    { return s.target }
func (s *Scroller) Displayed() float64 { return s.current }
func (s *Scroller) Momentum() float64  { return s.momentum }
func (s *Scroller) Count() int         { return s.count }
func (s *Scroller) ActiveIndex() int   { return s.active }
func (s *Scroller) SnapPending() bool  { return s.snap.Pending() }

// Settled reports that motion has stopped and the target rests on a panel.
func (s *Scroller) Settled() bool {
	return s.settled && math.Abs(s.momentum) <= s.cfg.MinVelocity
}

// Pose lays out panel i against the displayed offset.
func (s *Scroller) Pose(i int) PanelPose {
	spacing := s.cfg.Spacing
	offset := s.current
	start := float64(i) * spacing
	end := float64(i+1) * spacing

	z := -s.cfg.DepthOffset
	if offset >= start && offset <= end {
		z = -s.cfg.DepthOffset * (offset - start) / spacing
	}
	scale := 1.0
	if s.cfg.DepthOffset > 0 {
		scale = 1 - (math.Abs(z)/s.cfg.DepthOffset)*s.cfg.ScaleFalloff
	}

	d := i - s.active
	return PanelPose{
		Y:       -start + offset,
		Z:       z,
		Scale:   scale,
		Visible: d >= -1 && d <= 1,
	}
}

func (s *Scroller) nearest(offset float64) float64 {
	best := 0
	bestDist := math.Inf(1)
	for i := 0; i < s.count; i++ {
		if d := math.Abs(offset - float64(i)*s.cfg.Spacing); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return common.Clamp(float64(best)*s.cfg.Spacing, 0, s.MaxOffset())
}

func (s *Scroller) setTarget(v float64, force bool) {
	s.target = v
	idx := 0
	if s.count > 0 {
		idx = common.ClampInt(int(math.Round(v/s.cfg.Spacing)), 0, s.count-1)
	}
	if idx == s.active && !force {
		return
	}
	s.active = idx
	if s.onActive != nil {
		s.onActive(idx)
	}
}
