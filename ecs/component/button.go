package component

import "github.com/milk9111/folio/common"

// Button is a pickable element. Hovered and Clicked drive the depth and scale
// springs; Clicked stays set for the length of the click pulse.
type Button struct {
	Shape  Shape
	Radius float64
	Width  float64
	Height float64

	Disabled bool
	Hovered  bool
	Clicked  bool
	Pulse    common.Deadline

	Depth    float64
	DepthVel float64
	Scale    float64
	ScaleVel float64
}

// Targets returns the depth offset and scale the springs settle on.
func (b *Button) Targets() (depth, scale float64) {
	switch {
	case b.Clicked:
		return -0.03, 0.85
	case b.Hovered:
		return -0.015, 0.9
	default:
		return 0, 1
	}
}

// EffectiveScale is the spring scale, treating an unset spring as rest.
func (b *Button) EffectiveScale() float64 {
	if b.Scale == 0 && b.ScaleVel == 0 {
		return 1
	}
	return b.Scale
}

var ButtonComponent = NewComponent[Button]()
