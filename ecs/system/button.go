package system

import (
	"github.com/charmbracelet/harmonica"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
)

// Button springs settle like a tension 300 / friction 20 spring.
const (
	buttonFrequency = 17.32
	buttonDamping   = 0.58
)

// ButtonSystem ends click pulses and animates button depth and scale toward
// their hover/click targets.
type ButtonSystem struct {
	spring harmonica.Spring
}

func NewButtonSystem() *ButtonSystem {
	return &ButtonSystem{spring: harmonica.NewSpring(harmonica.FPS(60), buttonFrequency, buttonDamping)}
}

func (bs *ButtonSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()

	ecs.ForEach(w, component.ButtonComponent.Kind(), func(e ecs.Entity, b *component.Button) {
		if b.Pulse.Fired(now) {
			b.Clicked = false
		}
		if !Shown(w, e) {
			b.Hovered = false
			b.Clicked = false
			b.Pulse.Cancel()
		}
		if b.Scale == 0 && b.ScaleVel == 0 {
			b.Scale = 1
		}

		depth, scale := b.Targets()
		b.Depth, b.DepthVel = bs.spring.Update(b.Depth, b.DepthVel, depth)
		b.Scale, b.ScaleVel = bs.spring.Update(b.Scale, b.ScaleVel, scale)
	})
}
