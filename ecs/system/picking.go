package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
)

// ClickPulse is how long a button stays in its clicked state.
const ClickPulse = 150 * time.Millisecond

// PickingSystem projects every visible button to the screen, finds the one
// under the pointer with a chipmunk point query and turns press/release pairs
// into EventButtonClicked. It also marks whether the pointer is over the
// scroll region.
type PickingSystem struct {
	space   *cp.Space
	pressed ecs.Entity
	hovered ecs.Entity
}

func NewPickingSystem() *PickingSystem {
	return &PickingSystem{}
}

// Hovered returns the button under the pointer after the last update.
func (ps *PickingSystem) Hovered() ecs.Entity {
	return ps.hovered
}

func (ps *PickingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, input, ok := ecs.Singleton(w, component.InputComponent.Kind())
	if !ok {
		return
	}
	_, cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	view := cam.View(input.Width, input.Height)

	ps.rebuild(w, view)

	ps.hovered = 0
	if input.Inside {
		info := ps.space.PointQueryNearest(cp.Vector{X: input.X, Y: input.Y}, 0, cp.SHAPE_FILTER_ALL)
		if info.Shape != nil {
			if e, ok := info.Shape.UserData.(ecs.Entity); ok {
				ps.hovered = e
			}
		}
	}

	ecs.ForEach(w, component.ButtonComponent.Kind(), func(e ecs.Entity, b *component.Button) {
		b.Hovered = e == ps.hovered && !b.Disabled
	})

	if input.Pressed {
		ps.pressed = ps.hovered
	}
	if input.Released {
		if ps.pressed != 0 && ps.pressed == ps.hovered {
			ps.click(w, ps.pressed)
		}
		ps.pressed = 0
	}

	ecs.ForEach(w, component.ScrollViewComponent.Kind(), func(e ecs.Entity, sv *component.ScrollView) {
		if sv.Scroller == nil {
			return
		}
		sv.Scroller.SetHovered(input.Inside && Shown(w, e) && regionContains(view, sv, input.X, input.Y))
	})
}

func (ps *PickingSystem) click(w *ecs.World, e ecs.Entity) {
	b, ok := ecs.Get(w, e, component.ButtonComponent.Kind())
	if !ok || b.Disabled {
		return
	}
	b.Clicked = true
	b.Pulse.Arm(w.Now(), ClickPulse)
	w.Events().Push(ecs.Event{Type: ecs.EventButtonClicked, Data: e})
}

// rebuild replaces the query space with this frame's projected buttons.
func (ps *PickingSystem) rebuild(w *ecs.World, view common.View) {
	ps.space = cp.NewSpace()

	ecs.ForEach2(w, component.ButtonComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Button, t *component.Transform) {
		if b.Disabled || !Shown(w, e) {
			return
		}
		x, y, depth, ok := view.Project(t.Position)
		if !ok {
			return
		}
		ppu := view.PixelsPerUnit(depth) * t.EffectiveScale()

		var shape *cp.Shape
		switch b.Shape {
		case component.ShapeDisc:
			shape = cp.NewCircle(ps.space.StaticBody, b.Radius*ppu, cp.Vector{X: x, Y: y})
		default:
			hw := b.Width * ppu / 2
			hh := b.Height * ppu / 2
			shape = cp.NewBox2(ps.space.StaticBody, cp.BB{L: x - hw, B: y - hh, R: x + hw, T: y + hh}, 0)
		}
		shape.UserData = e
		ps.space.AddShape(shape)
	})
}

func regionContains(view common.View, sv *component.ScrollView, px, py float64) bool {
	hw, hh := sv.Width/2, sv.Height/2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4]common.Vec3{
		sv.Center.Add(common.V3(-hw, -hh, 0)),
		sv.Center.Add(common.V3(hw, -hh, 0)),
		sv.Center.Add(common.V3(hw, hh, 0)),
		sv.Center.Add(common.V3(-hw, hh, 0)),
	} {
		x, y, _, ok := view.Project(c)
		if !ok {
			return false
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return px >= minX && px <= maxX && py >= minY && py <= maxY
}

// Shown reports whether e is visible in the current view. Entities without a
// scope are always shown.
func Shown(w *ecs.World, e ecs.Entity) bool {
	s, ok := ecs.Get(w, e, component.ScopeComponent.Kind())
	if !ok {
		return true
	}
	return s.Shown
}
