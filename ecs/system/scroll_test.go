package system

import (
	"testing"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addStack(t *testing.T, h *harness, label string, n int) []ecs.Entity {
	t.Helper()
	anchor := common.V3(0.55, 0.375, 1.5)
	out := make([]ecs.Entity, n)
	for i := range out {
		e := ecs.CreateEntity(h.w)
		require.NoError(t, ecs.Add(h.w, e, component.TransformComponent.Kind(), &component.Transform{Position: anchor, Scale: 1}))
		require.NoError(t, ecs.Add(h.w, e, component.StackItemComponent.Kind(), &component.StackItem{Label: label, Index: i, Anchor: anchor}))
		out[i] = e
	}
	return out
}

func indicator(t *testing.T, h *harness) *component.Indicator {
	_, ind, ok := ecs.Singleton(h.w, component.IndicatorComponent.Kind())
	require.True(t, ok)
	return ind
}

func TestStackedPanelScrollsAndDrivesIndicator(t *testing.T) {
	f := newNavFixture(t, NewPanelScrollSystem(nil), NewIndicatorSystem())
	cards := addStack(t, f.harness, "Experience", 4)

	f.click(f.toggle)
	f.step(frame)
	f.click(f.icons["Experience"])
	f.step(frame)

	sv := f.scrollView()
	assert.Equal(t, "Experience", sv.Label)
	assert.Equal(t, 4, sv.Scroller.Count())
	assert.Equal(t, 4, indicator(t, f.harness).Count)
	assert.Equal(t, 0, indicator(t, f.harness).Active)

	// Not hovered: the wheel is ignored.
	f.input().WheelY = 100
	f.step(frame)
	assert.Equal(t, 0.0, sv.Scroller.Target())

	sv.Scroller.SetHovered(true)
	f.input().WheelY = 100
	f.step(frame)
	f.run(400)

	assert.True(t, sv.Scroller.Settled())
	assert.InDelta(t, 1.0, sv.Scroller.Target(), 1e-9, "momentum coasts then snaps to a card")
	assert.InDelta(t, 1.0, sv.Scroller.Displayed(), 1e-3)

	ind := indicator(t, f.harness)
	assert.Equal(t, 1, ind.Active)
	assert.True(t, ind.DotActive(2))
	assert.False(t, ind.DotActive(1))
	assert.NotEmpty(t, f.eventsOf(ecs.EventActivePanel))

	item := func(e ecs.Entity) (*component.StackItem, *component.Transform) {
		it, _ := ecs.Get(f.w, e, component.StackItemComponent.Kind())
		tr, _ := ecs.Get(f.w, e, component.TransformComponent.Kind())
		return it, tr
	}
	it, tr := item(cards[1])
	assert.True(t, it.Visible)
	assert.InDelta(t, 0.375, tr.Position.Y, 1e-3)
	assert.InDelta(t, 1.5, tr.Position.Z, 1e-3)
	assert.InDelta(t, 1.0, tr.Scale, 1e-3)

	it, tr = item(cards[0])
	assert.True(t, it.Visible)
	assert.InDelta(t, 1.375, tr.Position.Y, 1e-3)
	assert.InDelta(t, 1.35, tr.Position.Z, 1e-3)
	assert.InDelta(t, 0.9, tr.Scale, 1e-3)

	it, _ = item(cards[3])
	assert.False(t, it.Visible)

	f.click(f.back)
	f.step(frame)
	assert.Empty(t, sv.Label)
	assert.Equal(t, 0, sv.Scroller.Count())
	assert.Equal(t, 0, indicator(t, f.harness).Active)
}

func TestReloadedStackResetsScroller(t *testing.T) {
	f := newNavFixture(t, NewPanelScrollSystem(nil), NewIndicatorSystem())
	cards := addStack(t, f.harness, "Experience", 4)

	f.click(f.toggle)
	f.step(frame)
	f.click(f.icons["Experience"])
	f.step(frame)

	sv := f.scrollView()
	sv.Scroller.SetHovered(true)
	f.input().WheelY = 1500
	f.step(frame)
	f.run(400)
	require.Equal(t, 3, sv.Scroller.ActiveIndex())

	// The stack shrinks to two cards.
	ecs.DestroyEntity(f.w, cards[2])
	ecs.DestroyEntity(f.w, cards[3])
	f.reload("panels.yaml")
	f.step(frame)

	assert.Equal(t, "Experience", sv.Label)
	assert.Equal(t, 2, sv.Scroller.Count())
	assert.Equal(t, 0.0, sv.Scroller.Target())
	assert.Equal(t, 2, indicator(t, f.harness).Count)
	assert.Equal(t, 0, indicator(t, f.harness).Active)

	f.input().WheelY = 1500
	f.step(frame)
	f.run(400)
	assert.InDelta(t, 1.0, sv.Scroller.Target(), 1e-9)
	assert.Equal(t, 1, indicator(t, f.harness).Active)

	// The panel disappears altogether.
	delete(f.nav.cfg.Panels, "Experience")
	ecs.DestroyEntity(f.w, cards[0])
	ecs.DestroyEntity(f.w, cards[1])
	f.reload("panels.yaml")
	f.step(frame)

	assert.Equal(t, component.ModeGrid, f.view().Mode)
	assert.Empty(t, sv.Label)
	assert.Equal(t, 0, sv.Scroller.Count())
}

func TestReloadKeepsScrollWhenStackIsUnchanged(t *testing.T) {
	f := newNavFixture(t, NewPanelScrollSystem(nil), NewIndicatorSystem())
	addStack(t, f.harness, "Experience", 4)

	f.click(f.toggle)
	f.step(frame)
	f.click(f.icons["Experience"])
	f.step(frame)

	sv := f.scrollView()
	sv.Scroller.SetHovered(true)
	f.input().WheelY = 500
	f.step(frame)
	f.run(400)
	target := sv.Scroller.Target()
	require.Greater(t, target, 0.0)

	f.reload("icons.yaml")
	f.step(frame)
	assert.Equal(t, target, sv.Scroller.Target())
	assert.Equal(t, component.ModePanel, f.view().Mode)
}

func TestScrollResetsWhenLabelChanges(t *testing.T) {
	var views []component.View
	inject := systemFunc(func(w *ecs.World) {
		for _, v := range views {
			w.Events().Push(ecs.Event{Type: ecs.EventViewChanged, Data: v})
		}
		views = nil
	})
	h := newHarness(t, inject, NewPanelScrollSystem(nil), NewIndicatorSystem())
	addStack(t, h, "Experience", 4)
	addStack(t, h, "Projects", 3)
	sv := h.scrollView()

	views = append(views, component.View{Mode: component.ModePanel, Label: "Experience", Kind: component.PanelStacked})
	h.step(frame)
	sv.Scroller.SetHovered(true)
	h.input().WheelY = 500
	h.step(frame)
	require.Greater(t, sv.Scroller.Target(), 0.0)

	views = append(views, component.View{Mode: component.ModePanel, Label: "Projects", Kind: component.PanelStacked})
	h.step(frame)
	assert.Equal(t, "Projects", sv.Label)
	assert.Equal(t, 3, sv.Scroller.Count())
	assert.Equal(t, 0.0, sv.Scroller.Target())
	assert.Equal(t, 0.0, sv.Scroller.Momentum())
	assert.Equal(t, 3, indicator(t, h).Count)

	views = append(views, component.View{Mode: component.ModePanel, Label: "Resume", Kind: component.PanelText})
	h.step(frame)
	assert.Empty(t, sv.Label)
}

func TestSingleCardStackDoesNotScroll(t *testing.T) {
	var views []component.View
	inject := systemFunc(func(w *ecs.World) {
		for _, v := range views {
			w.Events().Push(ecs.Event{Type: ecs.EventViewChanged, Data: v})
		}
		views = nil
	})
	h := newHarness(t, inject, NewPanelScrollSystem(nil))
	addStack(t, h, "Solo", 1)
	sv := h.scrollView()

	views = append(views, component.View{Mode: component.ModePanel, Label: "Solo", Kind: component.PanelStacked})
	h.step(frame)
	sv.Scroller.SetHovered(true)
	h.input().WheelY = 300
	h.run(30)
	assert.Equal(t, 0.0, sv.Scroller.Target())
	assert.Equal(t, 0.0, sv.Scroller.MaxOffset())
}
