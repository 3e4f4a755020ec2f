package system

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/scroll"
	"go.uber.org/zap"
)

// PanelScrollSystem drives the scroller of the open stacked panel and lays
// its cards out from the displayed offset.
type PanelScrollSystem struct {
	logger *zap.Logger
	bound  *scroll.Scroller
}

func NewPanelScrollSystem(logger *zap.Logger) *PanelScrollSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PanelScrollSystem{logger: logger}
}

func (ps *PanelScrollSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, sv, ok := ecs.Singleton(w, component.ScrollViewComponent.Kind())
	if !ok || sv.Scroller == nil {
		return
	}
	ps.bind(w, sv.Scroller)

	for _, evt := range w.Events().Of(ecs.EventViewChanged) {
		view, ok := evt.Data.(component.View)
		if !ok {
			continue
		}
		ps.onViewChanged(w, sv, view)
	}
	if sv.Label != "" && len(w.Events().Of(ecs.EventContentReloaded)) > 0 {
		ps.recount(w, sv)
	}

	if sv.Label == "" {
		return
	}

	now := w.Now()
	if _, input, ok := ecs.Singleton(w, component.InputComponent.Kind()); ok && input.WheelY != 0 {
		sv.Scroller.OnScroll(now, input.WheelY)
	}
	sv.Scroller.Update(now)

	ecs.ForEach2(w, component.StackItemComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, item *component.StackItem, t *component.Transform) {
		if item.Label != sv.Label {
			item.Visible = false
			return
		}
		pose := sv.Scroller.Pose(item.Index)
		t.Position = item.Anchor.Add(common.V3(0, pose.Y, pose.Z))
		t.Scale = pose.Scale
		item.Visible = pose.Visible
	})
}

func (ps *PanelScrollSystem) bind(w *ecs.World, s *scroll.Scroller) {
	if ps.bound == s {
		return
	}
	ps.bound = s
	s.OnActiveChange(func(i int) {
		w.Events().Push(ecs.Event{Type: ecs.EventActivePanel, Data: i})
	})
}

func (ps *PanelScrollSystem) onViewChanged(w *ecs.World, sv *component.ScrollView, view component.View) {
	if view.Mode != component.ModePanel || view.Kind != component.PanelStacked {
		if sv.Label != "" {
			sv.Scroller.Reset(0)
			sv.Label = ""
		}
		return
	}
	if view.Label == sv.Label {
		return
	}

	count := stackSize(w, view.Label)
	sv.Label = view.Label
	sv.Scroller.Reset(count)
	ps.logger.Debug("stacked panel opened", zap.String("label", view.Label), zap.Int("cards", count))
}

// recount restarts the scroller when reloaded content changed the number of
// cards in the open stack.
func (ps *PanelScrollSystem) recount(w *ecs.World, sv *component.ScrollView) {
	count := stackSize(w, sv.Label)
	if count == sv.Scroller.Count() {
		return
	}
	sv.Scroller.Reset(count)
	ps.logger.Debug("stacked panel reloaded", zap.String("label", sv.Label), zap.Int("cards", count))
}

func stackSize(w *ecs.World, label string) int {
	count := 0
	ecs.ForEach(w, component.StackItemComponent.Kind(), func(_ ecs.Entity, item *component.StackItem) {
		if item.Label == label {
			count++
		}
	})
	return count
}

// IndicatorSystem keeps the page dots in step with the scroller.
type IndicatorSystem struct{}

func NewIndicatorSystem() *IndicatorSystem {
	return &IndicatorSystem{}
}

func (is *IndicatorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, ind, ok := ecs.Singleton(w, component.IndicatorComponent.Kind())
	if !ok {
		return
	}
	if _, sv, ok := ecs.Singleton(w, component.ScrollViewComponent.Kind()); ok && sv.Scroller != nil {
		ind.Count = sv.Scroller.Count()
	}
	for _, evt := range w.Events().Of(ecs.EventActivePanel) {
		if i, ok := evt.Data.(int); ok {
			ind.Active = i
		}
	}
}
