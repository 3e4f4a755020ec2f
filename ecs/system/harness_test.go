package system

import (
	"testing"
	"time"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/rig"
	"github.com/milk9111/folio/scroll"
	"github.com/stretchr/testify/require"
)

const frame = time.Second / 60

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }

// harness is a world with the navigation singletons and a camera at its base
// pose. Queued clicks and reloads are pushed before the systems run and every
// event is recorded after them.
type harness struct {
	t       *testing.T
	w       *ecs.World
	now     time.Time
	events  []ecs.Event
	sched   *ecs.Scheduler
	rig     *rig.Rig
	clicks  []ecs.Entity
	reloads []string
}

func newHarness(t *testing.T, systems ...ecs.System) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		w:   ecs.NewWorld(),
		now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		rig: rig.New(rig.DefaultConfig()),
	}

	e := ecs.CreateEntity(h.w)
	require.NoError(t, ecs.Add(h.w, e, component.InputComponent.Kind(), &component.Input{Width: 800, Height: 600}))
	require.NoError(t, ecs.Add(h.w, e, component.ViewComponent.Kind(), &component.View{Mode: component.ModeHome}))
	require.NoError(t, ecs.Add(h.w, e, component.ToastComponent.Kind(), &component.Toast{}))
	require.NoError(t, ecs.Add(h.w, e, component.CameraComponent.Kind(), &component.Camera{Rig: h.rig}))
	require.NoError(t, ecs.Add(h.w, e, component.ScrollViewComponent.Kind(), &component.ScrollView{
		Scroller: scroll.New(scroll.DefaultConfig(), 0),
		Center:   common.V3(0.55, 0.375, 1.5),
		Width:    1.2,
		Height:   0.9,
	}))
	require.NoError(t, ecs.Add(h.w, e, component.IndicatorComponent.Kind(), &component.Indicator{}))

	all := []ecs.System{systemFunc(func(w *ecs.World) {
		for _, e := range h.clicks {
			w.Events().Push(ecs.Event{Type: ecs.EventButtonClicked, Data: e})
		}
		for _, name := range h.reloads {
			w.Events().Push(ecs.Event{Type: ecs.EventContentReloaded, Data: name})
		}
		h.clicks, h.reloads = nil, nil
	})}
	all = append(all, systems...)
	all = append(all, systemFunc(func(w *ecs.World) {
		h.events = append(h.events, w.Events().Drain()...)
	}))
	h.sched = ecs.NewScheduler(all...)
	return h
}

func (h *harness) input() *component.Input {
	_, in, ok := ecs.Singleton(h.w, component.InputComponent.Kind())
	require.True(h.t, ok)
	return in
}

func (h *harness) view() *component.View {
	_, v, ok := ecs.Singleton(h.w, component.ViewComponent.Kind())
	require.True(h.t, ok)
	return v
}

func (h *harness) scrollView() *component.ScrollView {
	_, sv, ok := ecs.Singleton(h.w, component.ScrollViewComponent.Kind())
	require.True(h.t, ok)
	return sv
}

// step advances the clock by d, runs one frame and clears edge-triggered
// input.
func (h *harness) step(d time.Duration) {
	h.now = h.now.Add(d)
	h.w.Clock().Advance(h.now)
	h.sched.Update(h.w)

	in := h.input()
	in.Pressed, in.Released, in.Moved = false, false, false
	in.WheelY = 0
	in.Backspace, in.Enter = false, false
	in.Runes, in.Paste = nil, ""
}

func (h *harness) run(frames int) {
	for i := 0; i < frames; i++ {
		h.step(frame)
	}
}

func (h *harness) eventsOf(t ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, evt := range h.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// reload reports name as reloaded at the start of the next frame.
func (h *harness) reload(name string) {
	h.reloads = append(h.reloads, name)
}

// pointAt moves the pointer onto the projection of p.
func (h *harness) pointAt(p common.Vec3) {
	in := h.input()
	_, cam, _ := ecs.Singleton(h.w, component.CameraComponent.Kind())
	x, y, _, ok := cam.View(in.Width, in.Height).Project(p)
	require.True(h.t, ok)
	in.X, in.Y = x, y
	in.Inside = true
	in.Moved = true
}

func (h *harness) press() {
	in := h.input()
	in.Down, in.Pressed = true, true
}

func (h *harness) release() {
	in := h.input()
	in.Down, in.Released = false, true
}

// click reports e as clicked at the start of the next frame.
func (h *harness) click(e ecs.Entity) {
	h.clicks = append(h.clicks, e)
}

func (h *harness) addButton(pos common.Vec3, scope *component.Scope) ecs.Entity {
	e := ecs.CreateEntity(h.w)
	require.NoError(h.t, ecs.Add(h.w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Scale: 1}))
	require.NoError(h.t, ecs.Add(h.w, e, component.ButtonComponent.Kind(), &component.Button{Shape: component.ShapeDisc, Radius: 0.05, Scale: 1}))
	if scope != nil {
		require.NoError(h.t, ecs.Add(h.w, e, component.ScopeComponent.Kind(), scope))
	}
	return e
}
