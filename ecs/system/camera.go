package system

import (
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
)

// CameraRigSystem feeds pointer input to the camera rig and advances it one
// frame.
type CameraRigSystem struct {
	inside bool
	lastX  float64
	lastY  float64
}

func NewCameraRigSystem() *CameraRigSystem {
	return &CameraRigSystem{}
}

func (cs *CameraRigSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok || cam.Rig == nil {
		return
	}
	_, input, ok := ecs.Singleton(w, component.InputComponent.Kind())
	if !ok {
		return
	}

	now := w.Now()
	r := cam.Rig

	if cs.inside && !input.Inside {
		r.PointerLeave(now)
	}
	cs.inside = input.Inside

	if input.Pressed && input.Inside {
		r.PointerDown(now, input.X, input.Y)
	}
	if input.Moved && (input.X != cs.lastX || input.Y != cs.lastY) {
		r.PointerMove(now, input.X, input.Y)
	}
	cs.lastX, cs.lastY = input.X, input.Y
	if input.Released {
		r.PointerUp(now)
	}

	ndcX, ndcY := input.NDC()
	r.Update(now, ndcX, ndcY)
}
