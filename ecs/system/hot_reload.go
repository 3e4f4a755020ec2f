package system

import (
	"path/filepath"

	"github.com/milk9111/folio/ecs"
	"go.uber.org/zap"
)

// Reloader applies a changed prefab file to the world.
type Reloader func(w *ecs.World, name string) error

// HotReloadSystem drains file-change notifications and reapplies the changed
// prefab. A failed reload keeps the previous content.
type HotReloadSystem struct {
	events <-chan string
	errs   <-chan error
	reload Reloader
	logger *zap.Logger
}

func NewHotReloadSystem(events <-chan string, errs <-chan error, reload Reloader, logger *zap.Logger) *HotReloadSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HotReloadSystem{events: events, errs: errs, reload: reload, logger: logger}
}

func (hs *HotReloadSystem) Update(w *ecs.World) {
	if w == nil || hs.reload == nil {
		return
	}

	pending := map[string]bool{}
	for done := false; !done; {
		select {
		case path, ok := <-hs.events:
			if !ok {
				hs.events = nil
				continue
			}
			pending[filepath.Base(path)] = true
		case err, ok := <-hs.errs:
			if !ok {
				hs.errs = nil
				continue
			}
			hs.logger.Warn("prefab watcher error", zap.Error(err))
		default:
			done = true
		}
	}

	for name := range pending {
		if err := hs.reload(w, name); err != nil {
			hs.logger.Error("hot reload failed, keeping previous content", zap.String("file", name), zap.Error(err))
			continue
		}
		hs.logger.Info("prefab reloaded", zap.String("file", name))
		w.Events().Push(ecs.Event{Type: ecs.EventContentReloaded, Data: name})
	}
}
