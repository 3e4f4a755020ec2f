package system

import (
	"github.com/charmbracelet/harmonica"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// URLOpener opens a link outside the application.
type URLOpener func(url string) error

// NavigationConfig places the navigation chrome.
type NavigationConfig struct {
	// Panels maps a panel label to its presentation.
	Panels map[string]component.PanelKind
	// GridOrigin is the point the icon grid scales around.
	GridOrigin common.Vec3
	// TogglePos is the home toggle's resting place; ToggleStackedPos is used
	// while a stacked panel is open.
	TogglePos        common.Vec3
	ToggleStackedPos common.Vec3
}

// NavigationSystem switches between the home card, the icon grid and open
// panels, runs icon actions and keeps every scoped entity's visibility
// current.
type NavigationSystem struct {
	cfg     NavigationConfig
	actions *ActionRunner
	open    URLOpener
	logger  *zap.Logger
	spring  harmonica.Spring

	world *ecs.World
	view  *component.View
}

func NewNavigationSystem(cfg NavigationConfig, actions *ActionRunner, open URLOpener, logger *zap.Logger) *NavigationSystem {
	if actions == nil {
		actions = NewActionRunner()
	}
	if open == nil {
		open = browser.OpenURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationSystem{
		cfg:     cfg,
		actions: actions,
		open:    open,
		logger:  logger,
		// Tension 280, friction 26.
		spring: harmonica.NewSpring(harmonica.FPS(60), 16.73, 0.78),
	}
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, view, ok := ecs.Singleton(w, component.ViewComponent.Kind())
	if !ok {
		return
	}
	ns.world, ns.view = w, view
	defer func() { ns.world, ns.view = nil, nil }()

	before := *view
	for _, evt := range w.Events().Of(ecs.EventButtonClicked) {
		e, ok := evt.Data.(ecs.Entity)
		if !ok {
			continue
		}
		ns.handleClick(w, e)
	}
	if len(w.Events().Of(ecs.EventContentReloaded)) > 0 {
		ns.revalidate()
	}

	changed := view.Mode != before.Mode || view.Label != before.Label || view.Kind != before.Kind
	if changed {
		if view.Mode == component.ModeGrid {
			view.GridScale, view.GridScaleVel = 0.8, 0
		}
		ns.logger.Debug("view changed", zap.Stringer("mode", view.Mode), zap.String("label", view.Label))
		w.Events().Push(ecs.Event{Type: ecs.EventViewChanged, Data: *view})
	}

	ns.applyScopes(w, *view)
	ns.animateGrid(w, view)
	ns.placeToggle(w, *view)
}

func (ns *NavigationSystem) handleClick(w *ecs.World, e ecs.Entity) {
	switch {
	case ecs.Has(w, e, component.HomeToggleTagComponent.Kind()):
		ns.ToggleHome()
	case ecs.Has(w, e, component.BackButtonTagComponent.Kind()):
		ns.Back()
	case ecs.Has(w, e, component.SocialLinkComponent.Kind()):
		link, _ := ecs.Get(w, e, component.SocialLinkComponent.Kind())
		if ns.view.Mode != component.ModeHome {
			return
		}
		ns.OpenURL(link.URL)
	case ecs.Has(w, e, component.IconComponent.Kind()):
		icon, _ := ecs.Get(w, e, component.IconComponent.Kind())
		if ns.view.Mode != component.ModeGrid {
			return
		}
		if err := ns.actions.Run(icon.Script, icon.Label, ns); err != nil {
			ns.logger.Warn("icon action failed", zap.String("label", icon.Label), zap.Error(err))
		}
	}
}

// ToggleHome flips between the home card and the icon grid. Going home
// closes any open panel.
func (ns *NavigationSystem) ToggleHome() {
	if ns.view == nil {
		return
	}
	if ns.view.Mode == component.ModeHome {
		ns.view.Mode = component.ModeGrid
		return
	}
	ns.view.Mode = component.ModeHome
	ns.view.Label = ""
	ns.view.Kind = ""
}

func (ns *NavigationSystem) Back() {
	if ns.view == nil || ns.view.Mode != component.ModePanel {
		return
	}
	ns.view.Mode = component.ModeGrid
	ns.view.Label = ""
	ns.view.Kind = ""
}

// revalidate keeps the open panel in step with reloaded content: a panel
// that no longer exists closes, one whose kind changed is presented anew.
func (ns *NavigationSystem) revalidate() {
	if ns.view.Mode != component.ModePanel {
		return
	}
	kind, ok := ns.cfg.Panels[ns.view.Label]
	if !ok {
		ns.logger.Info("open panel removed by reload", zap.String("label", ns.view.Label))
		ns.Back()
		return
	}
	ns.view.Kind = kind
}

// OpenPanel implements ActionHost.
func (ns *NavigationSystem) OpenPanel(label string) {
	if ns.view == nil {
		return
	}
	kind, ok := ns.cfg.Panels[label]
	if !ok {
		ns.logger.Warn("open_panel: unknown panel", zap.String("label", label))
		return
	}
	ns.view.Mode = component.ModePanel
	ns.view.Label = label
	ns.view.Kind = kind
}

// OpenURL implements ActionHost.
func (ns *NavigationSystem) OpenURL(url string) {
	if err := ns.open(url); err != nil {
		ns.logger.Warn("open url failed", zap.String("url", url), zap.Error(err))
		return
	}
	ns.logger.Info("opened url", zap.String("url", url))
}

func (ns *NavigationSystem) applyScopes(w *ecs.World, view component.View) {
	ecs.ForEach(w, component.ScopeComponent.Kind(), func(_ ecs.Entity, s *component.Scope) {
		s.Shown = s.Matches(view)
	})
}

func (ns *NavigationSystem) animateGrid(w *ecs.World, view *component.View) {
	target := 0.8
	if view.Mode == component.ModeGrid {
		target = 1
	}
	if view.GridScale == 0 && view.GridScaleVel == 0 {
		view.GridScale = target
	}
	view.GridScale, view.GridScaleVel = ns.spring.Update(view.GridScale, view.GridScaleVel, target)

	origin := ns.cfg.GridOrigin
	ecs.ForEach2(w, component.IconComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, icon *component.Icon, t *component.Transform) {
		t.Position = origin.Add(icon.Rest.Sub(origin).Scale(view.GridScale))
		t.Scale = view.GridScale
	})
}

func (ns *NavigationSystem) placeToggle(w *ecs.World, view component.View) {
	pos := ns.cfg.TogglePos
	if view.Mode == component.ModePanel && view.Kind == component.PanelStacked {
		pos = ns.cfg.ToggleStackedPos
	}
	ecs.ForEach2(w, component.HomeToggleTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.HomeToggleTag, t *component.Transform) {
		t.Position = pos
	})
}
