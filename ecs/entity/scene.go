package entity

import (
	"errors"
	"fmt"
	"image/color"
	"path"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/levels"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/quality"
	"github.com/milk9111/folio/rig"
	"github.com/milk9111/folio/scroll"
)

// ErrRestartRequired is returned by Reload for files that are only read at
// startup.
var ErrRestartRequired = errors.New("scene: change needs a restart")

const (
	indicatorLayer = 6
	roomFile       = "room.json"
)

// Scene is the result of BuildScene: the parts of scene.yaml that systems
// outside the world need.
type Scene struct {
	Spec   *prefabs.SceneSpec
	Rig    *rig.Rig
	Layout PanelLayout
	// Panels is updated in place on reload so holders of the map see new
	// labels.
	Panels map[string]component.PanelKind
}

// ScrollConfig fills a scroller config from the scroll spec. Zero fields keep
// the scroller defaults.
func ScrollConfig(spec prefabs.ScrollSpec) scroll.Config {
	cfg := scroll.DefaultConfig()
	if spec.Sensitivity > 0 {
		cfg.Sensitivity = spec.Sensitivity
	}
	if spec.Friction > 0 {
		cfg.Friction = spec.Friction
	}
	if spec.MaxMomentum > 0 {
		cfg.MaxMomentum = spec.MaxMomentum
	}
	if spec.Spacing > 0 {
		cfg.Spacing = spec.Spacing
	}
	if spec.DepthOffset > 0 {
		cfg.DepthOffset = spec.DepthOffset
	}
	if spec.WheelSnapDelay > 0 {
		cfg.WheelSnapDelay = spec.WheelSnapDelay
	}
	if spec.CoastSnapDelay > 0 {
		cfg.CoastSnapDelay = spec.CoastSnapDelay
	}
	return cfg
}

// BuildScene loads every prefab and populates w: singletons, camera, room,
// scene entities, icons and panels.
func BuildScene(w *ecs.World, profile quality.Profile) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("scene: world is nil")
	}
	spec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Spec: spec,
		Layout: PanelLayout{
			Center: vec(spec.Layout.PanelCenter),
			Width:  spec.Layout.PanelWidth,
			Height: spec.Layout.PanelHeight,
		},
	}

	_, s.Rig, err = NewCamera(w, spec.Camera)
	if err != nil {
		return nil, err
	}
	if err := s.addSingletons(w, profile); err != nil {
		return nil, err
	}

	room, err := levels.LoadRoomFromFS(roomFile)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := LoadRoomToWorld(w, room); err != nil {
		return nil, err
	}

	for _, es := range spec.Entities {
		if _, err := BuildEntity(w, es); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	if err := s.buildIcons(w); err != nil {
		return nil, err
	}
	if err := s.buildPanels(w); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) addSingletons(w *ecs.World, profile quality.Profile) error {
	layout := s.Spec.Layout
	light := s.Spec.Light

	singletons := ecs.CreateEntity(w)
	if err := ecs.Add(w, singletons, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("scene: add input: %w", err)
	}
	if err := ecs.Add(w, singletons, component.ViewComponent.Kind(), &component.View{Mode: component.ModeHome}); err != nil {
		return fmt.Errorf("scene: add view: %w", err)
	}
	if err := ecs.Add(w, singletons, component.ToastComponent.Kind(), &component.Toast{}); err != nil {
		return fmt.Errorf("scene: add toast: %w", err)
	}
	if err := ecs.Add(w, singletons, component.QualityComponent.Kind(), &component.Quality{Profile: profile}); err != nil {
		return fmt.Errorf("scene: add quality: %w", err)
	}
	if err := ecs.Add(w, singletons, component.LightComponent.Kind(), &component.Light{
		Position: vec(light.Position),
		Target:   vec(light.Target),
		Ambient:  light.Ambient,
		Color:    light.Color.NRGBA(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
	}); err != nil {
		return fmt.Errorf("scene: add light: %w", err)
	}
	if err := ecs.Add(w, singletons, component.ScrollViewComponent.Kind(), &component.ScrollView{
		Scroller: scroll.New(ScrollConfig(s.Spec.Scroll), 0),
		Center:   s.Layout.Center,
		Width:    s.Layout.Width,
		Height:   s.Layout.Height,
	}); err != nil {
		return fmt.Errorf("scene: add scroll view: %w", err)
	}

	indicator := ecs.CreateEntity(w)
	if err := ecs.Add(w, indicator, component.IndicatorComponent.Kind(), &component.Indicator{}); err != nil {
		return fmt.Errorf("scene: add indicator: %w", err)
	}
	if err := ecs.Add(w, indicator, component.ScopeComponent.Kind(), &component.Scope{Kind: component.ScopeStacked}); err != nil {
		return err
	}
	if err := ecs.Add(w, indicator, component.TransformComponent.Kind(), &component.Transform{
		Position: vec(layout.IndicatorPos),
		Scale:    1,
	}); err != nil {
		return err
	}
	return ecs.Add(w, indicator, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: indicatorLayer})
}

func (s *Scene) buildIcons(w *ecs.World) error {
	spec, err := prefabs.LoadIconsSpec()
	if err != nil {
		return err
	}
	_, err = BuildIcons(w, spec)
	return err
}

func (s *Scene) buildPanels(w *ecs.World) error {
	spec, err := prefabs.LoadPanelsSpec()
	if err != nil {
		return err
	}
	kinds, err := BuildPanels(w, spec, s.Layout)
	if err != nil {
		return err
	}
	if s.Panels == nil {
		s.Panels = kinds
		return nil
	}
	clear(s.Panels)
	for k, v := range kinds {
		s.Panels[k] = v
	}
	return nil
}

// GridOrigin, TogglePos and ToggleStackedPos place the navigation chrome.
func (s *Scene) GridOrigin() common.Vec3       { return vec(s.Spec.Layout.GridOrigin) }
func (s *Scene) TogglePos() common.Vec3        { return vec(s.Spec.Layout.TogglePos) }
func (s *Scene) ToggleStackedPos() common.Vec3 { return vec(s.Spec.Layout.ToggleStackedPos) }

// Reload rebuilds the content behind a changed prefab file. The new content
// is built next to the old and the old is only destroyed once the build
// succeeds, so a bad edit leaves the previous content in place.
func (s *Scene) Reload(w *ecs.World, name string) error {
	switch base := path.Base(name); {
	case base == "panels.yaml":
		spec, err := prefabs.LoadPanelsSpec()
		if err != nil {
			return err
		}
		var kinds map[string]component.PanelKind
		err = replace(w, panelEntities, func() error {
			kinds, err = BuildPanels(w, spec, s.Layout)
			return err
		})
		if err != nil {
			return err
		}
		clear(s.Panels)
		for k, v := range kinds {
			s.Panels[k] = v
		}
		return nil
	case base == "icons.yaml" || path.Ext(base) == ".tengo":
		spec, err := prefabs.LoadIconsSpec()
		if err != nil {
			return err
		}
		return replace(w, iconEntities, func() error {
			_, err := BuildIcons(w, spec)
			return err
		})
	default:
		return fmt.Errorf("%w: %s", ErrRestartRequired, base)
	}
}

// replace runs build and then destroys the entities listed before it ran. If
// build fails, whatever it created is destroyed instead.
func replace(w *ecs.World, list func(*ecs.World) []ecs.Entity, build func() error) error {
	old := list(w)
	keep := make(map[ecs.Entity]bool, len(old))
	for _, e := range old {
		keep[e] = true
	}
	if err := build(); err != nil {
		for _, e := range list(w) {
			if !keep[e] {
				ecs.DestroyEntity(w, e)
			}
		}
		return err
	}
	for _, e := range old {
		ecs.DestroyEntity(w, e)
	}
	return nil
}
