package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/contact"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/ecs/entity"
	"github.com/milk9111/folio/ecs/render"
	"github.com/milk9111/folio/ecs/system"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/quality"
	"go.uber.org/zap"
)

const (
	baseWidth  = common.BaseWidth
	baseHeight = common.BaseHeight
)

type Options struct {
	Debug  bool
	Mobile bool
	Watch  bool
}

type Game struct {
	opts   Options
	logger *zap.Logger

	world    *ecs.World
	sched    *ecs.Scheduler
	scene    *entity.Scene
	input    *render.EbitenInput
	renderer *render.Renderer
	hud      *HUD

	actions    *system.ActionRunner
	dispatcher *contact.Dispatcher
	watcher    *prefabs.Watcher
}

func NewGame(opts Options, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		opts:    opts,
		logger:  logger,
		world:   ecs.NewWorld(),
		input:   render.NewEbitenInput(logger.Named("input")),
		actions: system.NewActionRunner(),
	}
	g.world.Clock().Advance(time.Now())

	profile := quality.Detect(quality.Hints{Forced: opts.Mobile})
	scene, err := entity.BuildScene(g.world, profile)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	g.scene = scene

	g.renderer, err = render.NewRenderer(render.NewImageCache(logger.Named("images")), logger.Named("render"))
	if err != nil {
		return nil, err
	}
	g.hud, err = NewHUD(opts.Debug)
	if err != nil {
		return nil, err
	}

	cfg, err := loadContactConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		// The scene still runs; sends fail with this error and show a toast.
		logger.Warn("contact form is not configured", zap.Error(err))
	}
	client := contact.NewClient(cfg, contact.WithLogger(logger.Named("contact")))
	g.dispatcher = contact.NewDispatcher(client, 0)

	var events <-chan string
	var errs <-chan error
	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher(prefabs.Dirs()...)
		if err != nil {
			return nil, fmt.Errorf("watch prefabs: %w", err)
		}
		events, errs = g.watcher.Events, g.watcher.Errors
	}

	nav := system.NavigationConfig{
		Panels:           scene.Panels,
		GridOrigin:       scene.GridOrigin(),
		TogglePos:        scene.TogglePos(),
		ToggleStackedPos: scene.ToggleStackedPos(),
	}

	g.sched = ecs.NewScheduler(
		system.NewInputSystem(g.input),
		system.NewHotReloadSystem(events, errs, g.reload, logger.Named("reload")),
		system.NewPickingSystem(),
		system.NewCameraRigSystem(),
		system.NewNavigationSystem(nav, g.actions, nil, logger.Named("nav")),
		system.NewPanelScrollSystem(logger.Named("scroll")),
		system.NewIndicatorSystem(),
		system.NewContactFormSystem(g.dispatcher, logger.Named("contact")),
		system.NewButtonSystem(),
		system.NewToastSystem(),
	)
	return g, nil
}

// reload rebuilds content for an edited prefab and drops caches that could
// hold stale scripts or images.
func (g *Game) reload(w *ecs.World, name string) error {
	err := g.scene.Reload(w, name)
	if errors.Is(err, entity.ErrRestartRequired) {
		g.logger.Warn("prefab change needs a restart", zap.String("file", name))
		return nil
	}
	if err != nil {
		return err
	}
	g.actions.Forget()
	g.renderer.Images().Forget()
	return nil
}

func (g *Game) Profile() quality.Profile {
	_, q, ok := ecs.Singleton(g.world, component.QualityComponent.Kind())
	if !ok {
		return quality.Desktop
	}
	return q.Profile
}

func (g *Game) Update() error {
	g.world.Clock().Advance(time.Now())
	g.sched.Update(g.world)
	g.detectProfile()
	g.hud.Update(g.world, g.scene.Rig)
	return nil
}

// detectProfile switches to the constrained profile the first time a touch
// is seen on a narrow window.
func (g *Game) detectProfile() {
	_, in, ok := ecs.Singleton(g.world, component.InputComponent.Kind())
	if !ok || !in.Touch {
		return
	}
	_, q, ok := ecs.Singleton(g.world, component.QualityComponent.Kind())
	if !ok || q.Profile.Constrained {
		return
	}
	next := quality.Detect(quality.Hints{Touch: true, Width: int(in.Width), Forced: g.opts.Mobile})
	if next != q.Profile {
		g.logger.Info("quality profile changed", zap.Stringer("profile", next))
		q.Profile = next
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	g.hud.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := g.Profile().DeviceScale(ebiten.Monitor().DeviceScaleFactor())
	w, h := outsideWidth*scale, outsideHeight*scale
	if w <= 0 || h <= 0 {
		w, h = baseWidth, baseHeight
	}
	g.input.SetSize(w, h)
	return w, h
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the watcher and waits for an in-flight send.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("close watcher", zap.Error(err))
		}
	}
	if g.dispatcher != nil {
		if _, err := g.dispatcher.Wait(); err != nil {
			g.logger.Warn("pending send failed", zap.Error(err))
		}
	}
}
