package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/folio/assets"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/rig"
)

var (
	toastColor      = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 230}
	toastErrorColor = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 230}
	debugColor      = color.NRGBA{A: 160}
	hudTextColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// HUD is the screen-space overlay: the send-status toast and, with --debug,
// a stats panel.
type HUD struct {
	ui *ebitenui.UI

	toast      *widget.Container
	toastText  *widget.Text
	errors     *widget.Container
	errorsText *widget.Text

	debug     *widget.Container
	debugText *widget.Text
}

func NewHUD(debug bool) (*HUD, error) {
	regular, _, err := assets.Fonts()
	if err != nil {
		return nil, fmt.Errorf("hud: load fonts: %w", err)
	}
	var face ebtext.Face = &ebtext.GoTextFace{Source: regular, Size: 16}

	h := &HUD{}
	h.toast, h.toastText = newBanner(&face, toastColor, widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionEnd)
	h.errors, h.errorsText = newBanner(&face, toastErrorColor, widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionEnd)
	h.debug, h.debugText = newBanner(&face, debugColor, widget.AnchorLayoutPositionStart, widget.AnchorLayoutPositionStart)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 24, Right: 24}),
		)),
	)
	root.AddChild(h.toast)
	root.AddChild(h.errors)
	if debug {
		root.AddChild(h.debug)
	}
	h.ui = &ebitenui.UI{Container: root}

	hide(h.toast)
	hide(h.errors)
	return h, nil
}

func newBanner(face *ebtext.Face, bg color.NRGBA, hpos, vpos widget.AnchorLayoutPosition) (*widget.Container, *widget.Text) {
	label := widget.NewText(
		widget.TextOpts.Text("", face, hudTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: hpos, VerticalPosition: vpos}),
		),
	)
	panel.AddChild(label)
	return panel, label
}

func show(c *widget.Container) { c.GetWidget().Visibility = widget.Visibility_Show }
func hide(c *widget.Container) { c.GetWidget().Visibility = widget.Visibility_Hide }

// Update mirrors the toast singleton and refreshes the debug stats.
func (h *HUD) Update(w *ecs.World, r *rig.Rig) {
	hide(h.toast)
	hide(h.errors)
	if _, toast, ok := ecs.Singleton(w, component.ToastComponent.Kind()); ok && toast.Text != "" {
		banner, text := h.toast, h.toastText
		if toast.Error {
			banner, text = h.errors, h.errorsText
		}
		text.Label = toast.Text
		show(banner)
	}

	h.debugText.Label = debugStats(w, r)
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func debugStats(w *ecs.World, r *rig.Rig) string {
	state := "-"
	if r != nil {
		state = r.State().String()
	}
	mode, active := "-", -1
	if _, view, ok := ecs.Singleton(w, component.ViewComponent.Kind()); ok {
		mode = view.Mode.String()
		if view.Label != "" {
			mode += " " + view.Label
		}
	}
	if _, sv, ok := ecs.Singleton(w, component.ScrollViewComponent.Kind()); ok && sv.Scroller != nil && sv.Label != "" {
		active = sv.Scroller.ActiveIndex()
	}
	profile := "desktop"
	if _, q, ok := ecs.Singleton(w, component.QualityComponent.Kind()); ok {
		profile = q.Profile.String()
	}
	return fmt.Sprintf("FPS %.1f  TPS %.1f\nrig %s\nview %s\nactive %d\nprofile %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), state, mode, active, profile)
}
