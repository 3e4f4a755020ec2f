package entity

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
)

const (
	homeLabel  = "Home"
	panelLayer = 3
	cardCorner = 0.08

	socialRadius  = 0.045
	socialSpacing = 0.13
	// socialLift is the height of the social row above the card's bottom edge.
	socialLift  = 0.09
	socialPush  = 0.01
	socialLayer = 4
)

var (
	cardColor   = color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	socialColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// PanelLayout is where cards sit when their panel is open.
type PanelLayout struct {
	Center common.Vec3
	Width  float64
	Height float64
}

// BuildPanels creates the home card and every text and stacked card. Contact
// panels have no card of their own; their chrome comes from scene.yaml. The
// returned map gives each panel label its presentation.
func BuildPanels(w *ecs.World, spec *prefabs.PanelsSpec, layout PanelLayout) (map[string]component.PanelKind, error) {
	if spec == nil {
		return nil, fmt.Errorf("panels: nil spec")
	}
	kinds := make(map[string]component.PanelKind, len(spec.Panels))

	home := component.PanelContent{
		Label: homeLabel,
		Title: spec.Home.Name,
		Body:  spec.Home.Text,
		Image: spec.Home.Image,
	}
	if _, err := newCard(w, home, component.Scope{Kind: component.ScopeHome}, layout.Center, layout); err != nil {
		return nil, err
	}
	if err := buildSocialLinks(w, spec.Home.Links, layout); err != nil {
		return nil, err
	}

	for _, ps := range spec.Panels {
		if ps.Label == "" {
			return nil, fmt.Errorf("panels: panel without label")
		}
		if _, dup := kinds[ps.Label]; dup {
			return nil, fmt.Errorf("panels: duplicate panel %q", ps.Label)
		}
		kind := component.PanelKind(ps.Kind)
		if kind == "" {
			kind = component.PanelText
		}
		kinds[ps.Label] = kind

		scope := component.Scope{Kind: component.ScopePanel, Label: ps.Label}
		switch kind {
		case component.PanelText:
			content := component.PanelContent{Label: ps.Label, Title: ps.Label, Body: ps.Text}
			if _, err := newCard(w, content, scope, layout.Center, layout); err != nil {
				return nil, err
			}
		case component.PanelStacked:
			for i, item := range ps.Items {
				content := component.PanelContent{
					Label:   ps.Label,
					Title:   item.Title,
					Role:    item.Role,
					Company: item.Company,
					Date:    item.Date,
					Body:    item.Description,
					Image:   item.Image,
				}
				e, err := newCard(w, content, scope, layout.Center, layout)
				if err != nil {
					return nil, err
				}
				if err := ecs.Add(w, e, component.StackItemComponent.Kind(), &component.StackItem{
					Label:  ps.Label,
					Index:  i,
					Anchor: layout.Center,
				}); err != nil {
					return nil, fmt.Errorf("panels: %q card %d: %w", ps.Label, i, err)
				}
			}
		case component.PanelContact:
		}
	}
	return kinds, nil
}

func newCard(w *ecs.World, content component.PanelContent, scope component.Scope, at common.Vec3, layout PanelLayout) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("panels: %q: %w", content.Label, err)
	}
	if err := ecs.Add(w, e, component.PanelContentComponent.Kind(), &content); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.ScopeComponent.Kind(), &scope); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: at, Scale: 1}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Shape:  component.ShapeQuad,
		Width:  layout.Width,
		Height: layout.Height,
		Corner: cardCorner,
		Color:  cardColor,
		Shaded: true,
		Shadow: true,
	}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: panelLayer}); err != nil {
		return fail(err)
	}
	return e, nil
}

// buildSocialLinks lays the home links out in a centered row along the
// bottom of the home card.
func buildSocialLinks(w *ecs.World, links []prefabs.SocialSpec, layout PanelLayout) error {
	start := layout.Center.X - float64(len(links)-1)/2*socialSpacing
	y := layout.Center.Y - layout.Height/2 + socialLift
	for i, link := range links {
		if link.Label == "" || link.URL == "" {
			return fmt.Errorf("panels: home link %d needs a label and a url", i)
		}
		at := common.V3(start+float64(i)*socialSpacing, y, layout.Center.Z+socialPush)
		if err := buildSocialLink(w, link, at); err != nil {
			return err
		}
	}
	return nil
}

func buildSocialLink(w *ecs.World, link prefabs.SocialSpec, at common.Vec3) error {
	e := ecs.CreateEntity(w)
	add := func(err error) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("panels: home link %q: %w", link.Label, err)
		}
		return nil
	}
	if err := add(ecs.Add(w, e, component.SocialLinkComponent.Kind(), &component.SocialLink{Label: link.Label, URL: link.URL})); err != nil {
		return err
	}
	if err := add(ecs.Add(w, e, component.ScopeComponent.Kind(), &component.Scope{Kind: component.ScopeHome})); err != nil {
		return err
	}
	if err := add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: at, Scale: 1})); err != nil {
		return err
	}
	if err := add(ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Shape:  component.ShapeDisc,
		Radius: socialRadius,
		Color:  socialColor,
		Shaded: true,
	})); err != nil {
		return err
	}
	if err := add(ecs.Add(w, e, component.ButtonComponent.Kind(), &component.Button{
		Shape:  component.ShapeDisc,
		Radius: socialRadius,
		Scale:  1,
	})); err != nil {
		return err
	}
	if err := add(ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{
		Text:   socialMark(link.Label),
		Size:   socialRadius * 0.7,
		Color:  labelColor,
		Center: true,
	})); err != nil {
		return err
	}
	return add(ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: socialLayer}))
}

func socialMark(label string) string {
	switch strings.ToLower(label) {
	case "github":
		return "GH"
	case "linkedin":
		return "in"
	}
	for _, r := range label {
		return string(r)
	}
	return "?"
}

// panelEntities lists the cards and home links built by BuildPanels.
func panelEntities(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.PanelContentComponent.Kind(), func(e ecs.Entity, _ *component.PanelContent) {
		out = append(out, e)
	})
	ecs.ForEach(w, component.SocialLinkComponent.Kind(), func(e ecs.Entity, _ *component.SocialLink) {
		out = append(out, e)
	})
	return out
}

// DestroyPanels removes every card and home link built by BuildPanels.
func DestroyPanels(w *ecs.World) {
	for _, e := range panelEntities(w) {
		ecs.DestroyEntity(w, e)
	}
}
