package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
)

const (
	iconRadius      = 0.07
	iconLabelSize   = 0.028
	iconLabelOffset = -0.11
	iconLayer       = 5
)

var (
	discColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	labelColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// BuildIcons creates the icon grid. Disc icons get a white backing disc with
// the icon color as accent; standalone icons are drawn in their own color.
func BuildIcons(w *ecs.World, spec *prefabs.IconsSpec) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, fmt.Errorf("icons: nil spec")
	}
	seen := make(map[string]bool, len(spec.Icons))
	out := make([]ecs.Entity, 0, len(spec.Icons))
	for _, is := range spec.Icons {
		if is.Label == "" {
			return out, fmt.Errorf("icons: icon without label")
		}
		if seen[is.Label] {
			return out, fmt.Errorf("icons: duplicate icon %q", is.Label)
		}
		seen[is.Label] = true

		e, err := buildIcon(w, is)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func buildIcon(w *ecs.World, is prefabs.IconSpec) (ecs.Entity, error) {
	src, err := is.Source()
	if err != nil {
		return 0, err
	}
	radius := is.Radius
	if radius <= 0 {
		radius = iconRadius
	}
	accent := is.Color.NRGBA(discColor)
	fill := accent
	if is.Disc {
		fill = discColor
	}
	rest := vec(is.Position)

	e := ecs.CreateEntity(w)
	add := func(err error) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("icons: %q: %w", is.Label, err)
		}
		return nil
	}

	if err := add(ecs.Add(w, e, component.IconComponent.Kind(), &component.Icon{
		Label:  is.Label,
		Kind:   is.Kind,
		Script: src,
		Rest:   rest,
		Accent: accent,
		Disc:   is.Disc,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.ScopeComponent.Kind(), &component.Scope{Kind: component.ScopeGrid})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: rest, Scale: 1})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Shape:  component.ShapeDisc,
		Radius: radius,
		Color:  fill,
		Shaded: true,
		Shadow: true,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.ButtonComponent.Kind(), &component.Button{
		Shape:  component.ShapeDisc,
		Radius: radius,
		Scale:  1,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{
		Text:   is.Label,
		Size:   iconLabelSize,
		Color:  labelColor,
		Offset: iconLabelOffset,
		Center: true,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: iconLayer})); err != nil {
		return 0, err
	}
	return e, nil
}

func iconEntities(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.IconComponent.Kind(), func(e ecs.Entity, _ *component.Icon) {
		out = append(out, e)
	})
	return out
}

// DestroyIcons removes every icon entity.
func DestroyIcons(w *ecs.World) {
	for _, e := range iconEntities(w) {
		ecs.DestroyEntity(w, e)
	}
}
