package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"home_toggle":   addHomeToggle,
	"back_button":   addBackButton,
	"send_button":   addSendButton,
	"contact_form":  addContactForm,
	"contact_input": addContactInput,
	"scope":         addScope,
	"transform":     addTransform,
	"mesh":          addMesh,
	"button":        addButton,
	"label":         addLabel,
	"image":         addImage,
	"render_layer":  addRenderLayer,
}

var componentBuildOrder = []string{
	"home_toggle",
	"back_button",
	"send_button",
	"contact_form",
	"contact_input",
	"scope",
	"transform",
	"mesh",
	"button",
	"label",
	"image",
	"render_layer",
}

// BuildEntity creates one entity from a prefab entity spec. Components are
// added in registry order; unknown component names are an error.
func BuildEntity(w *ecs.World, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, name)
		}
	}

	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}
	return e, nil
}

// ComponentNames lists every registered component name, sorted.
func ComponentNames() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addHomeToggle(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.HomeToggleTagComponent.Kind(), &component.HomeToggleTag{})
}

func addBackButton(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.BackButtonTagComponent.Kind(), &component.BackButtonTag{})
}

func addSendButton(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.SendButtonTagComponent.Kind(), &component.SendButtonTag{})
}

func addContactForm(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.ContactFormComponent.Kind(), &component.ContactForm{})
}

func addContactInput(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ContactInputComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode contact_input spec: %w", err)
	}
	var field component.ContactField
	switch spec.Field {
	case "name":
		field = component.FieldName
	case "email":
		field = component.FieldEmail
	case "message":
		field = component.FieldMessage
	default:
		return fmt.Errorf("unknown contact field %q", spec.Field)
	}
	return ecs.Add(w, e, component.ContactInputComponent.Kind(), &component.ContactInput{Field: field})
}

func addScope(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScopeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scope spec: %w", err)
	}
	kind, err := parseScope(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScopeComponent.Kind(), &component.Scope{Kind: kind, Label: spec.Label})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: common.V3(spec.X, spec.Y, spec.Z),
		Scale:    spec.Scale,
	})
}

func addMesh(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MeshComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}
	shape, err := parseShape(spec.Shape)
	if err != nil {
		return err
	}
	facing, err := parseFacing(spec.Facing)
	if err != nil {
		return err
	}
	c, err := parseHexColor(spec.Color, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Shape:  shape,
		Facing: facing,
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Corner: spec.Corner,
		Color:  c,
		Shaded: spec.Shaded,
		Shadow: spec.Shadow,
	})
}

func addButton(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ButtonComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode button spec: %w", err)
	}
	shape, err := parseShape(spec.Shape)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ButtonComponent.Kind(), &component.Button{
		Shape:  shape,
		Radius: spec.Radius,
		Width:  spec.Width,
		Height: spec.Height,
		Scale:  1,
	})
}

func addLabel(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LabelComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode label spec: %w", err)
	}
	c, err := parseHexColor(spec.Color, color.NRGBA{A: 0xff})
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{
		Text:   spec.Text,
		Size:   spec.Size,
		Wrap:   spec.Wrap,
		Color:  c,
		Offset: spec.Offset,
		Center: spec.Center,
	})
}

func addImage(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ImageComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode image spec: %w", err)
	}
	if spec.Key == "" {
		return fmt.Errorf("image: key is required")
	}
	return ecs.Add(w, e, component.ImageComponent.Kind(), &component.Image{
		Key:    spec.Key,
		Width:  spec.Width,
		Height: spec.Height,
		Round:  spec.Round,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func parseScope(s string) (component.ScopeKind, error) {
	switch s {
	case "", "always":
		return component.ScopeAlways, nil
	case "home":
		return component.ScopeHome, nil
	case "grid":
		return component.ScopeGrid, nil
	case "panel":
		return component.ScopePanel, nil
	case "any_panel":
		return component.ScopeAnyPanel, nil
	case "stacked":
		return component.ScopeStacked, nil
	default:
		return 0, fmt.Errorf("unknown scope %q", s)
	}
}

func parseShape(s string) (component.Shape, error) {
	switch s {
	case "", "quad":
		return component.ShapeQuad, nil
	case "disc":
		return component.ShapeDisc, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", s)
	}
}

func parseFacing(s string) (component.Facing, error) {
	switch s {
	case "", "front":
		return component.FacingFront, nil
	case "up":
		return component.FacingUp, nil
	case "right":
		return component.FacingRight, nil
	case "left":
		return component.FacingLeft, nil
	default:
		return 0, fmt.Errorf("unknown facing %q", s)
	}
}

func parseHexColor(s string, fallback color.NRGBA) (color.NRGBA, error) {
	if s == "" {
		return fallback, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
