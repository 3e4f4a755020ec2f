package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/levels"
)

// LoadRoomToWorld creates one shaded plane entity per room plane.
func LoadRoomToWorld(w *ecs.World, room *levels.Room) error {
	if room == nil {
		return fmt.Errorf("room: nil room")
	}
	for _, p := range room.Planes {
		facing, err := parseFacing(p.Facing)
		if err != nil {
			return fmt.Errorf("room: plane %s: %w", p.Name, err)
		}
		c, err := parseHexColor(p.Color, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		if err != nil {
			return fmt.Errorf("room: plane %s: %w", p.Name, err)
		}

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.RoomTagComponent.Kind(), &component.RoomTag{}); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
			Position: common.V3(p.Center[0], p.Center[1], p.Center[2]),
		}); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
			Shape:  component.ShapeQuad,
			Facing: facing,
			Width:  p.Size[0],
			Height: p.Size[1],
			Color:  c,
			Shaded: true,
		}); err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: p.Layer}); err != nil {
			return err
		}
	}
	return nil
}
