package component

import (
	"image/color"

	"github.com/milk9111/folio/common"
)

// Light is the scene's single directional light. Shaded meshes take
// Ambient plus the diffuse share of the light along Target-Position.
type Light struct {
	Position common.Vec3
	Target   common.Vec3
	Ambient  float64
	Color    color.NRGBA
}

// Direction is the unit vector the light travels along.
func (l Light) Direction() common.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}

var LightComponent = NewComponent[Light]()
