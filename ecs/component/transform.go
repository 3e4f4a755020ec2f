package component

import "github.com/milk9111/folio/common"

// Transform places an entity in world space. Scale is uniform; zero means 1.
type Transform struct {
	Position common.Vec3
	Scale    float64
}

func (t Transform) EffectiveScale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

var TransformComponent = NewComponent[Transform]()
