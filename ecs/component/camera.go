package component

import (
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/rig"
)

type Camera struct {
	Rig *rig.Rig
}

// View returns the perspective view for a screen of the given size.
func (c *Camera) View(width, height float64) common.View {
	if c == nil || c.Rig == nil {
		return common.View{Width: width, Height: height}
	}
	return common.View{
		Eye:    c.Rig.Position(),
		Target: c.Rig.LookAt(),
		FOV:    c.Rig.Config().FOV,
		Width:  width,
		Height: height,
	}
}

var CameraComponent = NewComponent[Camera]()
