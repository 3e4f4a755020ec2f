package render

import (
	"image/color"
	"math"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs/component"
)

const (
	cornerSegments = 6
	discSegments   = 40
)

// outline returns the mesh's boundary in its own plane, counter-clockwise,
// already scaled.
func outline(m component.Mesh, scale float64) [][2]float64 {
	if m.Shape == component.ShapeDisc {
		return circle(m.Radius*scale, discSegments)
	}
	return roundedRect(m.Width*scale, m.Height*scale, m.Corner*scale)
}

func circle(r float64, segments int) [][2]float64 {
	pts := make([][2]float64, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = [2]float64{r * math.Cos(a), r * math.Sin(a)}
	}
	return pts
}

func roundedRect(w, h, r float64) [][2]float64 {
	hw, hh := w/2, h/2
	r = math.Min(r, math.Min(hw, hh))
	if r <= 0 {
		return [][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	}
	corners := [4]struct{ cx, cy, start float64 }{
		{hw - r, -hh + r, -math.Pi / 2},
		{hw - r, hh - r, 0},
		{-hw + r, hh - r, math.Pi / 2},
		{-hw + r, -hh + r, math.Pi},
	}
	pts := make([][2]float64, 0, 4*(cornerSegments+1))
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := c.start + (math.Pi/2)*float64(i)/cornerSegments
			pts = append(pts, [2]float64{c.cx + r*math.Cos(a), c.cy + r*math.Sin(a)})
		}
	}
	return pts
}

// place maps a point in the facing's plane to world space around center.
func place(center common.Vec3, f component.Facing, u, v float64) common.Vec3 {
	switch f {
	case component.FacingUp:
		return center.Add(common.V3(u, 0, -v))
	case component.FacingRight:
		return center.Add(common.V3(0, v, -u))
	case component.FacingLeft:
		return center.Add(common.V3(0, v, u))
	default:
		return center.Add(common.V3(u, v, 0))
	}
}

func normal(f component.Facing) common.Vec3 {
	switch f {
	case component.FacingUp:
		return common.V3(0, 1, 0)
	case component.FacingRight:
		return common.V3(1, 0, 0)
	case component.FacingLeft:
		return common.V3(-1, 0, 0)
	default:
		return common.V3(0, 0, 1)
	}
}

// shade applies ambient plus Lambert diffuse light to c.
func shade(c color.NRGBA, n common.Vec3, light component.Light) color.NRGBA {
	ambient := common.Clamp(light.Ambient, 0, 1)
	diffuse := math.Max(0, -n.Dot(light.Direction()))
	k := ambient + (1-ambient)*diffuse

	tint := func(ch, lc uint8) uint8 {
		return uint8(common.Clamp(float64(ch)*k*float64(lc)/255, 0, 255))
	}
	lc := light.Color
	if lc.A == 0 {
		lc = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBA{R: tint(c.R, lc.R), G: tint(c.G, lc.G), B: tint(c.B, lc.B), A: c.A}
}
