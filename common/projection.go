package common

import "math"

// View is a perspective camera looking from Eye toward Target with +Y up.
type View struct {
	Eye    Vec3
	Target Vec3
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Width  float64
	Height float64
}

const nearPlane = 0.01

func (v View) basis() (right, up, forward Vec3) {
	forward = v.Target.Sub(v.Eye).Normalize()
	right = forward.Cross(V3(0, 1, 0)).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

func (v View) focal() float64 {
	return (v.Height / 2) / math.Tan(v.FOV*math.Pi/360)
}

// Project maps a world point to screen pixels. depth is the distance along
// the view direction; ok is false for points behind the near plane.
func (v View) Project(p Vec3) (x, y, depth float64, ok bool) {
	right, up, forward := v.basis()
	rel := p.Sub(v.Eye)
	depth = rel.Dot(forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}
	f := v.focal()
	x = v.Width/2 + rel.Dot(right)*f/depth
	y = v.Height/2 - rel.Dot(up)*f/depth
	return x, y, depth, true
}

// PixelsPerUnit is the on-screen size of one world unit at the given depth.
func (v View) PixelsPerUnit(depth float64) float64 {
	if depth <= nearPlane {
		return 0
	}
	return v.focal() / depth
}

// NDC converts a pixel position to normalized device coordinates, +Y up.
func (v View) NDC(px, py float64) (float64, float64) {
	if v.Width == 0 || v.Height == 0 {
		return 0, 0
	}
	return px/v.Width*2 - 1, 1 - py/v.Height*2
}

// Ray returns the world-space direction through pixel (px, py).
func (v View) Ray(px, py float64) Vec3 {
	right, up, forward := v.basis()
	f := v.focal()
	dx := (px - v.Width/2) / f
	dy := (v.Height/2 - py) / f
	return forward.Add(right.Scale(dx)).Add(up.Scale(dy)).Normalize()
}
