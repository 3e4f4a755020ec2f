package component

import "image/color"

type Shape int

const (
	ShapeQuad Shape = iota
	ShapeDisc
)

// Facing is the plane a flat mesh lies in.
type Facing int

const (
	// FacingFront lies in the XY plane, facing +Z.
	FacingFront Facing = iota
	// FacingUp lies in the XZ plane, facing +Y.
	FacingUp
	// FacingRight lies in the YZ plane, facing +X.
	FacingRight
	// FacingLeft lies in the YZ plane, facing -X.
	FacingLeft
)

// Mesh is a flat, single-colored primitive centered on the entity transform.
type Mesh struct {
	Shape  Shape
	Facing Facing
	Width  float64
	Height float64
	Radius float64
	Corner float64
	Color  color.NRGBA
	// Shaded meshes are lit by the scene light; unshaded ones keep Color.
	Shaded bool
	// Shadow casts a soft drop shadow behind the mesh.
	Shadow bool
}

var MeshComponent = NewComponent[Mesh]()

// Label is text drawn on the entity's front face. Size is the line height in
// world units; Wrap, when positive, is the maximum line width in world units.
type Label struct {
	Text   string
	Size   float64
	Wrap   float64
	Color  color.NRGBA
	Offset float64
	Center bool
}

var LabelComponent = NewComponent[Label]()

// Image is a picture drawn on the entity's front face.
type Image struct {
	Key    string
	Width  float64
	Height float64
	Round  bool
}

var ImageComponent = NewComponent[Image]()
