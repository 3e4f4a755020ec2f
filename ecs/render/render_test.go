package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapLines(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	tests := []struct {
		name string
		in   string
		max  float64
		want []string
	}{
		{name: "no wrap", in: "one two", max: 0, want: []string{"one two"}},
		{name: "fits", in: "one two", max: 7, want: []string{"one two"}},
		{name: "breaks", in: "one two three", max: 8, want: []string{"one two", "three"}},
		{name: "long word", in: "a enormous b", max: 4, want: []string{"a", "enormous", "b"}},
		{name: "newlines kept", in: "one\n\ntwo", max: 10, want: []string{"one", "", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLines(tt.in, tt.max, measure))
		})
	}
}

func TestRoundedRectStaysInsideBounds(t *testing.T) {
	pts := roundedRect(1.2, 0.9, 0.08)
	require.Len(t, pts, 4*(cornerSegments+1))
	for _, p := range pts {
		assert.LessOrEqual(t, math.Abs(p[0]), 0.6+1e-9)
		assert.LessOrEqual(t, math.Abs(p[1]), 0.45+1e-9)
	}

	square := roundedRect(2, 1, 0)
	assert.Equal(t, [][2]float64{{-1, -0.5}, {1, -0.5}, {1, 0.5}, {-1, 0.5}}, square)
}

func TestOutlineScalesDisc(t *testing.T) {
	pts := outline(component.Mesh{Shape: component.ShapeDisc, Radius: 0.5}, 2)
	require.Len(t, pts, discSegments)
	for _, p := range pts {
		assert.InDelta(t, 1.0, math.Hypot(p[0], p[1]), 1e-9)
	}
}

func TestPlaceFollowsFacing(t *testing.T) {
	c := common.V3(1, 2, 3)
	assert.Equal(t, common.V3(1.5, 2.25, 3), place(c, component.FacingFront, 0.5, 0.25))
	assert.Equal(t, common.V3(1.5, 2, 2.75), place(c, component.FacingUp, 0.5, 0.25))
	assert.Equal(t, 0.0, place(c, component.FacingRight, 0.5, 0.25).Sub(c).Dot(normal(component.FacingRight)))
	assert.Equal(t, 0.0, place(c, component.FacingLeft, 0.5, 0.25).Sub(c).Dot(normal(component.FacingLeft)))
}

func TestShadeLitAndUnlitFaces(t *testing.T) {
	light := component.Light{
		Position: common.V3(0, 0, 10),
		Target:   common.V3(0, 0, 0),
		Ambient:  0.5,
		Color:    color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	white := color.NRGBA{R: 200, G: 200, B: 200, A: 0xff}

	lit := shade(white, normal(component.FacingFront), light)
	assert.Equal(t, uint8(200), lit.R)

	side := shade(white, normal(component.FacingRight), light)
	assert.Equal(t, uint8(100), side.R)
	assert.Equal(t, uint8(0xff), side.A)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "GH", glyph(&component.Icon{Kind: "github", Label: "GitHub"}))
	assert.Equal(t, "@", glyph(&component.Icon{Kind: "envelope"}))
	assert.Equal(t, "E", glyph(&component.Icon{Kind: "folder", Label: "Experience"}))
	assert.Equal(t, "?", glyph(&component.Icon{}))
}

func TestLabelTextShowsFormValues(t *testing.T) {
	w := ecs.NewWorld()
	field := func(f component.ContactField) ecs.Entity {
		e := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, e, component.ContactInputComponent.Kind(), &component.ContactInput{Field: f}))
		return e
	}
	name, email, msg := field(component.FieldName), field(component.FieldEmail), field(component.FieldMessage)
	send := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, send, component.SendButtonTagComponent.Kind(), &component.SendButtonTag{}))

	form := &component.ContactForm{Name: "Ada", Email: "ada@", Active: component.FieldEmail, Sending: true}
	placeholder := &component.Label{Text: "Placeholder", Color: mutedColor}

	s, c := labelText(w, name, placeholder, form)
	assert.Equal(t, "Ada", s)
	assert.Equal(t, titleColor, c)

	s, _ = labelText(w, email, placeholder, form)
	assert.Equal(t, "ada@|", s)

	s, c = labelText(w, msg, placeholder, form)
	assert.Equal(t, "Placeholder", s)
	assert.Equal(t, mutedColor, c)

	s, _ = labelText(w, send, placeholder, form)
	assert.Equal(t, "Sending...", s)

	s, _ = labelText(w, name, placeholder, nil)
	assert.Equal(t, "Placeholder", s)
}
