// Package render projects the scene through the camera rig and draws it with
// flat-shaded polygons, textured quads and text.
package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/folio/assets"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/ecs/system"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

var (
	background  = color.NRGBA{R: 0xdf, G: 0xe3, B: 0xe8, A: 0xff}
	bodyColor   = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	titleColor  = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	mutedColor  = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	dotColor    = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
	focusColor  = color.NRGBA{R: 0x6d, G: 0x81, B: 0x96, A: 0xff}
	shadowColor = color.NRGBA{A: 0x30}
)

const (
	// facePush lifts content off its card so it sorts and draws in front.
	facePush      = 0.002
	dotSpacing    = 0.04
	dotRadius     = 0.008
	cardPad       = 0.07
	shadowStep    = 0.006
	minTextPixels = 1
)

type drawItem struct {
	e     ecs.Entity
	layer int
	depth float64
}

// Renderer draws every visible entity that has a Transform and RenderLayer.
type Renderer struct {
	images  *ImageCache
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	white   *ebiten.Image
	logger  *zap.Logger

	items    []drawItem
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer(images *ImageCache, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if images == nil {
		images = NewImageCache(logger)
	}
	regular, bold, err := assets.Fonts()
	if err != nil {
		return nil, fmt.Errorf("render: load fonts: %w", err)
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		images:  images,
		regular: regular,
		bold:    bold,
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		logger:  logger,
	}, nil
}

// Images returns the renderer's image cache.
func (r *Renderer) Images() *ImageCache {
	return r.images
}

// frame is the per-draw state shared by the draw helpers.
type frame struct {
	dst    *ebiten.Image
	view   common.View
	light  component.Light
	shadow int
	form   *component.ContactForm
	world  *ecs.World
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(background)

	_, cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	b := screen.Bounds()
	f := frame{
		dst:   screen,
		view:  cam.View(float64(b.Dx()), float64(b.Dy())),
		world: w,
	}
	if _, l, ok := ecs.Singleton(w, component.LightComponent.Kind()); ok {
		f.light = *l
	}
	if _, q, ok := ecs.Singleton(w, component.QualityComponent.Kind()); ok {
		f.shadow = int(q.Profile.ShadowSoftness())
	}
	if _, form, ok := ecs.Singleton(w, component.ContactFormComponent.Kind()); ok {
		f.form = form
	}

	r.collect(w, f.view)
	for _, it := range r.items {
		r.drawEntity(&f, it.e)
	}
}

func (r *Renderer) collect(w *ecs.World, view common.View) {
	r.items = r.items[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.RenderLayerComponent.Kind(), func(e ecs.Entity, t *component.Transform, l *component.RenderLayer) {
		if !system.Shown(w, e) {
			return
		}
		if item, ok := ecs.Get(w, e, component.StackItemComponent.Kind()); ok && !item.Visible {
			return
		}
		_, _, depth, ok := view.Project(t.Position)
		if !ok {
			return
		}
		r.items = append(r.items, drawItem{e: e, layer: l.Index, depth: depth})
	})
	sort.SliceStable(r.items, func(i, j int) bool {
		if r.items[i].layer != r.items[j].layer {
			return r.items[i].layer < r.items[j].layer
		}
		return r.items[i].depth > r.items[j].depth
	})
}

func (r *Renderer) drawEntity(f *frame, e ecs.Entity) {
	w := f.world
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	pos := t.Position
	scale := t.EffectiveScale()
	if btn, ok := ecs.Get(w, e, component.ButtonComponent.Kind()); ok {
		pos = pos.Add(common.V3(0, 0, btn.Depth))
		scale *= btn.EffectiveScale()
	}

	mesh, hasMesh := ecs.Get(w, e, component.MeshComponent.Kind())
	if hasMesh {
		if mesh.Shadow && mesh.Facing == component.FacingFront {
			r.drawShadow(f, *mesh, pos, scale)
		}
		c := mesh.Color
		if mesh.Shaded {
			c = shade(c, normal(mesh.Facing), f.light)
		}
		if in, ok := ecs.Get(w, e, component.ContactInputComponent.Kind()); ok && f.form != nil && f.form.Active == in.Field {
			focus := *mesh
			focus.Width += 0.008
			focus.Height += 0.008
			focus.Corner += 0.004
			r.fillMesh(f, focus, pos.Add(common.V3(0, 0, -facePush)), scale, focusColor)
		}
		r.fillMesh(f, *mesh, pos, scale, c)
	}

	front := pos.Add(common.V3(0, 0, facePush))
	if icon, ok := ecs.Get(w, e, component.IconComponent.Kind()); ok && hasMesh {
		r.drawIcon(f, icon, *mesh, front, scale)
	}
	if img, ok := ecs.Get(w, e, component.ImageComponent.Kind()); ok {
		r.drawImage(f, img.Key, front, img.Width*scale, img.Height*scale, img.Round)
	}
	if content, ok := ecs.Get(w, e, component.PanelContentComponent.Kind()); ok && hasMesh {
		r.drawCard(f, content, *mesh, front, scale)
	}
	if ind, ok := ecs.Get(w, e, component.IndicatorComponent.Kind()); ok {
		r.drawIndicator(f, *ind, front, scale)
	}
	if label, ok := ecs.Get(w, e, component.LabelComponent.Kind()); ok {
		s, c := labelText(w, e, label, f.form)
		r.drawLabel(f, *label, s, c, mesh, front, scale)
	}
}

// labelText resolves what a label shows: contact fields show their value
// (or the placeholder while empty and unfocused) and the send button shows
// progress.
func labelText(w *ecs.World, e ecs.Entity, label *component.Label, form *component.ContactForm) (string, color.NRGBA) {
	if form == nil {
		return label.Text, label.Color
	}
	if in, ok := ecs.Get(w, e, component.ContactInputComponent.Kind()); ok {
		v := *form.Value(in.Field)
		if form.Active == in.Field {
			return v + "|", titleColor
		}
		if v != "" {
			return v, titleColor
		}
	}
	if ecs.Has(w, e, component.SendButtonTagComponent.Kind()) && form.Sending {
		return "Sending...", label.Color
	}
	return label.Text, label.Color
}

func (r *Renderer) drawShadow(f *frame, m component.Mesh, pos common.Vec3, scale float64) {
	if f.shadow <= 0 {
		return
	}
	d := f.light.Direction()
	for i := f.shadow; i >= 1; i-- {
		k := float64(i) * shadowStep
		at := pos.Add(common.V3(d.X*k, d.Y*k, -facePush*float64(i)))
		grown := m
		grown.Width += k
		grown.Height += k
		grown.Radius += k / 2
		c := shadowColor
		c.A = uint8(float64(shadowColor.A) / float64(i))
		r.fillMesh(f, grown, at, scale, c)
	}
}

// fillMesh projects the mesh outline and fills it as a triangle fan.
func (r *Renderer) fillMesh(f *frame, m component.Mesh, pos common.Vec3, scale float64, c color.NRGBA) {
	pts := outline(m, scale)
	screen := make([][2]float32, 0, len(pts))
	for _, p := range pts {
		x, y, _, ok := f.view.Project(place(pos, m.Facing, p[0], p[1]))
		if !ok {
			return
		}
		screen = append(screen, [2]float32{float32(x), float32(y)})
	}
	r.fillPolygon(f.dst, screen, nil, r.white, c)
}

// fillPolygon draws a convex polygon. When uv is nil every vertex samples the
// center of src.
func (r *Renderer) fillPolygon(dst *ebiten.Image, pts, uv [][2]float32, src *ebiten.Image, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	cr := float32(c.R) / 255
	cg := float32(c.G) / 255
	cb := float32(c.B) / 255
	ca := float32(c.A) / 255
	sb := src.Bounds()
	for i, p := range pts {
		sx, sy := float32(sb.Min.X)+0.5, float32(sb.Min.Y)+0.5
		if uv != nil {
			sx, sy = uv[i][0], uv[i][1]
		}
		// Vertex colors are premultiplied.
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: p[0], DstY: p[1],
			SrcX: sx, SrcY: sy,
			ColorR: cr * ca, ColorG: cg * ca, ColorB: cb * ca, ColorA: ca,
		})
	}
	for i := 2; i < len(pts); i++ {
		r.indices = append(r.indices, 0, uint16(i-1), uint16(i))
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	dst.DrawTriangles(r.vertices, r.indices, src, op)
}

func (r *Renderer) drawImage(f *frame, key string, center common.Vec3, w, h float64, round bool) {
	img := r.images.Get(key)
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	var pts [][2]float64
	if round {
		pts = circle(w/2, discSegments)
	} else {
		pts = roundedRect(w, h, 0)
	}

	b := img.Bounds()
	screen := make([][2]float32, 0, len(pts))
	uv := make([][2]float32, 0, len(pts))
	for _, p := range pts {
		x, y, _, ok := f.view.Project(center.Add(common.V3(p[0], p[1], 0)))
		if !ok {
			return
		}
		screen = append(screen, [2]float32{float32(x), float32(y)})
		u := (p[0]/w + 0.5) * float64(b.Dx())
		v := (0.5 - p[1]/h) * float64(b.Dy())
		uv = append(uv, [2]float32{float32(b.Min.X) + float32(u), float32(b.Min.Y) + float32(v)})
	}
	r.fillPolygon(f.dst, screen, uv, img, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

// text draws s anchored at a world point. size is the line height in world
// units; wrap, when positive, is the wrap width in world units.
func (r *Renderer) text(f *frame, s string, at common.Vec3, size, wrap float64, src *text.GoTextFaceSource, c color.NRGBA, align text.Align) float64 {
	x, y, depth, ok := f.view.Project(at)
	if !ok {
		return 0
	}
	ppu := f.view.PixelsPerUnit(depth)
	if size*ppu < minTextPixels {
		return 0
	}
	used := drawText(f.dst, s, x, y, textStyle{
		source: src,
		size:   size * ppu,
		color:  c,
		align:  align,
		wrap:   wrap * ppu,
	})
	return used / ppu
}

func (r *Renderer) drawLabel(f *frame, l component.Label, s string, c color.NRGBA, mesh *component.Mesh, at common.Vec3, scale float64) {
	size := l.Size * scale
	if l.Center {
		r.text(f, s, at.Add(common.V3(0, l.Offset*scale+size*0.6, 0)), size, l.Wrap*scale, r.bold, c, text.AlignCenter)
		return
	}
	pad := 0.015 * scale
	left, top := at.X, at.Y
	if mesh != nil {
		left -= mesh.Width * scale / 2
		top += mesh.Height * scale / 2
	}
	r.text(f, s, common.V3(left+pad, top-pad+l.Offset*scale, at.Z), size, l.Wrap*scale, r.regular, c, text.AlignStart)
}

func (r *Renderer) drawIcon(f *frame, icon *component.Icon, mesh component.Mesh, at common.Vec3, scale float64) {
	radius := mesh.Radius * scale
	glyphColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if icon.Disc {
		accent := shade(icon.Accent, normal(component.FacingFront), f.light)
		r.fillMesh(f, component.Mesh{Shape: component.ShapeDisc, Radius: mesh.Radius * 0.62}, at, scale, accent)
		at = at.Add(common.V3(0, 0, facePush))
		if icon.Accent == (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
			glyphColor = focusColor
		}
	}
	size := radius * 0.7
	r.text(f, glyph(icon), at.Add(common.V3(0, size*0.6, 0)), size, 0, r.bold, glyphColor, text.AlignCenter)
}

// glyph is the short mark drawn on an icon.
func glyph(icon *component.Icon) string {
	switch icon.Kind {
	case "github":
		return "GH"
	case "linkedin":
		return "in"
	case "envelope":
		return "@"
	}
	for _, r := range icon.Label {
		return string(r)
	}
	return "?"
}

func (r *Renderer) drawCard(f *frame, c *component.PanelContent, mesh component.Mesh, at common.Vec3, scale float64) {
	w, h := mesh.Width*scale, mesh.Height*scale
	pad := cardPad * scale
	left, top := at.X-w/2+pad, at.Y+h/2-pad
	textWidth := w - 2*pad

	if c.Label == "Home" {
		img := 0.26 * scale
		if c.Image != "" {
			r.drawImage(f, c.Image, common.V3(at.X, top-img/2, at.Z), img, img, true)
			top -= img + 0.03*scale
		}
		top -= r.text(f, c.Title, common.V3(at.X, top, at.Z), 0.05*scale, 0, r.bold, titleColor, text.AlignCenter)
		top -= 0.02 * scale
		r.text(f, c.Body, common.V3(left, top, at.Z), 0.026*scale, textWidth, r.regular, bodyColor, text.AlignStart)
		return
	}

	if c.Image != "" {
		img := 0.22 * scale
		r.drawImage(f, c.Image, common.V3(at.X+w/2-pad-img/2, top-img/2, at.Z), img, img, false)
		textWidth -= img + 0.03*scale
	}
	title := c.Title
	if title == "" {
		title = c.Role
	}
	top -= r.text(f, title, common.V3(left, top, at.Z), 0.042*scale, textWidth, r.bold, titleColor, text.AlignStart)
	if c.Company != "" {
		top -= r.text(f, c.Company, common.V3(left, top, at.Z), 0.03*scale, textWidth, r.regular, bodyColor, text.AlignStart)
	}
	if c.Date != "" {
		top -= r.text(f, c.Date, common.V3(left, top, at.Z), 0.024*scale, textWidth, r.regular, mutedColor, text.AlignStart)
	}
	top -= 0.03 * scale
	r.text(f, c.Body, common.V3(left, top, at.Z), 0.026*scale, w-2*pad, r.regular, bodyColor, text.AlignStart)
}

func (r *Renderer) drawIndicator(f *frame, ind component.Indicator, at common.Vec3, scale float64) {
	if ind.Count <= 1 {
		return
	}
	start := -float64(ind.Count-1) / 2 * dotSpacing * scale
	for i := 0; i < ind.Count; i++ {
		c := dotColor
		if ind.DotActive(i) {
			c = color.NRGBA(colornames.Slategray)
		}
		dot := component.Mesh{Shape: component.ShapeDisc, Radius: dotRadius}
		r.fillMesh(f, dot, at.Add(common.V3(start+float64(i)*dotSpacing*scale, 0, 0)), scale, c)
	}
}
