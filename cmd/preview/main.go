// Command preview cycles through the embedded card images at the size and
// corner rounding they get in the scene, for checking new artwork.
package main

import (
	"flag"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/folio/assets"
	"github.com/milk9111/folio/ecs/render"
	"go.uber.org/zap"
)

const previewSize = 512

type previewGame struct {
	images *render.ImageCache
	names  []string

	current       int
	tick          int
	ticksPerSlide int
}

func (g *previewGame) Update() error {
	if len(g.names) <= 1 {
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.step(-1)
	}
	if g.ticksPerSlide <= 0 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerSlide {
		g.step(1)
	}
	return nil
}

func (g *previewGame) step(d int) {
	g.tick = 0
	g.current = (g.current + d + len(g.names)) % len(g.names)
	ebiten.SetWindowTitle("preview: " + g.names[g.current])
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0xdf, 0xe3, 0xe8, 0xff})
	if len(g.names) == 0 {
		return
	}
	img := g.images.Get(g.names[g.current])
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scale := float64(previewSize) / float64(max(w, h))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((previewSize-float64(w)*scale)/2, (previewSize-float64(h)*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewSize, previewSize
}

func main() {
	seconds := flag.Float64("every", 2, "seconds per image; 0 waits for a key or click")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	names := flag.Args()
	if len(names) == 0 {
		names = assets.Images()
	}
	logger.Info("previewing images", zap.Strings("images", names))

	g := &previewGame{
		images:        render.NewImageCache(logger),
		names:         names,
		ticksPerSlide: int(*seconds * 60),
	}
	ebiten.SetWindowSize(previewSize, previewSize)
	ebiten.SetWindowTitle("preview")
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("preview stopped", zap.Error(err))
	}
}
