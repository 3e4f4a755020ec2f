package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/folio/assets"
)

// LoadImage decodes an image from the embedded assets, falling back to the
// working directory.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img, err := assets.LoadImage(key); err == nil {
		return img, nil
	}
	for _, p := range []string{key, filepath.Join("assets", key), filepath.Base(key)} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		im, err := assets.Decode(b)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		return ebiten.NewImageFromImage(im), nil
	}
	return nil, fmt.Errorf("image %s not found", key)
}
