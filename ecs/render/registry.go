package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ImageCache holds decoded images by key. Keys that failed to load are
// remembered so a missing picture is reported once, not every frame.
type ImageCache struct {
	images map[string]*ebiten.Image
	failed map[string]error
	logger *zap.Logger
}

func NewImageCache(logger *zap.Logger) *ImageCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageCache{
		images: map[string]*ebiten.Image{},
		failed: map[string]error{},
		logger: logger,
	}
}

// Register stores an image by key.
func (c *ImageCache) Register(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	c.images[key] = img
	delete(c.failed, key)
}

// Get returns the image for key, loading it on first use. It returns nil
// when the image cannot be loaded.
func (c *ImageCache) Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	if img, ok := c.images[key]; ok {
		return img
	}
	if _, ok := c.failed[key]; ok {
		return nil
	}
	img, err := LoadImage(key)
	if err != nil {
		c.failed[key] = err
		c.logger.Warn("image unavailable", zap.String("key", key), zap.Error(err))
		return nil
	}
	c.images[key] = img
	return img
}

// Forget drops remembered failures so edited assets are retried.
func (c *ImageCache) Forget() {
	clear(c.failed)
}
