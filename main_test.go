package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/folio/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWebP(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})

	dst := filepath.Join(t.TempDir(), "out.webp")
	require.NoError(t, writeWebP(dst, img))

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	got, err := assets.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
}

func TestWriteWebPLeavesNoFileOnFailure(t *testing.T) {
	tests := []struct {
		name string
		dst  func(dir string) string
		img  image.Image
	}{
		{
			name: "empty_image",
			dst:  func(dir string) string { return filepath.Join(dir, "empty.webp") },
			img:  image.NewNRGBA(image.Rect(0, 0, 0, 0)),
		},
		{
			name: "oversized_image",
			dst:  func(dir string) string { return filepath.Join(dir, "huge.webp") },
			img:  image.NewNRGBA(image.Rect(0, 0, 1<<14+1, 1)),
		},
		{
			name: "missing_directory",
			dst:  func(dir string) string { return filepath.Join(dir, "nope", "out.webp") },
			img:  image.NewNRGBA(image.Rect(0, 0, 2, 2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := tt.dst(t.TempDir())
			require.Error(t, writeWebP(dst, tt.img))
			_, err := os.Stat(dst)
			assert.True(t, os.IsNotExist(err), "partial file left at %s", dst)
		})
	}
}
