package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		hints Hints
		want  Profile
	}{
		{"desktop", Hints{Width: 1280}, Desktop},
		{"wide touch", Hints{Touch: true, Width: 1024}, Desktop},
		{"narrow mouse", Hints{Width: 500}, Desktop},
		{"narrow touch", Hints{Touch: true, Width: 500}, Mobile},
		{"forced", Hints{Width: 1920, Forced: true}, Mobile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.hints))
		})
	}
}

func TestDeviceScale(t *testing.T) {
	assert.Equal(t, 1.15, Desktop.DeviceScale(2))
	assert.Equal(t, 1.0, Desktop.DeviceScale(1))
	assert.Equal(t, 1.0, Mobile.DeviceScale(3))
	assert.Equal(t, 1.0, Mobile.DeviceScale(0))
	assert.Equal(t, 2048, Desktop.ShadowMapSize)
	assert.Equal(t, 1024, Mobile.ShadowMapSize)
	assert.Greater(t, Desktop.ShadowSoftness(), Mobile.ShadowSoftness())
}
